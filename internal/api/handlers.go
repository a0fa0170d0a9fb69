package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sprite-ai/bugalert/internal/model"
	"github.com/sprite-ai/bugalert/internal/source"
)

// Analysis channels, used as a metrics label.
const (
	channelAnalyze = "analyze"
	channelUpload  = "upload"
	channelWS      = "ws"
)

// uploadField is the multipart form field carrying an uploaded file.
const uploadField = "file"

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Analyze ---

type analyzeRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename,omitempty"`
}

// analysisResponse is a prediction plus the details of the input it was made for.
type analysisResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename,omitempty"`
	Language string `json:"language"`
	model.PredictionResult
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if limit := s.bodyLimit(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.reject(w, channelAnalyze, "too_large", http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.reject(w, channelAnalyze, "invalid", http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	in := source.Input{Name: req.Filename, Text: req.Code}
	if status, msg, ok := s.checkInput(in); !ok {
		s.reject(w, channelAnalyze, reasonFor(status), status, msg)
		return
	}

	s.writeJSON(w, http.StatusOK, s.analyze(channelAnalyze, uuid.NewString(), in))
}

// --- Upload ---

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if limit := s.bodyLimit(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.reject(w, channelUpload, "too_large", http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.reject(w, channelUpload, "invalid", http.StatusBadRequest, fmt.Sprintf("reading form field %q: %v", uploadField, err))
		return
	}
	defer file.Close()

	in, err := source.Read(file, header.Filename, s.maxBytes)
	if err != nil {
		if errors.Is(err, source.ErrTooLarge) {
			s.reject(w, channelUpload, "too_large", http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		s.reject(w, channelUpload, "invalid", http.StatusBadRequest, err.Error())
		return
	}
	if status, msg, ok := s.checkInput(in); !ok {
		s.reject(w, channelUpload, reasonFor(status), status, msg)
		return
	}

	s.writeJSON(w, http.StatusOK, s.analyze(channelUpload, uuid.NewString(), in))
}

// --- Sample ---

type sampleResponse struct {
	Filename string `json:"filename"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

func newSampleResponse() sampleResponse {
	in := source.Sample()
	return sampleResponse{
		Filename: in.Name,
		Language: in.Language(),
		Code:     in.Text,
	}
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, newSampleResponse())
}

// --- Shared ---

// checkInput applies the caller-side rules the engine leaves to its callers:
// blank input is refused and so is input above the size cap.
func (s *Server) checkInput(in source.Input) (status int, msg string, ok bool) {
	if in.Blank() {
		return http.StatusBadRequest, "code is required", false
	}
	if s.maxBytes > 0 && int64(len(in.Text)) > s.maxBytes {
		return http.StatusRequestEntityTooLarge, fmt.Sprintf("%v (%d bytes)", source.ErrTooLarge, s.maxBytes), false
	}
	return 0, "", true
}

func reasonFor(status int) string {
	if status == http.StatusRequestEntityTooLarge {
		return "too_large"
	}
	return "empty"
}

func (s *Server) reject(w http.ResponseWriter, channel, reason string, status int, msg string) {
	s.metrics.reject(channel, reason)
	s.writeError(w, status, msg)
}

// analyze runs the engine on in and records the outcome under id.
func (s *Server) analyze(channel, id string, in source.Input) analysisResponse {
	start := time.Now()
	res := s.scorer.Predict(in.Text)
	elapsed := time.Since(start)

	resp := analysisResponse{
		ID:               id,
		Filename:         in.Name,
		Language:         in.Language(),
		PredictionResult: res,
	}

	s.metrics.observe(channel, res, len(in.Text), elapsed)
	s.logger.Info("analysis complete",
		"id", resp.ID,
		"channel", channel,
		"filename", in.Name,
		"language", resp.Language,
		"probability", res.BugProbability,
		"risk", res.RiskLevel.String(),
		"duration", elapsed,
	)
	return resp
}
