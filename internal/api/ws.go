package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sprite-ai/bugalert/internal/source"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgAnalyze    = "analyze"
	wsMsgLoadSample = "sample"
)

// WebSocket message types to client.
const (
	wsMsgAnalyzing = "analyzing"
	wsMsgResult    = "result"
	wsMsgSample    = "sample"
	wsMsgError     = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsAnalyzing is sent as soon as an analyze request is accepted. The matching
// result carries the same ID.
type wsAnalyzing struct {
	ID       string `json:"id"`
	Filename string `json:"filename,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	if limit := s.bodyLimit(); limit > 0 {
		conn.SetReadLimit(limit)
	}
	s.metrics.wsConns.Inc()
	defer s.metrics.wsConns.Dec()
	s.logger.Debug("websocket connected", "remote", r.RemoteAddr)

	// The request context of a hijacked connection is not cancelled when the
	// peer disconnects, so the reader cancels ctx once reads start failing.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	incoming := s.readWS(ctx, cancel, conn)

	for {
		var raw []byte
		select {
		case <-ctx.Done():
			return
		case raw = <-incoming:
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgAnalyze:
			if !s.handleWSAnalyze(ctx, conn, msg.Data) {
				return
			}
		case wsMsgLoadSample:
			s.sendWSMessage(conn, wsMsgSample, newSampleResponse())
		default:
			s.sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

// readWS pumps client frames into the returned channel until a read fails,
// then calls cancel.
func (s *Server) readWS(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer cancel()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Warn("websocket read", "err", err)
				}
				return
			}
			select {
			case out <- raw:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// handleWSAnalyze answers one analyze message with "analyzing" then "result".
// It returns false when ctx ends during the delay, either because the client
// disconnected or the server is going down.
func (s *Server) handleWSAnalyze(ctx context.Context, conn *websocket.Conn, data json.RawMessage) bool {
	var req analyzeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.metrics.reject(channelWS, "invalid")
		s.sendWSError(conn, "invalid analyze data")
		return true
	}

	in := source.Input{Name: req.Filename, Text: req.Code}
	if status, msg, ok := s.checkInput(in); !ok {
		s.metrics.reject(channelWS, reasonFor(status))
		s.sendWSError(conn, msg)
		return true
	}

	id := uuid.NewString()
	s.sendWSMessage(conn, wsMsgAnalyzing, wsAnalyzing{ID: id, Filename: in.Name})

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return false
		}
	}

	s.sendWSMessage(conn, wsMsgResult, s.analyze(channelWS, id, in))
	return true
}

func (s *Server) sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("ws marshal", "type", msgType, "err", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("ws write", "type", msgType, "err", err)
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, errMsg string) {
	s.sendWSMessage(conn, wsMsgError, map[string]string{"error": errMsg})
}
