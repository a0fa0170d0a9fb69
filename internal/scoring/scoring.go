// Package scoring turns extracted code metrics into a bug-risk prediction.
package scoring

import (
	"fmt"
	"math"

	"github.com/sprite-ai/bugalert/internal/analysis"
	"github.com/sprite-ai/bugalert/internal/model"
)

// Saturation thresholds: a metric at or above its threshold scores 1.
const (
	ComplexityThreshold      = 15.0
	SizeThreshold            = 300.0
	NestingThreshold         = 5.0
	FunctionDensityThreshold = 20.0
	DuplicateThreshold       = 10.0
)

// Bounds on the reported probability; a prediction is never certain either way.
const (
	MinProbability = 5
	MaxProbability = 95
)

// Weights sets how much each sub-score contributes to the raw score.
type Weights struct {
	Complexity      float64
	Size            float64
	Nesting         float64
	FunctionDensity float64
	Comment         float64
	Duplicate       float64
}

// DefaultWeights returns the standard weights.
func DefaultWeights() Weights {
	return Weights{
		Complexity:      0.25,
		Size:            0.20,
		Nesting:         0.20,
		FunctionDensity: 0.15,
		Comment:         0.10,
		Duplicate:       0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Complexity + w.Size + w.Nesting + w.FunctionDensity + w.Comment + w.Duplicate
}

// Validate reports an error unless the weights sum to 1.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1) > 1e-9 {
		return fmt.Errorf("weights sum to %.4f, want 1", w.Sum())
	}
	return nil
}

// Scorer computes predictions. The zero value is not usable; call New.
type Scorer struct {
	weights    Weights
	confidence ConfidenceSource
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithConfidence replaces the default confidence source.
func WithConfidence(src ConfidenceSource) Option {
	return func(s *Scorer) { s.confidence = src }
}

// WithSeed seeds the default confidence source.
func WithSeed(seed uint64) Option {
	return func(s *Scorer) { s.confidence = NewRandomConfidence(seed) }
}

// New creates a Scorer with the default weights.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		weights:    DefaultWeights(),
		confidence: NewRandomConfidence(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict extracts metrics from text and scores them.
func (s *Scorer) Predict(text string) model.PredictionResult {
	return s.Score(analysis.Extract(text))
}

// Score builds the prediction for m. Everything except Confidence is a pure
// function of m.
func (s *Scorer) Score(m model.CodeMetrics) model.PredictionResult {
	factors := ComputeFactors(m)
	probability := Probability(factors, s.weights)

	return model.PredictionResult{
		BugProbability:  probability,
		RiskLevel:       model.ClassifyRisk(probability),
		Recommendations: Recommend(m),
		Confidence:      s.confidence.Confidence(),
		Metrics:         m,
		Factors:         factors,
	}
}

// ComputeFactors normalizes each metric into [0,1].
func ComputeFactors(m model.CodeMetrics) model.Factors {
	return model.Factors{
		Complexity:      saturate(float64(m.CyclomaticComplexity), ComplexityThreshold),
		Size:            saturate(float64(m.LinesOfCode), SizeThreshold),
		Nesting:         saturate(float64(m.NestingDepth), NestingThreshold),
		FunctionDensity: saturate(functionDensity(m), FunctionDensityThreshold),
		Comment:         1 - float64(m.CommentRatio)/100,
		Duplicate:       saturate(float64(m.DuplicateLines), DuplicateThreshold),
	}
}

// Raw returns the weighted sum of the factors.
func Raw(f model.Factors, w Weights) float64 {
	return f.Complexity*w.Complexity +
		f.Size*w.Size +
		f.Nesting*w.Nesting +
		f.FunctionDensity*w.FunctionDensity +
		f.Comment*w.Comment +
		f.Duplicate*w.Duplicate
}

// Probability converts the weighted factors to a percentage clamped to
// [MinProbability, MaxProbability].
func Probability(f model.Factors, w Weights) int {
	p := int(math.Round(Raw(f, w) * 100))
	return min(max(p, MinProbability), MaxProbability)
}

// functionDensity is lines per function, 0 when no function was detected.
func functionDensity(m model.CodeMetrics) float64 {
	if m.FunctionCount == 0 {
		return 0
	}
	return float64(m.LinesOfCode) / float64(m.FunctionCount)
}

func saturate(v, threshold float64) float64 {
	return math.Min(v/threshold, 1)
}
