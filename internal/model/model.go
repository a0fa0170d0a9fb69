// Package model defines the core data types shared across bugalert.
package model

import "fmt"

// RiskLevel categorizes the predicted bug risk of a piece of code.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level as its name so JSON output reads "low", "medium", "high".
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (r *RiskLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*r = RiskLow
	case "medium":
		*r = RiskMedium
	case "high":
		*r = RiskHigh
	default:
		return fmt.Errorf("unknown risk level %q", text)
	}
	return nil
}

// ClassifyRisk maps a bug probability (percent) onto a risk level.
// Above 70 is high, above 40 is medium, everything else is low.
func ClassifyRisk(probability int) RiskLevel {
	switch {
	case probability > 70:
		return RiskHigh
	case probability > 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

// CodeMetrics holds the lexical signals extracted from one source text.
type CodeMetrics struct {
	LinesOfCode          int `json:"lines_of_code"`
	CyclomaticComplexity int `json:"cyclomatic_complexity"`
	FunctionCount        int `json:"function_count"`
	ClassCount           int `json:"class_count"`
	NestingDepth         int `json:"nesting_depth"`
	CommentRatio         int `json:"comment_ratio"` // percent, 0-100
	DuplicateLines       int `json:"duplicate_lines"`
}

// Factors are the normalized [0,1] sub-scores that fed a prediction.
type Factors struct {
	Complexity      float64 `json:"complexity"`
	Size            float64 `json:"size"`
	Nesting         float64 `json:"nesting"`
	FunctionDensity float64 `json:"function_density"`
	Comment         float64 `json:"comment"`
	Duplicate       float64 `json:"duplicate"`
}

// PredictionResult is the verdict for a single analysis run.
type PredictionResult struct {
	BugProbability  int         `json:"bug_probability"` // percent, 5-95
	RiskLevel       RiskLevel   `json:"risk_level"`
	Recommendations []string    `json:"recommendations"`
	Confidence      int         `json:"confidence"` // display placeholder, not calibrated
	Metrics         CodeMetrics `json:"metrics"`
	Factors         Factors     `json:"factors"`
}
