package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevelString(t *testing.T) {
	tests := []struct {
		level RiskLevel
		want  string
	}{
		{RiskLow, "low"},
		{RiskMedium, "medium"},
		{RiskHigh, "high"},
		{RiskLevel(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("RiskLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestRiskLevelOrdering(t *testing.T) {
	if !(RiskLow < RiskMedium && RiskMedium < RiskHigh) {
		t.Error("risk levels should be ordered low < medium < high")
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		probability int
		want        RiskLevel
	}{
		{5, RiskLow},
		{40, RiskLow},
		{41, RiskMedium},
		{70, RiskMedium},
		{71, RiskHigh},
		{95, RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRisk(tt.probability), "probability %d", tt.probability)
	}
}

func TestRiskLevelJSON(t *testing.T) {
	data, err := json.Marshal(PredictionResult{RiskLevel: RiskMedium})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"risk_level":"medium"`)

	var back PredictionResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, RiskMedium, back.RiskLevel)

	var bad RiskLevel
	assert.Error(t, bad.UnmarshalText([]byte("critical")))
}
