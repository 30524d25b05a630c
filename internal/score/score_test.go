// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShares_SumToHundred(t *testing.T) {
	shares := Shares([]float64{1000, 500})
	require.Len(t, shares, 2)
	assert.InDelta(t, 66.666, shares[0], 0.01)
	assert.InDelta(t, 33.333, shares[1], 0.01)

	var sum float64
	for _, s := range Shares([]float64{3, 7, 11, 13, 17}) {
		sum += s
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestShares_ZeroSum(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0}, Shares([]float64{0, 0, 0}))
	assert.Empty(t, Shares(nil))
}

func TestLogColor(t *testing.T) {
	assert.Equal(t, 0.0, LogColor(0))
	assert.Equal(t, 0.0, LogColor(0.5))
	assert.Equal(t, 0.0, LogColor(1))
	assert.InDelta(t, 3.0, LogColor(1000), 1e-12)
	assert.Equal(t, 0.0, LogColor(math.NaN()))
	assert.Less(t, LogColor(10), LogColor(11))
}

func TestColors_Modes(t *testing.T) {
	vals := []float64{10, 100000}

	assert.Equal(t, vals, Colors(vals, ColorRaw, 0))
	logged := Colors(vals, ColorLog, 0)
	assert.InDelta(t, 1.0, logged[0], 1e-12)
	assert.InDelta(t, 5.0, logged[1], 1e-12)

	// Range 10000 > 100: auto picks log.
	assert.Equal(t, logged, Colors(vals, ColorAuto, 0))
	// Range 10000 < threshold: auto keeps raw.
	assert.Equal(t, vals, Colors(vals, ColorAuto, 1e6))
}

func TestDynamicRange(t *testing.T) {
	assert.Equal(t, 1.0, DynamicRange(nil))
	assert.Equal(t, 1.0, DynamicRange([]float64{0, 5}))
	assert.Equal(t, 4.0, DynamicRange([]float64{2, 8, 0}))
}

func TestMindshare_WorkedExample(t *testing.T) {
	scores, pct := Mindshare([]float64{10, 5}, []float64{1000, 2000}, DefaultWeights)
	require.Len(t, scores, 2)
	assert.InDelta(t, 0.7, scores[0], 1e-9)
	assert.InDelta(t, 0.8, scores[1], 1e-9)
	assert.InDelta(t, 46.667, pct[0], 0.001)
	assert.InDelta(t, 53.333, pct[1], 0.001)
}

func TestMindshare_ZeroGuard(t *testing.T) {
	scores, pct := Mindshare([]float64{0, 0}, []float64{0, 0}, DefaultWeights)
	assert.Equal(t, []float64{0, 0}, scores)
	assert.Equal(t, []float64{0, 0}, pct)
}

func TestMindshare_SmallMaximaUseFloorOfOne(t *testing.T) {
	// max(a) = 0.5 is floored to 1 so the normalized value stays 0.5.
	scores, _ := Mindshare([]float64{0.5}, []float64{0}, Weights{A: 1, B: 0})
	assert.InDelta(t, 0.5, scores[0], 1e-12)
}

func TestMindshare_CustomWeights(t *testing.T) {
	scores, _ := Mindshare([]float64{10, 5}, []float64{1000, 2000}, Weights{A: 0.5, B: 0.5})
	assert.InDelta(t, 0.75, scores[0], 1e-9)
	assert.InDelta(t, 0.75, scores[1], 1e-9)
}

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights.Validate())
	assert.Error(t, Weights{A: -1, B: 1}.Validate())
	assert.Error(t, Weights{A: math.NaN(), B: 1}.Validate())
	assert.True(t, Weights{}.IsZero())
}

func TestPercentChange(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{"two closes", []float64{100, 110}, 10},
		{"skips trailing null", []float64{100, 110, nan}, 10},
		{"skips inner null", []float64{100, nan, 90}, -10},
		{"single close", []float64{100}, 0},
		{"all null", []float64{nan, nan}, 0},
		{"zero previous", []float64{0, 50}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentChange(tt.closes), 1e-9)
		})
	}
}
