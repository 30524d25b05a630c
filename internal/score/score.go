// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package score computes the derived numeric fields of a filtered record set:
// share of total, color magnitude, composite mindshare score, and price change.
package score

import (
	"fmt"
	"math"
)

// ColorMode selects how color values are derived from the metric.
type ColorMode string

const (
	// ColorRaw uses the metric unchanged.
	ColorRaw ColorMode = "raw"
	// ColorLog uses log10(max(metric, 1)).
	ColorLog ColorMode = "log"
	// ColorAuto switches to log scaling when the dynamic range exceeds a threshold.
	ColorAuto ColorMode = "auto"
)

// DefaultLogThreshold is the max/min ratio above which ColorAuto picks log scaling.
const DefaultLogThreshold = 100.0

// Weights is the blend applied to the two normalized metrics of a composite score.
type Weights struct {
	A float64 `yaml:"a" toml:"a" json:"a"`
	B float64 `yaml:"b" toml:"b" json:"b"`
}

// DefaultWeights weights mentions at 0.4 and views at 0.6.
var DefaultWeights = Weights{A: 0.4, B: 0.6}

// IsZero reports whether no weights were configured.
func (w Weights) IsZero() bool { return w.A == 0 && w.B == 0 }

// Validate rejects negative or non-finite weights.
func (w Weights) Validate() error {
	for _, v := range []float64{w.A, w.B} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weights must be finite and non-negative, got a=%g b=%g", w.A, w.B)
		}
	}
	return nil
}

// Shares returns each value as a percentage of the sum. When the sum is zero
// every share is zero.
func Shares(values []float64) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	if sum <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / sum * 100
	}
	return out
}

// LogColor returns log10(max(v, 1)). It is non-negative, monotonic, and
// defined at zero.
func LogColor(v float64) float64 {
	if v < 1 || math.IsNaN(v) {
		v = 1
	}
	return math.Log10(v)
}

// Colors maps metric values to color values according to mode. threshold is
// only consulted by ColorAuto; zero means DefaultLogThreshold.
func Colors(values []float64, mode ColorMode, threshold float64) []float64 {
	useLog := mode == ColorLog
	if mode == ColorAuto {
		if threshold <= 0 {
			threshold = DefaultLogThreshold
		}
		useLog = DynamicRange(values) > threshold
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if useLog {
			out[i] = LogColor(v)
		} else {
			out[i] = v
		}
	}
	return out
}

// DynamicRange returns max/min over the positive values, or 1 when fewer than
// two positive values exist.
func DynamicRange(values []float64) float64 {
	lo, hi := math.Inf(1), 0.0
	n := 0
	for _, v := range values {
		if v <= 0 {
			continue
		}
		n++
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if n < 2 {
		return 1
	}
	return hi / lo
}

// Mindshare computes composite scores for paired metrics a and b:
//
//	score = w.A * a/max(max(a), 1) + w.B * b/max(max(b), 1)
//
// It returns the scores and their percentage shares. Slices a and b must have
// equal length; extra elements of the longer slice are ignored.
func Mindshare(a, b []float64, w Weights) (scores, pct []float64) {
	n := min(len(a), len(b))
	maxA, maxB := 1.0, 1.0
	for i := 0; i < n; i++ {
		maxA = math.Max(maxA, a[i])
		maxB = math.Max(maxB, b[i])
	}
	scores = make([]float64, n)
	for i := 0; i < n; i++ {
		scores[i] = w.A*(a[i]/maxA) + w.B*(b[i]/maxB)
	}
	return scores, Shares(scores)
}

// PercentChange returns the change between the last two non-NaN closes, in
// percent. It returns 0 when fewer than two closes exist or the previous close
// is zero.
func PercentChange(closes []float64) float64 {
	var last, prev float64
	found := 0
	for i := len(closes) - 1; i >= 0 && found < 2; i-- {
		c := closes[i]
		if math.IsNaN(c) || math.IsInf(c, 0) {
			continue
		}
		if found == 0 {
			last = c
		} else {
			prev = c
		}
		found++
	}
	if found < 2 || prev == 0 {
		return 0
	}
	return (last - prev) / prev * 100
}
