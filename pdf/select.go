package pdf

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SelectPolicy decides which observations of a batch take part in stacking.
// The concrete policies are mutually exclusive by construction; exactly one
// is passed per call.
type SelectPolicy interface {
	Select(weights []float64) []int
}

// AmplitudeThreshold keeps the observations whose weight exceeds
// Thresh * max(weights).
type AmplitudeThreshold struct {
	Thresh float64
}

func (p AmplitudeThreshold) Select(weights []float64) []int {
	if len(weights) == 0 {
		return nil
	}
	cut := p.Thresh * floats.Max(weights)
	sel := make([]int, 0, len(weights))
	for i, w := range weights {
		if w > cut {
			sel = append(sel, i)
		}
	}
	return sel
}

// CumulativeMassThreshold sorts the weights ascending and keeps the
// observations whose cumulative normalized weight stays within 1 - Thresh.
// This trims the top tail of the cumulative weight distribution rather than
// cutting on individual weight amplitudes.
type CumulativeMassThreshold struct {
	Thresh float64
}

func (p CumulativeMassThreshold) Select(weights []float64) []int {
	n := len(weights)
	if n == 0 {
		return nil
	}
	total := floats.Sum(weights)
	if total <= 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] < weights[order[b]]
	})

	sel := make([]int, 0, n)
	cum := 0.0
	for _, idx := range order {
		cum += weights[idx]
		if cum/total <= 1-p.Thresh {
			sel = append(sel, idx)
		}
	}
	return sel
}

// SelectAll keeps every observation.
type SelectAll struct{}

func (SelectAll) Select(weights []float64) []int {
	sel := make([]int, len(weights))
	for i := range sel {
		sel[i] = i
	}
	return sel
}

// DefaultSelectPolicy is the amplitude threshold with DefaultWtThresh.
func DefaultSelectPolicy() SelectPolicy {
	return AmplitudeThreshold{Thresh: DefaultWtThresh}
}
