package pdf

import (
	"math"

	"github.com/sombrek/pdfstack/common"
	"gonum.org/v1/gonum/floats"
)

// StackDict accumulates pre-quantized observations onto the dictionary grid.
// Each selected observation pastes its dictionary kernel centered at its grid
// index, clipped at the grid boundaries and rescaled by the retained kernel
// mass so edge clipping does not bleed probability off the grid.
//
// Each observation's contribution sums to its weight; no overall
// normalization of the returned density is performed.
//
// weights may be nil for uniform weighting, policy may be nil for
// DefaultSelectPolicy. Observations that land entirely off the grid, or whose
// clipped window retains no mass, contribute nothing and are skipped.
func StackDict(dict *PDFDict, gridIdx, dictIdx []int, weights []float64, policy SelectPolicy) ([]float64, error) {
	if dict == nil || len(gridIdx) == 0 {
		return nil, common.ErrorMissingInput
	}
	if len(gridIdx) != len(dictIdx) {
		return nil, common.ErrorInvalidValue
	}
	if len(weights) == 0 {
		weights = initOnes(len(gridIdx))
	} else if len(weights) != len(gridIdx) {
		return nil, common.ErrorInvalidValue
	}
	if policy == nil {
		policy = DefaultSelectPolicy()
	}

	ngrid := dict.Ngrid()
	out := make([]float64, ngrid)

	for _, i := range policy.Select(weights) {
		pos, idx := gridIdx[i], dictIdx[i]
		if idx < 0 || idx >= dict.Ndict() {
			continue
		}
		width := dict.widths[idx]
		kernel := dict.kernels[idx]
		kcdf := dict.kernelCDFs[idx]

		// Clip the conceptual window [pos-width, pos+width] to the grid.
		low := clampInt(pos-width, 0, ngrid)
		high := clampInt(pos+width+1, 0, ngrid)
		if low >= high {
			continue
		}
		lpad := low - (pos - width)
		hpad := high - (pos + width + 1) // <= 0, and 0 means no high-side clip

		// Mass retained inside the clipped window, by CDF difference.
		norm := kcdf[len(kcdf)-1+hpad]
		if lpad > 0 {
			norm -= kcdf[lpad-1]
		}
		if norm <= 0 {
			continue
		}

		scale := weights[i] / norm
		seg := kernel[lpad : 2*width+1+hpad]
		for k, v := range seg {
			out[low+k] += scale * v
		}
	}

	return out, nil
}

// StackDictValues quantizes raw observations through dict.Fit and stacks
// them. It is the front door for callers holding (value, sigma) pairs rather
// than precomputed indices.
func StackDictValues(dict *PDFDict, values, sigmas, weights []float64, policy SelectPolicy) ([]float64, error) {
	if dict == nil || len(values) == 0 || len(sigmas) == 0 {
		return nil, common.ErrorMissingInput
	}
	gridIdx, dictIdx, err := dict.Fit(values, sigmas)
	if err != nil {
		return nil, err
	}
	return StackDict(dict, gridIdx, dictIdx, weights, policy)
}

type KDEOptions struct {
	// Dx overrides the grid spacing. Zero means grid[1]-grid[0].
	Dx float64
	// SigThresh is the number of standard deviations kept on each side of an
	// observation before clipping. Zero means DefaultSigThresh.
	SigThresh float64
}

func DefaultKDEOptions() *KDEOptions {
	return &KDEOptions{SigThresh: DefaultSigThresh}
}

// KDE is the direct (non-dictionary) stacking path: each selected observation
// evaluates its Gaussian on the fly over a window of half-width
// round(SigThresh*sigma/dx) around its nearest grid point, clamped to the
// grid, and accumulates weight * kernel normalized by the discrete sum of the
// clipped samples.
//
// The discrete-sum renormalization differs slightly from StackDict's
// CDF-based one in its discretization error; the two paths agree up to the
// sigma quantization of the dictionary.
func KDE(values, sigmas, grid, weights []float64, opts *KDEOptions, policy SelectPolicy) ([]float64, error) {
	if len(values) == 0 || len(sigmas) == 0 {
		return nil, common.ErrorMissingInput
	}
	if len(values) != len(sigmas) {
		return nil, common.ErrorInvalidValue
	}
	if len(grid) < 2 {
		return nil, common.ErrorInvalidGrid
	}
	if len(weights) == 0 {
		weights = initOnes(len(values))
	} else if len(weights) != len(values) {
		return nil, common.ErrorInvalidValue
	}
	if policy == nil {
		policy = DefaultSelectPolicy()
	}

	dx := grid[1] - grid[0]
	sigThresh := DefaultSigThresh
	if opts != nil {
		if opts.Dx > 0 {
			dx = opts.Dx
		}
		if opts.SigThresh > 0 {
			sigThresh = opts.SigThresh
		}
	}

	nx := len(grid)
	kernel := NewGaussianKernel()
	out := make([]float64, nx)

	for _, i := range policy.Select(weights) {
		center := int(math.Round((values[i] - grid[0]) / dx))
		offset := int(math.Round(sigThresh * sigmas[i] / dx))
		low := clampInt(center-offset, 0, nx)
		high := clampInt(center+offset, 0, nx)
		if low >= high {
			continue
		}

		gkde := kernel.Evaluate(values[i], sigmas[i], grid[low:high])
		norm := floats.Sum(gkde)
		if norm == 0 {
			continue
		}

		scale := weights[i] / norm
		for k, v := range gkde {
			out[low+k] += scale * v
		}
	}

	return out, nil
}
