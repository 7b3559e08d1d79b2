package pdf

import (
	"fmt"
	"math"

	"github.com/sombrek/pdfstack/common"
	"gonum.org/v1/gonum/floats"
)

// PDFDict owns a discretized evaluation grid and a catalog of truncated
// Gaussian kernels keyed by a discretized standard deviation. Each kernel is
// evaluated once, together with its running cumulative sum, so that stacking
// an observation reduces to a lookup, a shifted paste and a renormalization.
//
// A PDFDict is immutable after construction and safe to share across
// concurrent stacking calls on independent output buffers.
type PDFDict struct {
	grid  []float64
	delta float64

	sigmaGrid  []float64
	dsigma     float64
	sigmaTrunc float64

	// per sigma bucket: half-window size in grid cells, kernel samples at
	// offsets -width..+width, and the kernel's cumulative sum.
	widths     []int
	kernels    [][]float64
	kernelCDFs [][]float64

	kernel *GaussianKernel
}

type DictOptions struct {
	// SigmaTrunc is the number of standard deviations kept on each side of a
	// kernel center before truncation. Zero means DefaultSigmaTrunc.
	SigmaTrunc float64
}

func DefaultDictOptions() *DictOptions {
	return &DictOptions{SigmaTrunc: DefaultSigmaTrunc}
}

// NewPDFDict validates the grids and precomputes the kernel catalog.
// grid and sigmaGrid must both be evenly spaced with at least 2 points, and
// sigmaGrid must be strictly positive. The grid must be large enough to hold
// the widest truncated kernel around its middle index.
func NewPDFDict(grid, sigmaGrid []float64, opts *DictOptions) (*PDFDict, error) {
	sigmaTrunc := DefaultSigmaTrunc
	if opts != nil && opts.SigmaTrunc > 0 {
		sigmaTrunc = opts.SigmaTrunc
	}

	delta, ok := uniformSpacing(grid)
	if !ok {
		return nil, fmt.Errorf("pdf grid must be evenly spaced with >= 2 points: %w",
			common.ErrorInvalidGrid)
	}
	dsigma, ok := uniformSpacing(sigmaGrid)
	if !ok {
		return nil, fmt.Errorf("sigma grid must be evenly spaced with >= 2 points: %w",
			common.ErrorInvalidSigmaGrid)
	}
	if sigmaGrid[0] <= 0 {
		return nil, fmt.Errorf("sigma grid must be strictly positive: %w",
			common.ErrorInvalidSigmaGrid)
	}

	// Copied so later mutation of the caller's slices cannot reach into the
	// dictionary.
	d := &PDFDict{
		grid:       append([]float64(nil), grid...),
		delta:      delta,
		sigmaGrid:  append([]float64(nil), sigmaGrid...),
		dsigma:     dsigma,
		sigmaTrunc: sigmaTrunc,
		widths:     make([]int, 0, len(sigmaGrid)),
		kernels:    make([][]float64, 0, len(sigmaGrid)),
		kernelCDFs: make([][]float64, 0, len(sigmaGrid)),
		kernel:     NewGaussianKernel(),
	}

	mid := len(grid) / 2
	for _, sigma := range sigmaGrid {
		// The tiny slack keeps spacing round-off from tipping the ceiling
		// one cell past the intended half-window.
		width := int(math.Ceil(sigma*sigmaTrunc/delta - 1e-9))
		if mid-width < 0 || mid+width+1 > len(grid) {
			return nil, fmt.Errorf("truncation window %d for sigma %v exceeds the grid: %w",
				width, sigma, common.ErrorInvalidGrid)
		}

		kernel := d.kernel.Evaluate(grid[mid], sigma, grid[mid-width:mid+width+1])
		cdf := make([]float64, len(kernel))
		floats.CumSum(cdf, kernel)

		d.widths = append(d.widths, width)
		d.kernels = append(d.kernels, kernel)
		d.kernelCDFs = append(d.kernelCDFs, cdf)
	}

	return d, nil
}

// Fit quantizes raw observations onto the dictionary: the mean maps to its
// nearest grid index and the sigma to its nearest dictionary bucket.
//
// Grid indices are deliberately not clamped, so values far outside the grid
// produce out-of-range indices; StackDict skips those. Sigma indices are
// clamped to [0, Ndict-1], snapping out-of-range sigmas to the nearest bucket.
func (d *PDFDict) Fit(values, sigmas []float64) ([]int, []int, error) {
	if len(values) == 0 || len(values) != len(sigmas) {
		return nil, nil, common.ErrorInvalidValue
	}

	gridIdx := make([]int, len(values))
	dictIdx := make([]int, len(values))
	for i := range values {
		gridIdx[i] = int(math.Round((values[i] - d.grid[0]) / d.delta))
		j := int(math.Round((sigmas[i] - d.sigmaGrid[0]) / d.dsigma))
		dictIdx[i] = clampInt(j, 0, len(d.sigmaGrid)-1)
	}
	return gridIdx, dictIdx, nil
}

// Grid returns the underlying evaluation grid. Callers must not modify it.
func (d *PDFDict) Grid() []float64 { return d.grid }

func (d *PDFDict) Ngrid() int { return len(d.grid) }

func (d *PDFDict) Delta() float64 { return d.delta }

func (d *PDFDict) SigmaGrid() []float64 { return d.sigmaGrid }

func (d *PDFDict) Ndict() int { return len(d.sigmaGrid) }

func (d *PDFDict) DSigma() float64 { return d.dsigma }

func (d *PDFDict) SigmaTrunc() float64 { return d.sigmaTrunc }

// Width returns the half-window size of dictionary entry i in grid cells.
func (d *PDFDict) Width(i int) int { return d.widths[i] }

// Kernel returns the samples of dictionary entry i. Callers must not modify it.
func (d *PDFDict) Kernel(i int) []float64 { return d.kernels[i] }

// KernelCDF returns the cumulative sum of dictionary entry i. Callers must
// not modify it.
func (d *PDFDict) KernelCDF(i int) []float64 { return d.kernelCDFs[i] }
