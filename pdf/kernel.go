package pdf

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// GaussianKernel evaluates the normal density in closed form. It is stateless
// and safe to share.
type GaussianKernel struct{}

func NewGaussianKernel() *GaussianKernel {
	return &GaussianKernel{}
}

// Shape is the standard normal density at x.
func (k *GaussianKernel) Shape(x float64) float64 {
	return 0.3989422804014327 * math.Exp(-x*x/2.0)
}

// Evaluate returns N(x | mean, std) sampled at each position in xs.
// std must be positive.
func (k *GaussianKernel) Evaluate(mean, std float64, xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = k.Shape((x-mean)/std) / std
	}
	return res
}

// EvaluateBinned integrates N(x | mean, std) over adjacent pairs of bin
// edges via CDF differences, returning len(edges)-1 amplitudes.
func (k *GaussianKernel) EvaluateBinned(mean, std float64, edges []float64) []float64 {
	if len(edges) < 2 {
		return nil
	}
	normal := distuv.Normal{Mu: mean, Sigma: std}
	res := make([]float64, len(edges)-1)
	prev := normal.CDF(edges[0])
	for i := 1; i < len(edges); i++ {
		cur := normal.CDF(edges[i])
		res[i-1] = cur - prev
		prev = cur
	}
	return res
}
