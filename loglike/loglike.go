package loglike

import (
	"math"

	"github.com/sombrek/pdfstack/common"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultLTol is the fractional log-likelihood tolerance used to stop the
// free-scale iteration.
const DefaultLTol = 1e-4

type Options struct {
	// FreeScale fits a per-model scale factor mapping the model to the data.
	FreeScale bool

	// IgnoreModelErr drops the model variance term from the fit.
	IgnoreModelErr bool

	// DimPrior transforms the likelihood to a chi-squared distribution with
	// Ndim (Ndim-1 when FreeScale) degrees of freedom.
	DimPrior bool

	// LTol is the fractional log-likelihood convergence tolerance of the
	// free-scale iteration. Zero means DefaultLTol.
	LTol float64
}

func DefaultOptions() *Options {
	return &Options{DimPrior: true, LTol: DefaultLTol}
}

// Result holds the per-model fit statistics.
type Result struct {
	LnLike []float64
	Ndim   []int
	Chi2   []float64

	// Scale is the per-model factor mapping the model onto the data.
	// Only populated by free-scale fits.
	Scale []float64
}

// LogLike computes the log-likelihood between one noisy data vector and a set
// of noisy model vectors, over the dimensions both masks include.
//
// data, dataErr and dataMask share length Nfilt; models, modelsErr and
// modelsMask are Nmodel rows of length Nfilt each.
func LogLike(data, dataErr []float64, dataMask []bool,
	models, modelsErr [][]float64, modelsMask [][]bool, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := checkShapes(data, dataErr, dataMask, models, modelsErr, modelsMask); err != nil {
		return nil, err
	}

	if opts.FreeScale {
		return loglikeFreeScale(data, dataErr, dataMask, models, modelsErr, modelsMask, opts)
	}
	return loglikeFixed(data, dataErr, dataMask, models, modelsErr, modelsMask, opts)
}

func loglikeFixed(data, dataErr []float64, dataMask []bool,
	models, modelsErr [][]float64, modelsMask [][]bool, opts *Options) (*Result, error) {
	nmodel, nfilt := len(models), len(data)
	res := &Result{
		LnLike: make([]float64, nmodel),
		Ndim:   make([]int, nmodel),
		Chi2:   make([]float64, nmodel),
	}

	for m := 0; m < nmodel; m++ {
		var chi2, sumLogVar float64
		ndim := 0
		for f := 0; f < nfilt; f++ {
			totVar := dataErr[f] * dataErr[f]
			if !opts.IgnoreModelErr {
				totVar += modelsErr[m][f] * modelsErr[m][f]
			}
			sumLogVar += math.Log(totVar)
			if !dataMask[f] || !modelsMask[m][f] {
				continue
			}
			ndim++
			resid := data[f] - models[m][f]
			chi2 += resid * resid / totVar
		}

		res.Ndim[m] = ndim
		res.Chi2[m] = chi2
		if opts.DimPrior {
			res.LnLike[m] = chi2LogPDF(float64(ndim), chi2)
		} else {
			res.LnLike[m] = -0.5*chi2 - 0.5*(float64(ndim)*math.Log(2*math.Pi)+sumLogVar)
		}
	}
	return res, nil
}

func loglikeFreeScale(data, dataErr []float64, dataMask []bool,
	models, modelsErr [][]float64, modelsMask [][]bool, opts *Options) (*Result, error) {
	nmodel, nfilt := len(models), len(data)
	ltol := opts.LTol
	if ltol <= 0 {
		ltol = DefaultLTol
	}

	res := &Result{
		LnLike: make([]float64, nmodel),
		Ndim:   make([]int, nmodel),
		Chi2:   make([]float64, nmodel),
		Scale:  make([]float64, nmodel),
	}

	for m := 0; m < nmodel; m++ {
		ndim := 0
		for f := 0; f < nfilt; f++ {
			if dataMask[f] && modelsMask[m][f] {
				ndim++
			}
		}
		res.Ndim[m] = ndim

		totVar := make([]float64, nfilt)
		for f := 0; f < nfilt; f++ {
			totVar[f] = dataErr[f] * dataErr[f]
			if !opts.IgnoreModelErr {
				totVar[f] += modelsErr[m][f] * modelsErr[m][f]
			}
		}

		scale := scaleFactor(data, dataMask, models[m], modelsMask[m], totVar)
		chi2 := scaledChi2(data, dataMask, models[m], modelsMask[m], totVar, scale)
		lnl := normalLogPDF(ndim, chi2, totVar)

		// Iterate the scale/variance pair to convergence when model errors
		// stay in the fit.
		if !opts.IgnoreModelErr {
			for {
				for f := 0; f < nfilt; f++ {
					scaledErr := scale * modelsErr[m][f]
					totVar[f] = dataErr[f]*dataErr[f] + scaledErr*scaledErr
				}
				scaleNew := scaleFactor(data, dataMask, models[m], modelsMask[m], totVar)
				chi2 = scaledChi2(data, dataMask, models[m], modelsMask[m], totVar, scaleNew)
				lnlNew := normalLogPDF(ndim, chi2, totVar)

				lerr := math.Abs((lnlNew - lnl) / lnl)
				lnl, scale = lnlNew, scaleNew
				// The negated comparison also exits on a NaN lerr, which
				// degenerate (zero-variance) dimensions produce.
				if !(lerr > ltol) {
					break
				}
			}
		}

		res.Chi2[m] = chi2
		res.Scale[m] = scale
		if opts.DimPrior {
			res.LnLike[m] = chi2LogPDF(float64(ndim-1), chi2)
		} else {
			res.LnLike[m] = lnl
		}
	}
	return res, nil
}

// scaleFactor is the closed-form least-squares factor mapping the model onto
// the data under the given per-dimension variances.
func scaleFactor(data []float64, dataMask []bool, model []float64, modelMask []bool, totVar []float64) float64 {
	var inter, shape float64
	for f := range data {
		if !dataMask[f] || !modelMask[f] {
			continue
		}
		inter += model[f] * data[f] / totVar[f]
		shape += model[f] * model[f] / totVar[f]
	}
	return inter / shape
}

func scaledChi2(data []float64, dataMask []bool, model []float64, modelMask []bool, totVar []float64, scale float64) float64 {
	var chi2 float64
	for f := range data {
		if !dataMask[f] || !modelMask[f] {
			continue
		}
		resid := data[f] - scale*model[f]
		chi2 += resid * resid / totVar[f]
	}
	return chi2
}

func normalLogPDF(ndim int, chi2 float64, totVar []float64) float64 {
	var sumLogVar float64
	for _, v := range totVar {
		sumLogVar += math.Log(v)
	}
	return -0.5*chi2 - 0.5*(float64(ndim)*math.Log(2*math.Pi)+sumLogVar)
}

// chi2LogPDF is the log-density of a chi-squared distribution with k degrees
// of freedom evaluated at x.
func chi2LogPDF(k, x float64) float64 {
	return distuv.ChiSquared{K: k}.LogProb(x)
}

func checkShapes(data, dataErr []float64, dataMask []bool,
	models, modelsErr [][]float64, modelsMask [][]bool) error {
	nfilt := len(data)
	if nfilt == 0 || len(dataErr) != nfilt || len(dataMask) != nfilt {
		return common.ErrorInvalidValue
	}
	if len(models) == 0 || len(modelsErr) != len(models) || len(modelsMask) != len(models) {
		return common.ErrorInvalidValue
	}
	for m := range models {
		if len(models[m]) != nfilt || len(modelsErr[m]) != nfilt || len(modelsMask[m]) != nfilt {
			return common.ErrorInvalidValue
		}
	}
	return nil
}
