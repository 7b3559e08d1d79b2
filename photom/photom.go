// Package photom converts between photometric flux densities and magnitude
// systems, propagating Gaussian errors through the closed forms.
package photom

import (
	"math"

	"github.com/sombrek/pdfstack/common"
)

var ln10 = math.Log(10)

// Magnitude converts flux densities to AB magnitudes. zeropoints act as a
// location parameter and may be nil (all 1), length 1 (broadcast) or match
// len(phot).
func Magnitude(phot, photErr, zeropoints []float64) ([]float64, []float64, error) {
	if len(phot) == 0 || len(photErr) != len(phot) {
		return nil, nil, common.ErrorInvalidValue
	}
	zp, err := broadcast(zeropoints, len(phot))
	if err != nil {
		return nil, nil, err
	}

	mag := make([]float64, len(phot))
	magErr := make([]float64, len(phot))
	for i := range phot {
		mag[i] = -2.5 * math.Log10(phot[i]/zp[i])
		magErr[i] = 2.5 / ln10 * photErr[i] / phot[i]
	}
	return mag, magErr, nil
}

// InvMagnitude converts AB magnitudes back to flux densities.
func InvMagnitude(mag, magErr, zeropoints []float64) ([]float64, []float64, error) {
	if len(mag) == 0 || len(magErr) != len(mag) {
		return nil, nil, common.ErrorInvalidValue
	}
	zp, err := broadcast(zeropoints, len(mag))
	if err != nil {
		return nil, nil, err
	}

	phot := make([]float64, len(mag))
	photErr := make([]float64, len(mag))
	for i := range mag {
		phot[i] = math.Pow(10, -0.4*mag[i]) * zp[i]
		photErr[i] = magErr[i] * 0.4 * ln10 * phot[i]
	}
	return phot, photErr, nil
}

// Luptitude converts flux densities to asinh magnitudes (Lupton et al. 1999),
// which stay finite through zero and negative fluxes. skynoise acts as the
// softening parameter, zeropoints as the location parameter; both broadcast
// like in Magnitude.
func Luptitude(phot, photErr, skynoise, zeropoints []float64) ([]float64, []float64, error) {
	if len(phot) == 0 || len(photErr) != len(phot) {
		return nil, nil, common.ErrorInvalidValue
	}
	sky, err := broadcast(skynoise, len(phot))
	if err != nil {
		return nil, nil, err
	}
	zp, err := broadcast(zeropoints, len(phot))
	if err != nil {
		return nil, nil, err
	}

	mag := make([]float64, len(phot))
	magErr := make([]float64, len(phot))
	for i := range phot {
		mag[i] = -2.5 / ln10 * (math.Asinh(phot[i]/(2*sky[i])) + math.Log(sky[i]/zp[i]))
		num := 2.5 * math.Log10(math.E) * photErr[i]
		magErr[i] = math.Sqrt(num * num / (4*sky[i]*sky[i] + phot[i]*phot[i]))
	}
	return mag, magErr, nil
}

// InvLuptitude converts asinh magnitudes back to flux densities.
func InvLuptitude(mag, magErr, skynoise, zeropoints []float64) ([]float64, []float64, error) {
	if len(mag) == 0 || len(magErr) != len(mag) {
		return nil, nil, common.ErrorInvalidValue
	}
	sky, err := broadcast(skynoise, len(mag))
	if err != nil {
		return nil, nil, err
	}
	zp, err := broadcast(zeropoints, len(mag))
	if err != nil {
		return nil, nil, err
	}

	phot := make([]float64, len(mag))
	photErr := make([]float64, len(mag))
	for i := range mag {
		phot[i] = 2 * sky[i] * math.Sinh(ln10/-2.5*mag[i]-math.Log(sky[i]/zp[i]))
		photErr[i] = math.Sqrt((4*sky[i]*sky[i]+phot[i]*phot[i])*magErr[i]*magErr[i]) /
			(2.5 * math.Log10(math.E))
	}
	return phot, photErr, nil
}

// broadcast expands a nil (unit), scalar or full-length parameter slice to n
// elements.
func broadcast(vals []float64, n int) ([]float64, error) {
	switch len(vals) {
	case 0:
		res := make([]float64, n)
		for i := range res {
			res[i] = 1
		}
		return res, nil
	case 1:
		res := make([]float64, n)
		for i := range res {
			res[i] = vals[0]
		}
		return res, nil
	case n:
		return vals, nil
	default:
		return nil, common.ErrorInvalidValue
	}
}
