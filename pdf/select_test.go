package pdf_test

import (
	"testing"

	"github.com/sombrek/pdfstack/pdf"
	"github.com/stretchr/testify/assert"
)

func TestAmplitudeThreshold(t *testing.T) {
	weights := []float64{1, 1, 1000}

	// Everything below 0.5 * max is dropped.
	assert.Equal(t, []int{2}, pdf.AmplitudeThreshold{Thresh: 0.5}.Select(weights))

	// The default threshold cuts at 1e-3 * 1000 = 1, which the unit weights
	// do not exceed.
	assert.Equal(t, []int{2}, pdf.DefaultSelectPolicy().Select(weights))

	// Uniform weights all survive.
	assert.Equal(t, []int{0, 1, 2},
		pdf.AmplitudeThreshold{Thresh: pdf.DefaultWtThresh}.Select([]float64{1, 1, 1}))

	assert.Empty(t, pdf.AmplitudeThreshold{Thresh: 0.5}.Select(nil))
}

func TestCumulativeMassThreshold(t *testing.T) {
	// Ascending-weight cumulative mass: 1/1002 and 2/1002 stay within
	// 1 - 2e-4, the dominant weight closes the CDF at exactly 1 and is
	// trimmed.
	sel := pdf.CumulativeMassThreshold{Thresh: pdf.DefaultCdfThresh}.Select([]float64{1, 1, 1000})
	assert.Equal(t, []int{0, 1}, sel)

	// Equal weights: cumulative fractions 0.25, 0.5, 0.75, 1.
	sel = pdf.CumulativeMassThreshold{Thresh: 0.1}.Select([]float64{1, 1, 1, 1})
	assert.Equal(t, []int{0, 1, 2}, sel)

	assert.Empty(t, pdf.CumulativeMassThreshold{Thresh: 0.1}.Select(nil))
	assert.Empty(t, pdf.CumulativeMassThreshold{Thresh: 0.1}.Select([]float64{0, 0}))
}

func TestSelectAll(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, pdf.SelectAll{}.Select([]float64{5, 0, 1}))
	assert.Empty(t, pdf.SelectAll{}.Select(nil))
}
