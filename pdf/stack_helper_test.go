package pdf_test

import (
	"context"
	"testing"

	"github.com/sombrek/pdfstack/common"
	"github.com/sombrek/pdfstack/model"
	"github.com/sombrek/pdfstack/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDict(t *testing.T) *pdf.PDFDict {
	t.Helper()
	d, err := pdf.NewPDFDict(linspace(-5, 5, 101), linspace(0.1, 0.5, 5), nil)
	require.NoError(t, err)
	return d
}

func TestStackEnsemble(t *testing.T) {
	d := newTestDict(t)
	ctx := context.Background()

	observations := []model.Observation{
		{Value: 0, Sigma: 0.3}, // weight defaults to 1
		{Value: 1, Sigma: 0.2, Weight: 2},
		{Value: 9, Sigma: -1, Weight: 100}, // invalid sigma, dropped
	}

	densities, err := pdf.StackEnsemble(ctx, d, observations, pdf.SelectAll{})
	require.NoError(t, err)
	require.Len(t, densities, d.Ngrid())

	var sum float64
	grid := d.Grid()
	for i, density := range densities {
		assert.Equal(t, grid[i], density.X)
		sum += density.Value
	}
	assert.InDelta(t, 3.0, sum, 1e-9)
}

func TestStackEnsembleErrors(t *testing.T) {
	d := newTestDict(t)
	ctx := context.Background()

	_, err := pdf.StackEnsemble(ctx, nil, []model.Observation{{Value: 0, Sigma: 0.3}}, nil)
	assert.ErrorIs(t, err, common.ErrorMissingInput)

	_, err = pdf.StackEnsemble(ctx, d, nil, nil)
	assert.ErrorIs(t, err, common.ErrorMissingInput)

	// A batch with no valid observation left is rejected, not stacked empty.
	_, err = pdf.StackEnsemble(ctx, d, []model.Observation{{Value: 0, Sigma: 0}}, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestStackEnsembleQuantized(t *testing.T) {
	d := newTestDict(t)
	ctx := context.Background()

	observations := []model.QuantizedObservation{
		{GridIndex: 50, DictIndex: 0, Weight: 1.5},
		{GridIndex: 60, DictIndex: 2}, // weight defaults to 1
	}

	densities, err := pdf.StackEnsembleQuantized(ctx, d, observations, pdf.SelectAll{})
	require.NoError(t, err)
	require.Len(t, densities, d.Ngrid())

	var sum float64
	for _, density := range densities {
		sum += density.Value
	}
	assert.InDelta(t, 2.5, sum, 1e-9)

	_, err = pdf.StackEnsembleQuantized(ctx, d, nil, nil)
	assert.ErrorIs(t, err, common.ErrorMissingInput)
}
