package photom_test

import (
	"math"
	"testing"

	"github.com/sombrek/pdfstack/common"
	"github.com/sombrek/pdfstack/photom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitude(t *testing.T) {
	mag, magErr, err := photom.Magnitude([]float64{1, 10}, []float64{0.1, 1}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, mag[0], 1e-12)
	assert.InDelta(t, -2.5, mag[1], 1e-12)
	// err/phot is 0.1 for both entries.
	want := 2.5 / math.Log(10) * 0.1
	assert.InDelta(t, want, magErr[0], 1e-12)
	assert.InDelta(t, want, magErr[1], 1e-12)
}

func TestMagnitudeRoundTrip(t *testing.T) {
	phot := []float64{0.5, 3, 42}
	photErr := []float64{0.05, 0.2, 1}
	zp := []float64{2}

	mag, magErr, err := photom.Magnitude(phot, photErr, zp)
	require.NoError(t, err)
	back, backErr, err := photom.InvMagnitude(mag, magErr, zp)
	require.NoError(t, err)

	for i := range phot {
		assert.InDelta(t, phot[i], back[i], 1e-12)
		assert.InDelta(t, photErr[i], backErr[i], 1e-12)
	}
}

func TestLuptitudeRoundTrip(t *testing.T) {
	// Asinh magnitudes stay defined through zero and negative fluxes.
	phot := []float64{5, 0.01, -0.3}
	photErr := []float64{0.1, 0.1, 0.1}
	sky := []float64{1}

	mag, magErr, err := photom.Luptitude(phot, photErr, sky, nil)
	require.NoError(t, err)
	for i := range mag {
		require.False(t, math.IsNaN(mag[i]))
		require.False(t, math.IsNaN(magErr[i]))
	}

	back, backErr, err := photom.InvLuptitude(mag, magErr, sky, nil)
	require.NoError(t, err)
	for i := range phot {
		assert.InDelta(t, phot[i], back[i], 1e-9)
		assert.InDelta(t, photErr[i], backErr[i], 1e-9)
	}
}

func TestLuptitudeMatchesMagnitudeForBrightFlux(t *testing.T) {
	phot := []float64{1e6}
	photErr := []float64{1}

	lup, _, err := photom.Luptitude(phot, photErr, []float64{1}, nil)
	require.NoError(t, err)
	mag, _, err := photom.Magnitude(phot, photErr, nil)
	require.NoError(t, err)

	assert.InDelta(t, mag[0], lup[0], 1e-6)
}

func TestBroadcastMismatch(t *testing.T) {
	_, _, err := photom.Magnitude([]float64{1, 2}, []float64{0.1, 0.1}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, _, err = photom.Magnitude([]float64{1, 2}, []float64{0.1}, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, _, err = photom.Luptitude([]float64{1, 2}, []float64{0.1, 0.1}, []float64{1, 2, 3}, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, _, err = photom.Magnitude(nil, nil, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}
