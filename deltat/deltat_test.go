package deltat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtlepseudonym/astrotime/sentinel"
)

func jan1(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestPolynomial(t *testing.T) {
	p := Polynomial{}
	assert.InDelta(t, 69.0, p.DeltaTSeconds(time.Date(2000, time.July, 2, 0, 0, 0, 0, time.UTC)), 0.06)
	assert.InDelta(t, 71.0, p.DeltaTSeconds(time.Date(2020, time.July, 2, 0, 0, 0, 0, time.UTC)), 0.06)
}

func TestBlended(t *testing.T) {
	b := DefaultBlended()

	t.Run("anchor", func(t *testing.T) {
		assert.InDelta(t, 63.83, b.DeltaTSeconds(jan1(2000)), 0.01)
	})

	t.Run("interpolates inside range", func(t *testing.T) {
		got := b.DeltaTSeconds(jan1(1985))
		assert.InDelta(t, (50.54+56.86)/2, got, 0.001)
	})

	t.Run("extrapolates beyond last anchor", func(t *testing.T) {
		got := b.DeltaTSeconds(jan1(2030))
		// quadratic through 2010, 2015, 2020
		assert.InDelta(t, 73.25, got, 0.01)
		assert.Greater(t, got, 69.36)
		assert.NotEqual(t, 69.36, got)
	})

	t.Run("extrapolates before first anchor", func(t *testing.T) {
		got := b.DeltaTSeconds(jan1(1880))
		want := lagrange(1880, blendedAnchors[0], blendedAnchors[1], blendedAnchors[2])
		assert.InDelta(t, want, got, 1e-9)
		assert.NotEqual(t, -2.7, got)
	})
}

func TestNewBlendedValidation(t *testing.T) {
	_, err := NewBlended([]Anchor{{2000, 1}, {2001, 2}})
	require.ErrorIs(t, err, sentinel.ErrInvalidConfiguration)

	_, err = NewBlended([]Anchor{{2000, 1}, {2002, 2}, {2001, 3}})
	require.ErrorIs(t, err, sentinel.ErrInvalidConfiguration)

	anchors := []Anchor{{2000, 1}, {2001, 2}, {2002, 3}}
	b, err := NewBlended(anchors)
	require.NoError(t, err)

	// later edits to the caller's slice do not leak into the provider
	anchors[0].Seconds = 100
	assert.Equal(t, 1.0, b.Anchors()[0].Seconds)
}

func TestHistorical(t *testing.T) {
	h := DefaultHistorical()

	tests := []struct {
		name  string
		at    time.Time
		want  float64
		delta float64
	}{
		{"clamps before table", time.Date(-1000, time.June, 1, 0, 0, 0, 0, time.UTC), 17190, 0},
		{"clamps after table", jan1(2100), 69.4, 0},
		{"interpolates 1000-1100", time.Date(1050, time.July, 2, 0, 0, 0, 0, time.UTC), 1327.6, 0.1},
		{"near 2000 anchor", jan1(2000), 63.8, 0.01},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.want, h.DeltaTSeconds(test.at), test.delta)
		})
	}
}

func TestHybrid(t *testing.T) {
	h := NewHybrid(nil)
	historical := DefaultHistorical()

	for _, year := range []int{-200, 1600, 1972, 2019, 2020} {
		at := time.Date(year, time.March, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, historical.DeltaTSeconds(at), h.DeltaTSeconds(at), "year %d", year)
	}

	at := time.Date(2030, time.July, 2, 12, 0, 0, 0, time.UTC)
	assert.InDelta(t, 69.4+0.25*10, h.DeltaTSeconds(at), 0.01)
	assert.Greater(t, h.DeltaTSeconds(jan1(2040)), h.DeltaTSeconds(jan1(2030)))
}

func TestDecimalYear(t *testing.T) {
	assert.Equal(t, 2001.0, decimalYear(jan1(2001)))
	assert.InDelta(t, 2000.5, decimalYear(time.Date(2000, time.July, 2, 0, 0, 0, 0, time.UTC)), 0.002)
}
