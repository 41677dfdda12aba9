package deltat

import "time"

// blendedAnchors is a compact subset of the USNO/NASA published ΔT
// series.
var blendedAnchors = []Anchor{
	{1900.0, -2.7},
	{1950.0, 29.15},
	{1955.0, 31.07},
	{1960.0, 33.17},
	{1970.0, 40.18},
	{1980.0, 50.54},
	{1990.0, 56.86},
	{2000.0, 63.83},
	{2005.0, 64.69},
	{2010.0, 66.07},
	{2015.0, 67.64},
	{2020.0, 69.36},
}

// Blended interpolates linearly between anchors and extrapolates beyond
// either end with the quadratic through the three nearest anchors, so
// the curvature trend continues rather than flattening.
type Blended struct {
	anchors []Anchor
}

// NewBlended builds a Blended provider. At least three ascending anchors
// are required.
func NewBlended(anchors []Anchor) (*Blended, error) {
	a, err := validateAnchors(anchors, 3)
	if err != nil {
		return nil, err
	}
	return &Blended{anchors: a}, nil
}

var defaultBlended = &Blended{anchors: blendedAnchors}

// DefaultBlended returns the provider over the built-in 1900-2020 anchors.
func DefaultBlended() *Blended {
	return defaultBlended
}

func (b *Blended) DeltaTSeconds(utc time.Time) float64 {
	y := decimalYear(utc)
	a := b.anchors
	n := len(a)

	switch {
	case y <= a[0].Year:
		return lagrange(y, a[0], a[1], a[2])
	case y >= a[n-1].Year:
		return lagrange(y, a[n-3], a[n-2], a[n-1])
	default:
		return interpolate(a, y)
	}
}

// Anchors returns a copy of the calibration table.
func (b *Blended) Anchors() []Anchor {
	out := make([]Anchor, len(b.anchors))
	copy(out, b.anchors)
	return out
}

// lagrange evaluates the quadratic through p0, p1, p2 at y.
func lagrange(y float64, p0, p1, p2 Anchor) float64 {
	l0 := ((y - p1.Year) * (y - p2.Year)) / ((p0.Year - p1.Year) * (p0.Year - p2.Year))
	l1 := ((y - p0.Year) * (y - p2.Year)) / ((p1.Year - p0.Year) * (p1.Year - p2.Year))
	l2 := ((y - p0.Year) * (y - p1.Year)) / ((p2.Year - p0.Year) * (p2.Year - p1.Year))
	return p0.Seconds*l0 + p1.Seconds*l1 + p2.Seconds*l2
}
