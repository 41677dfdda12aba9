package deltat

import "time"

// historicalAnchors follows Morrison & Stephenson (2004) and the
// Espenak/NASA five millennium canon. Years are astronomical, so -500 is
// 501 BCE.
var historicalAnchors = []Anchor{
	{-500, 17190},
	{-400, 15530},
	{-300, 14080},
	{-200, 12790},
	{-100, 11640},
	{0, 10580},
	{100, 9600},
	{200, 8640},
	{300, 7680},
	{400, 6700},
	{500, 5710},
	{600, 4740},
	{700, 3810},
	{800, 2960},
	{900, 2200},
	{1000, 1570},
	{1100, 1090},
	{1200, 740},
	{1300, 490},
	{1400, 320},
	{1500, 200},
	{1600, 120},
	{1700, 9},
	{1750, 13},
	{1800, 14},
	{1850, 7},
	{1900, -3},
	{1950, 29},
	{1955, 31.1},
	{1960, 33.2},
	{1965, 35.7},
	{1970, 40.2},
	{1975, 45.5},
	{1980, 50.5},
	{1985, 54.3},
	{1990, 56.9},
	{1995, 60.8},
	{2000, 63.8},
	{2005, 64.7},
	{2010, 67.0},
	{2015, 67.6},
	{2020, 69.4},
}

// Historical interpolates linearly between anchors and clamps to the
// boundary anchor outside the table. Extrapolating pre-telescopic ΔT is
// not physically meaningful.
type Historical struct {
	anchors []Anchor
}

// NewHistorical builds a Historical provider. At least two ascending
// anchors are required.
func NewHistorical(anchors []Anchor) (*Historical, error) {
	a, err := validateAnchors(anchors, 2)
	if err != nil {
		return nil, err
	}
	return &Historical{anchors: a}, nil
}

var defaultHistorical = &Historical{anchors: historicalAnchors}

// DefaultHistorical returns the provider over the built-in 500 BCE-2020
// anchors.
func DefaultHistorical() *Historical {
	return defaultHistorical
}

func (h *Historical) DeltaTSeconds(utc time.Time) float64 {
	y := dayYear(utc)
	a := h.anchors

	if y <= a[0].Year {
		return a[0].Seconds
	}
	if y >= a[len(a)-1].Year {
		return a[len(a)-1].Seconds
	}
	return interpolate(a, y)
}

// Anchors returns a copy of the calibration table.
func (h *Historical) Anchors() []Anchor {
	out := make([]Anchor, len(h.anchors))
	copy(out, h.anchors)
	return out
}

const (
	hybridLastYear  = 2020
	hybridDriftBase = 2020.5
	hybridDriftRate = 0.25 // seconds per year
)

// Hybrid uses Historical through the end of 2020 and continues with a
// coarse linear drift from the mid-2020 value afterwards.
type Hybrid struct {
	historical *Historical
}

// NewHybrid wraps h. A nil h uses DefaultHistorical.
func NewHybrid(h *Historical) *Hybrid {
	if h == nil {
		h = DefaultHistorical()
	}
	return &Hybrid{historical: h}
}

func (h *Hybrid) DeltaTSeconds(utc time.Time) float64 {
	if utc.UTC().Year() <= hybridLastYear {
		return h.historical.DeltaTSeconds(utc)
	}

	mid := time.Date(hybridLastYear, time.July, 1, 0, 0, 0, 0, time.UTC)
	base := h.historical.DeltaTSeconds(mid)
	return base + hybridDriftRate*(dayYear(utc)-hybridDriftBase)
}
