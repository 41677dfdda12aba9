package solar

import (
	"fmt"
	"math"

	"github.com/subtlepseudonym/astrotime/sentinel"
)

// Location is a point on the Earth's surface in degrees. Longitude is
// positive east.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks that the coordinates are finite and in range.
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", sentinel.ErrInvalidConfiguration, l.Latitude)
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", sentinel.ErrInvalidConfiguration, l.Longitude)
	}
	return nil
}

func (l Location) String() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}
