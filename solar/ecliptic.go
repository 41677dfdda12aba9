package solar

import (
	"math"

	"github.com/subtlepseudonym/astrotime/julian"
)

const (
	// obliquity of the ecliptic, degrees
	obliquity = 23.4397
	// J2000 correction for leap seconds and terrestrial time, days
	transitEpochOffset = 0.0008
)

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func deg(rad float64) float64 { return rad * 180 / math.Pi }

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// MeanSolarNoon approximates solar noon for the mean sun as days since
// J2000 for the Julian day containing jd. Longitude is degrees east.
func MeanSolarNoon(jd julian.Day, longitude float64) float64 {
	n := math.Ceil(float64(jd) - julian.J2000 + transitEpochOffset)
	return n - longitude/360
}

// SolarMeanAnomaly returns the fraction of the sun's orbital period
// elapsed since perihelion, in degrees.
func SolarMeanAnomaly(meanSolarNoon float64) float64 {
	return normalizeDegrees(357.5291 + 0.98560028*meanSolarNoon)
}

// EquationOfTheCenter returns the angular difference, in degrees, between
// the true sun on its elliptical orbit and the mean sun. The mean anomaly
// is in degrees.
//
// https://en.wikipedia.org/wiki/Equation_of_the_center
func EquationOfTheCenter(meanAnomaly float64) float64 {
	m := rad(meanAnomaly)
	firstOrder := 1.9148 * math.Sin(m)
	secondOrder := 0.02 * math.Sin(2*m)
	thirdOrder := 0.0003 * math.Sin(3*m)

	return firstOrder + secondOrder + thirdOrder
}

// EclipticLongitude returns the sun's position along the ecliptic in
// degrees. 102.9372 is the argument of perihelion.
func EclipticLongitude(meanAnomaly, center float64) float64 {
	return normalizeDegrees(meanAnomaly + center + 180 + 102.9372)
}

// Declination returns the sun's declination in degrees.
func Declination(eclipticLongitude float64) float64 {
	return deg(math.Asin(math.Sin(rad(eclipticLongitude)) * math.Sin(rad(obliquity))))
}

// transitDay returns the Julian day of solar transit and the sun's
// declination at that moment.
func transitDay(jd julian.Day, longitude float64) (julian.Day, float64) {
	noon := MeanSolarNoon(jd, longitude)
	m := SolarMeanAnomaly(noon)
	lambda := EclipticLongitude(m, EquationOfTheCenter(m))

	transit := julian.J2000 + noon + 0.0053*math.Sin(rad(m)) - 0.0069*math.Sin(2*rad(lambda))
	return julian.Day(transit), Declination(lambda)
}
