package astrotime

import (
	"fmt"
	"strings"
)

// TimeScale identifies one of the supported astronomical time scales.
//
//	TAI = UTC + leap seconds
//	TT  = TAI + 32.184 s
//	TDB = TT + periodic relativistic correction (about ±1.7 ms)
type TimeScale int

const (
	UTC TimeScale = iota
	TAI
	TT
	TDB
)

// TTMinusTAI is the fixed offset between TT and TAI in seconds.
const TTMinusTAI = 32.184

var scaleNames = map[TimeScale]string{
	UTC: "UTC",
	TAI: "TAI",
	TT:  "TT",
	TDB: "TDB",
}

func (s TimeScale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TimeScale(%d)", int(s))
}

// Valid reports whether s is one of the defined scales.
func (s TimeScale) Valid() bool {
	_, ok := scaleNames[s]
	return ok
}

// ParseTimeScale parses a scale name, ignoring case.
func ParseTimeScale(name string) (TimeScale, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for scale, n := range scaleNames {
		if n == upper {
			return scale, nil
		}
	}
	return 0, fmt.Errorf("unknown time scale %q", name)
}
