package diag

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSafelyRecovers(t *testing.T) {
	ran := false
	assert.NotPanics(t, func() {
		Safely(func() {
			ran = true
			panic("sink exploded")
		})
	})
	assert.True(t, ran)
}

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	m.LeapSecondHit()
	m.LeapSecondHit()
	m.LeapSecondMiss()
	m.DeltaTHit()
	m.EopHit()
	m.EopMiss()
	m.EopMiss()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("leap_seconds", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("leap_seconds", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("delta_t", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues("eop", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("eop", "miss")))
}

func TestEventLogger(t *testing.T) {
	l := NewLogger()
	assert.NotPanics(t, func() {
		l.LeapSecondReload("/tmp/leap.csv", nil)
		l.EopReload("/tmp/eop.csv", errors.New("bad row"))
	})
}
