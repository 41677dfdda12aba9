package diag

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics exports lookup counts as
// astrotime_provider_lookups_total{capability, result}.
type PrometheusMetrics struct {
	Lookups *prometheus.CounterVec

	leapHit  prometheus.Counter
	leapMiss prometheus.Counter
	deltaT   prometheus.Counter
	eopHit   prometheus.Counter
	eopMiss  prometheus.Counter
}

// NewPrometheusMetrics creates and registers the counters with reg. A nil
// reg uses the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	lookups := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "astrotime_provider_lookups_total",
		Help: "Total number of time provider lookups by capability and result",
	}, []string{"capability", "result"})

	return &PrometheusMetrics{
		Lookups:  lookups,
		leapHit:  lookups.WithLabelValues("leap_seconds", "hit"),
		leapMiss: lookups.WithLabelValues("leap_seconds", "miss"),
		deltaT:   lookups.WithLabelValues("delta_t", "hit"),
		eopHit:   lookups.WithLabelValues("eop", "hit"),
		eopMiss:  lookups.WithLabelValues("eop", "miss"),
	}
}

func (m *PrometheusMetrics) LeapSecondHit()  { m.leapHit.Inc() }
func (m *PrometheusMetrics) LeapSecondMiss() { m.leapMiss.Inc() }
func (m *PrometheusMetrics) DeltaTHit()      { m.deltaT.Inc() }
func (m *PrometheusMetrics) EopHit()         { m.eopHit.Inc() }
func (m *PrometheusMetrics) EopMiss()        { m.eopMiss.Inc() }
