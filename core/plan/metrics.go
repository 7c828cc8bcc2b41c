package plan

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	itemsScheduled    *prometheus.CounterVec
	assignmentsTotal  prometheus.Counter
	shortfallWarnings prometheus.Counter
	planDuration      prometheus.Histogram
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, prometheus.Counter, prometheus.Counter, prometheus.Histogram) {
	items := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_items_scheduled_total",
			Help: "Number of work items scheduled",
		},
		[]string{"task"},
	)
	asn := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plan_assignments_total",
			Help: "Number of assignments created",
		},
	)
	short := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plan_shortfall_warnings_total",
			Help: "Number of items that got fewer resources than required",
		},
	)
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_run_duration_seconds",
			Help:    "Wall time of a full planning pass",
			Buckets: prometheus.DefBuckets,
		},
	)
	return items, asn, short, dur
}

func init() {
	itemsScheduled, assignmentsTotal, shortfallWarnings, planDuration = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planning metrics on the provided
// registry. If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(itemsScheduled, assignmentsTotal, shortfallWarnings, planDuration)
}

// ResetMetrics reinitializes metric collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	itemsScheduled, assignmentsTotal, shortfallWarnings, planDuration = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
