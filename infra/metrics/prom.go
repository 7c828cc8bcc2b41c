package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/mfaivrep/planif/core/metrics"
)

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	minutes     *prometheus.HistogramVec
	meanLoad    prometheus.Gauge
}

// NewPromSink registers planning metrics on the default Prometheus
// registerer. The Prometheus server is started separately.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_assignments_total",
		Help: "Total number of assignments recorded",
	}, []string{"resource_id", "task", "shortfall"})
	minutes := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planning_assignment_minutes",
		Help:    "Duration in minutes of recorded assignments",
		Buckets: []float64{30, 60, 120, 240, 480, 960},
	}, []string{"resource_id", "task"})
	meanLoad := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planning_mean_resource_load_minutes",
		Help: "Mean assigned minutes per resource for the last run",
	})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(minutes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			minutes = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(meanLoad); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			meanLoad = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{assignments: assignments, minutes: minutes, meanLoad: meanLoad}, nil
}

// RecordPlanResult increments the counters for each assignment.
func (s *PromSink) RecordPlanResult(records []coremetrics.PlanRecord) error {
	for _, r := range records {
		s.assignments.WithLabelValues(r.ResourceID, r.TaskName, strconv.FormatBool(r.Shortfall)).Inc()
		s.minutes.WithLabelValues(r.ResourceID, r.TaskName).Observe(float64(r.Minutes))
	}
	return nil
}

// RecordRunSummary sets the load gauge for the finished run.
func (s *PromSink) RecordRunSummary(sum coremetrics.RunSummary) error {
	if s.meanLoad != nil {
		s.meanLoad.Set(sum.MeanLoad)
	}
	return nil
}
