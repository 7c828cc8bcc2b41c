package metrics

import coremetrics "github.com/mfaivrep/planif/core/metrics"

// MultiSink fans planning records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanResult forwards the records to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordPlanResult(records []coremetrics.PlanRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlanResult(records); err != nil {
			return err
		}
	}
	return nil
}

// RecordRunSummary forwards run summaries to sinks that support them.
func (m *MultiSink) RecordRunSummary(sum coremetrics.RunSummary) error {
	for _, s := range m.Sinks {
		if rr, ok := s.(coremetrics.RunRecorder); ok {
			if err := rr.RecordRunSummary(sum); err != nil {
				return err
			}
		}
	}
	return nil
}
