package metrics

import "time"

// PlanRecord represents one assignment produced by a planning run, in
// the shape metrics sinks record.
type PlanRecord struct {
	RunID      string
	ItemID     string
	ItemName   string
	TaskName   string
	ResourceID string
	Start      time.Time
	End        time.Time
	Minutes    int
	Shortfall  bool // the owning item got fewer resources than required
}

// MetricsSink records planning results for observability purposes.
type MetricsSink interface {
	RecordPlanResult(records []PlanRecord) error
}

// RunSummary aggregates one whole run.
type RunSummary struct {
	RunID       string
	Items       int
	Assignments int
	Warnings    int
	Elapsed     time.Duration
	MeanLoad    float64 // mean assigned minutes per resource
	StdDevLoad  float64
	Time        time.Time
}

// RunRecorder is implemented by sinks that can record run summaries.
type RunRecorder interface {
	RecordRunSummary(s RunSummary) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlanResult([]PlanRecord) error { return nil }
func (NopSink) RecordRunSummary(RunSummary) error   { return nil }
