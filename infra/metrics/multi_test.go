package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/mfaivrep/planif/core/metrics"
)

type recordingSink struct {
	records   []coremetrics.PlanRecord
	summaries []coremetrics.RunSummary
}

func (r *recordingSink) RecordPlanResult(recs []coremetrics.PlanRecord) error {
	r.records = append(r.records, recs...)
	return nil
}

func (r *recordingSink) RecordRunSummary(s coremetrics.RunSummary) error {
	r.summaries = append(r.summaries, s)
	return nil
}

func TestMultiSinkForwards(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b, coremetrics.NopSink{})

	recs := []coremetrics.PlanRecord{{RunID: "run", ItemID: "i1", ResourceID: "r1", Minutes: 60}}
	require.NoError(t, m.RecordPlanResult(recs))
	assert.Len(t, a.records, 1)
	assert.Len(t, b.records, 1)

	require.NoError(t, m.RecordRunSummary(coremetrics.RunSummary{RunID: "run", Time: time.Now()}))
	assert.Len(t, a.summaries, 1)
	assert.Len(t, b.summaries, 1)
}

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	recs := []coremetrics.PlanRecord{
		{RunID: "run", ItemID: "i1", TaskName: "cut", ResourceID: "r1", Minutes: 90},
		{RunID: "run", ItemID: "i2", TaskName: "cut", ResourceID: "r1", Minutes: 30, Shortfall: true},
	}
	require.NoError(t, sink.RecordPlanResult(recs))
	rr, ok := sink.(coremetrics.RunRecorder)
	require.True(t, ok)
	require.NoError(t, rr.RecordRunSummary(coremetrics.RunSummary{MeanLoad: 120}))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["planning_assignments_total"])
	assert.True(t, names["planning_assignment_minutes"])
	assert.True(t, names["planning_mean_resource_load_minutes"])
}
