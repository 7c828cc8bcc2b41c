package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfaivrep/planif/config"
	"github.com/mfaivrep/planif/core/model"
	"github.com/mfaivrep/planif/core/source"
	"github.com/mfaivrep/planif/infra/notify"
)

type memorySource struct {
	items     []*model.WorkItem
	templates []model.TemplateItem
	resources []*model.ResourceProfile
	calendar  model.BusinessCalendar

	saved map[string]source.ComputedFields
}

func (m *memorySource) LoadWorkItems(context.Context) ([]*model.WorkItem, error) {
	return m.items, nil
}

func (m *memorySource) LoadTemplateItems(context.Context) ([]model.TemplateItem, error) {
	return m.templates, nil
}

func (m *memorySource) LoadCalendarSettings(context.Context) (model.BusinessCalendar, error) {
	return m.calendar, nil
}

func (m *memorySource) LoadParameterDictionary(context.Context) (map[string]string, error) {
	return map[string]string{"115": "role", "2673": "level"}, nil
}

func (m *memorySource) LoadResources(context.Context) ([]*model.ResourceProfile, error) {
	return m.resources, nil
}

func (m *memorySource) SaveComputedFields(_ context.Context, itemID string, f source.ComputedFields) error {
	if m.saved == nil {
		m.saved = make(map[string]source.ComputedFields)
	}
	m.saved[itemID] = f
	return nil
}

func fixtureSource() *memorySource {
	start := time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC)
	return &memorySource{
		items: []*model.WorkItem{
			{ID: "i1", Name: "cut", TaskID: "t1", TaskName: "frame", Quantity: 2, StartTime: start},
			{ID: "i2", Name: "weld", TaskID: "t2", TaskName: "body", Predecessor: "frame"},
		},
		templates: []model.TemplateItem{
			{ID: "n1", Name: "cut", TaskName: "frame", Normative: 60},
			{ID: "n2", Name: "weld", TaskName: "body", Normative: 90},
		},
		resources: []*model.ResourceProfile{
			{ID: "r1", Name: "Alice"},
		},
		calendar: model.DefaultCalendar(),
	}
}

func TestRunOnceDryRunDoesNotPersist(t *testing.T) {
	src := fixtureSource()
	var out bytes.Buffer
	svc := NewWithDeps(&config.Config{}, src, src, nil, nil, nil, &out)

	res, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Assignments, 2)
	assert.Nil(t, src.saved, "dry run must not write back")
	assert.Contains(t, out.String(), "Alice")
}

func TestRunOnceApplyPersistsAndNotifies(t *testing.T) {
	src := fixtureSource()
	pub := notify.NewMockPublisher()
	svc := NewWithDeps(&config.Config{Apply: true}, src, src, pub, nil, nil, nil)

	res, err := svc.RunOnce(context.Background())
	require.NoError(t, err)

	// Both normatives were resolved from templates, so both items
	// must be written back with their derived values.
	require.Len(t, src.saved, 2)
	i1 := src.saved["i1"]
	require.NotNil(t, i1.Normative)
	assert.Equal(t, 120, *i1.Normative, "quantity 2 doubles the template normative")
	i2 := src.saved["i2"]
	require.NotNil(t, i2.Normative)
	assert.Equal(t, 90, *i2.Normative)
	require.NotNil(t, i2.StartTime)
	assert.Equal(t, 11, i2.StartTime.Hour(), "second task starts after the first")

	assert.Len(t, pub.Messages, len(res.Assignments))
}

func TestRunOnceConfigCalendarWins(t *testing.T) {
	src := fixtureSource()
	cfg := &config.Config{Calendar: model.BusinessCalendar{DayStart: 8, DayEnd: 17, LunchStart: 12}}
	svc := NewWithDeps(cfg, src, src, nil, nil, nil, nil)

	res, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.Assignments)
	assert.Equal(t, 8, res.Assignments[0].Start.Hour())
}
