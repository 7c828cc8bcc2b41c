// Package source defines the data-access boundary of the planner. The
// engine resolves everything it needs into an in-memory snapshot before
// the pass starts and treats the loaded collections as read-only; any
// I/O latency behind these interfaces never touches the scheduling
// algorithm itself.
package source

import (
	"context"
	"time"

	"github.com/mfaivrep/planif/core/model"
)

// ItemSource supplies the snapshot collections for one planning run.
type ItemSource interface {
	LoadWorkItems(ctx context.Context) ([]*model.WorkItem, error)
	LoadTemplateItems(ctx context.Context) ([]model.TemplateItem, error)
	LoadCalendarSettings(ctx context.Context) (model.BusinessCalendar, error)
	LoadParameterDictionary(ctx context.Context) (map[string]string, error)
	LoadResources(ctx context.Context) ([]*model.ResourceProfile, error)
}

// ComputedFields carries the values the planner derived for one work
// item. Nil fields were not computed and must be left untouched.
type ComputedFields struct {
	Normative *int
	StartTime *time.Time
}

// PersistenceSink stores computed fields back into the source system.
// SaveComputedFields is idempotent: re-saving identical values is safe.
// It is called once per item that had a value computed, never for items
// whose value pre-existed.
type PersistenceSink interface {
	SaveComputedFields(ctx context.Context, itemID string, fields ComputedFields) error
}
