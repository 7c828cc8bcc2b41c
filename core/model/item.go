// Package model holds the domain types shared between the planning
// engine and the adapters: work items, templates, resources and the
// business calendar, plus the textual codecs the legacy tables use.
package model

import "time"

// WorkItem is one schedulable row of the working set. An item is either
// an operation inside a task or the task row itself; see IsOperation.
type WorkItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TaskID      string    `json:"task_id"`
	TaskName    string    `json:"task_name"`
	Normative   int       `json:"normative"` // duration in minutes
	Quantity    float64   `json:"quantity"`
	Required    int       `json:"required"` // resources needed in parallel
	Constraint  string    `json:"constraint,omitempty"`
	Predecessor string    `json:"predecessor,omitempty"`
	StartTime   time.Time `json:"start_time,omitempty"`

	// Set by the engine when the value was derived rather than read,
	// so only derived values are written back.
	NormativeComputed bool `json:"-"`
	StartComputed     bool `json:"-"`
}

// IsOperation reports whether the item is an operation inside a task,
// as opposed to a bare task row.
func (w *WorkItem) IsOperation() bool {
	return w.Name != "" && w.Name != w.TaskName
}

// EffectiveQuantity returns the quantity multiplier, defaulting to 1.
func (w *WorkItem) EffectiveQuantity() float64 {
	if w.Quantity <= 0 {
		return 1
	}
	return w.Quantity
}

// RequiredCount returns how many resources the item needs at once,
// defaulting to 1.
func (w *WorkItem) RequiredCount() int {
	if w.Required <= 0 {
		return 1
	}
	return w.Required
}

// TemplateItem is one row of the normative template catalog.
type TemplateItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TaskID    string `json:"task_id"`
	TaskName  string `json:"task_name"`
	Normative int    `json:"normative"` // minutes per unit quantity
}

// IsOperation mirrors WorkItem.IsOperation for templates.
func (t TemplateItem) IsOperation() bool {
	return t.Name != "" && t.Name != t.TaskName
}

// TaskGroup is the set of work items sharing one task id, ordered the
// way the snapshot listed them.
type TaskGroup struct {
	TaskID      string
	TaskName    string
	Predecessor string
	Items       []*WorkItem
}

// Assignment binds one work item to one resource over a time interval.
type Assignment struct {
	ItemID     string    `json:"item_id"`
	ResourceID string    `json:"resource_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Minutes    int       `json:"minutes"`
}
