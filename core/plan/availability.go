package plan

import (
	"time"

	"github.com/mfaivrep/planif/core/model"
)

// ConflictSet tracks the hour windows already booked for each resource
// during the current run. Assignments are added here, never to the
// resource profile itself.
type ConflictSet map[string][]model.OccupiedInterval

// Add books [startHour, endHour) on date for the resource.
func (c ConflictSet) Add(resourceID string, date time.Time, startHour, endHour int) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	c[resourceID] = append(c[resourceID], model.OccupiedInterval{
		Date:      day,
		StartHour: startHour,
		EndHour:   endHour,
	})
}

// Available reports whether the resource is free for [startHour,
// endHour) on the candidate date: the window must not overlap any of
// the resource's pre-existing occupied intervals nor any window already
// booked this run. Hour granularity only; intervals are half-open, so
// touching boundaries do not conflict.
func Available(r *model.ResourceProfile, booked ConflictSet, date time.Time, startHour, endHour int) bool {
	for _, iv := range r.Occupied {
		if iv.Overlaps(date, startHour, endHour) {
			return false
		}
	}
	for _, iv := range booked[r.ID] {
		if iv.Overlaps(date, startHour, endHour) {
			return false
		}
	}
	return true
}
