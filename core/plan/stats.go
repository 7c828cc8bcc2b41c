package plan

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mfaivrep/planif/core/model"
)

// LoadSummary aggregates the minutes assigned per resource over one
// finished plan.
type LoadSummary struct {
	ResourceMinutes map[string]int
	MeanMinutes     float64
	StdDevMinutes   float64
}

// Summarize computes the per-resource load of the assignment list.
// Resources that received nothing are not included.
func Summarize(assignments []model.Assignment) LoadSummary {
	perResource := make(map[string]int)
	for _, a := range assignments {
		perResource[a.ResourceID] += a.Minutes
	}
	s := LoadSummary{ResourceMinutes: perResource}
	if len(perResource) == 0 {
		return s
	}
	loads := make([]float64, 0, len(perResource))
	for _, m := range perResource {
		loads = append(loads, float64(m))
	}
	s.MeanMinutes = stat.Mean(loads, nil)
	if len(loads) > 1 {
		s.StdDevMinutes = stat.StdDev(loads, nil)
	}
	return s
}
