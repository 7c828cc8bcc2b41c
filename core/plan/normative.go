package plan

import (
	"math"

	"github.com/mfaivrep/planif/core/model"
)

// firstTemplateMatch returns the first template item whose identity
// structurally matches the working item: operations match by (operation
// name, owning task name), bare tasks by task name alone. When several
// templates match, first-enumerated wins; snapshot order makes the
// choice deterministic.
func firstTemplateMatch(item *model.WorkItem, templates []model.TemplateItem) (model.TemplateItem, bool) {
	for _, tpl := range templates {
		if item.IsOperation() {
			if tpl.IsOperation() && tpl.Name == item.Name && tpl.TaskName == item.TaskName {
				return tpl, true
			}
			continue
		}
		if !tpl.IsOperation() && tpl.TaskName == item.TaskName {
			return tpl, true
		}
	}
	return model.TemplateItem{}, false
}

// ResolveNormatives fills in missing duration estimates from the
// template set: per-unit reference duration times the item's quantity.
// Items that already carry a duration are left untouched, so resolving
// twice is a no-op. Items with no match keep a zero normative and are
// later skipped by the engine. Returns the number of items resolved.
func ResolveNormatives(items []*model.WorkItem, templates []model.TemplateItem) int {
	resolved := 0
	for _, item := range items {
		if item.Normative > 0 {
			continue
		}
		tpl, ok := firstTemplateMatch(item, templates)
		if !ok || tpl.Normative <= 0 {
			continue
		}
		item.Normative = int(math.Round(float64(tpl.Normative) * item.EffectiveQuantity()))
		item.NormativeComputed = true
		resolved++
	}
	return resolved
}
