package plan

import (
	"fmt"

	"github.com/mfaivrep/planif/core/model"
)

// BuildGroups buckets work items into one TaskGroup per distinct task
// id, preserving snapshot order for both groups and the items inside
// each group. The group inherits the predecessor name of its first item.
func BuildGroups(items []*model.WorkItem) []*model.TaskGroup {
	byTask := make(map[string]*model.TaskGroup)
	var groups []*model.TaskGroup
	for _, item := range items {
		g, ok := byTask[item.TaskID]
		if !ok {
			g = &model.TaskGroup{
				TaskID:      item.TaskID,
				TaskName:    item.TaskName,
				Predecessor: item.Predecessor,
			}
			byTask[item.TaskID] = g
			groups = append(groups, g)
		}
		g.Items = append(g.Items, item)
	}
	return groups
}

// ResolveChain orders groups into the execution sequence induced by
// predecessor-name links: the head is the group with no predecessor,
// each successor is the group naming the current group's task as its
// predecessor. The link is by task name, not id, so duplicates or
// missing links are possible; first-found wins, but every anomaly
// (several heads, forked successors, groups unreachable from the head)
// is reported as a warning instead of being silently dropped.
func ResolveChain(groups []*model.TaskGroup) ([]*model.TaskGroup, []Warning) {
	var warnings []Warning
	if len(groups) == 0 {
		return nil, nil
	}

	var head *model.TaskGroup
	for _, g := range groups {
		if g.Predecessor != "" {
			continue
		}
		if head == nil {
			head = g
			continue
		}
		warnings = append(warnings, Warning{
			Code:    WarnChainHeads,
			Message: fmt.Sprintf("task %q also has no predecessor; keeping %q as head", g.TaskName, head.TaskName),
		})
	}
	if head == nil {
		warnings = append(warnings, Warning{
			Code:    WarnChainOrphan,
			Message: "no task without predecessor; nothing can be ordered",
		})
		return nil, warnings
	}

	ordered := []*model.TaskGroup{head}
	inChain := map[string]bool{head.TaskID: true}
	current := head
	for {
		var next *model.TaskGroup
		for _, g := range groups {
			if inChain[g.TaskID] || g.Predecessor != current.TaskName {
				continue
			}
			if next == nil {
				next = g
				continue
			}
			warnings = append(warnings, Warning{
				Code:    WarnChainFork,
				Message: fmt.Sprintf("tasks %q and %q both follow %q; keeping %q", next.TaskName, g.TaskName, current.TaskName, next.TaskName),
			})
		}
		if next == nil {
			break
		}
		ordered = append(ordered, next)
		inChain[next.TaskID] = true
		current = next
	}

	for _, g := range groups {
		if !inChain[g.TaskID] {
			warnings = append(warnings, Warning{
				Code:    WarnChainOrphan,
				Message: fmt.Sprintf("task %q is unreachable from the chain head and will not be scheduled", g.TaskName),
			})
		}
	}
	return ordered, warnings
}
