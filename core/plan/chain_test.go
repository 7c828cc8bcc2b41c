package plan

import (
	"testing"

	"github.com/mfaivrep/planif/core/model"
)

func chainItems() []*model.WorkItem {
	return []*model.WorkItem{
		{ID: "i3", Name: "op-a", TaskID: "t3", TaskName: "assemble", Predecessor: "cut"},
		{ID: "i1", Name: "prep", TaskID: "t1", TaskName: "prep"},
		{ID: "i2", Name: "cut", TaskID: "t2", TaskName: "cut", Predecessor: "prep"},
		{ID: "i4", Name: "op-b", TaskID: "t3", TaskName: "assemble", Predecessor: "cut"},
	}
}

func TestBuildGroupsOnePerTask(t *testing.T) {
	groups := BuildGroups(chainItems())
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	for _, g := range groups {
		if g.TaskID == "t3" && len(g.Items) != 2 {
			t.Errorf("task t3 should hold both operations, got %d", len(g.Items))
		}
	}
}

func TestResolveChainOrder(t *testing.T) {
	ordered, warnings := ResolveChain(BuildGroups(chainItems()))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := []string{"prep", "cut", "assemble"}
	if len(ordered) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(ordered))
	}
	for i, g := range ordered {
		if g.TaskName != want[i] {
			t.Errorf("position %d: got %q, want %q", i, g.TaskName, want[i])
		}
	}
}

func TestResolveChainReportsOrphan(t *testing.T) {
	items := append(chainItems(),
		&model.WorkItem{ID: "i9", Name: "stray", TaskID: "t9", TaskName: "stray", Predecessor: "nowhere"})
	ordered, warnings := ResolveChain(BuildGroups(items))
	if len(ordered) != 3 {
		t.Fatalf("orphan must be dropped from the order, got %d groups", len(ordered))
	}
	if !hasWarning(warnings, WarnChainOrphan) {
		t.Error("dropped group must surface as an orphan warning")
	}
}

func TestResolveChainReportsAmbiguousHead(t *testing.T) {
	items := append(chainItems(),
		&model.WorkItem{ID: "i8", Name: "alt", TaskID: "t8", TaskName: "alt"})
	_, warnings := ResolveChain(BuildGroups(items))
	if !hasWarning(warnings, WarnChainHeads) {
		t.Error("second predecessor-less group must be reported")
	}
}

func TestResolveChainReportsFork(t *testing.T) {
	items := append(chainItems(),
		&model.WorkItem{ID: "i7", Name: "rival", TaskID: "t7", TaskName: "rival", Predecessor: "cut"})
	ordered, warnings := ResolveChain(BuildGroups(items))
	if !hasWarning(warnings, WarnChainFork) {
		t.Error("two successors of the same task must be reported")
	}
	// First-found successor keeps its place.
	if ordered[2].TaskName != "assemble" {
		t.Errorf("first-found successor must win, got %q", ordered[2].TaskName)
	}
}

func TestResolveChainNoHead(t *testing.T) {
	items := []*model.WorkItem{
		{ID: "i1", Name: "a", TaskID: "t1", TaskName: "a", Predecessor: "b"},
		{ID: "i2", Name: "b", TaskID: "t2", TaskName: "b", Predecessor: "a"},
	}
	ordered, warnings := ResolveChain(BuildGroups(items))
	if ordered != nil {
		t.Fatal("a cycle with no head cannot be ordered")
	}
	if !hasWarning(warnings, WarnChainOrphan) {
		t.Error("missing head must be reported")
	}
}

func hasWarning(ws []Warning, code WarningCode) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}
