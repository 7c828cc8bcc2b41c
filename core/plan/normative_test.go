package plan

import (
	"testing"

	"github.com/mfaivrep/planif/core/model"
)

func TestResolveNormativesFromTemplate(t *testing.T) {
	items := []*model.WorkItem{
		{ID: "i1", Name: "weld", TaskID: "t1", TaskName: "frame", Quantity: 4},
		{ID: "i2", Name: "frame", TaskID: "t1", TaskName: "frame", Normative: 50, Quantity: 4},
	}
	templates := []model.TemplateItem{
		{ID: "tpl1", Name: "weld", TaskName: "frame", Normative: 30},
	}

	if got := ResolveNormatives(items, templates); got != 1 {
		t.Fatalf("resolved %d items, want 1", got)
	}
	if items[0].Normative != 120 {
		t.Errorf("per-unit 30 x quantity 4 should give 120, got %d", items[0].Normative)
	}
	if !items[0].NormativeComputed {
		t.Error("resolved item must be flagged for persistence")
	}
	if items[1].Normative != 50 || items[1].NormativeComputed {
		t.Error("pre-existing duration must be left untouched")
	}
}

func TestResolveNormativesIdempotent(t *testing.T) {
	items := []*model.WorkItem{
		{ID: "i1", Name: "weld", TaskID: "t1", TaskName: "frame", Quantity: 2},
	}
	templates := []model.TemplateItem{
		{ID: "tpl1", Name: "weld", TaskName: "frame", Normative: 45},
	}
	ResolveNormatives(items, templates)
	first := items[0].Normative
	if n := ResolveNormatives(items, templates); n != 0 {
		t.Fatalf("second pass resolved %d items, want 0", n)
	}
	if items[0].Normative != first {
		t.Errorf("second pass changed normative from %d to %d", first, items[0].Normative)
	}
}

func TestResolveNormativesBareTaskMatchesByTaskName(t *testing.T) {
	items := []*model.WorkItem{
		{ID: "i1", Name: "paint", TaskID: "t2", TaskName: "paint"},
	}
	templates := []model.TemplateItem{
		{ID: "tpl-op", Name: "mask", TaskName: "paint", Normative: 15},
		{ID: "tpl-task", Name: "paint", TaskName: "paint", Normative: 90},
	}
	ResolveNormatives(items, templates)
	if items[0].Normative != 90 {
		t.Errorf("bare task should match the bare-task template, got %d", items[0].Normative)
	}
}

func TestResolveNormativesFirstMatchWins(t *testing.T) {
	items := []*model.WorkItem{
		{ID: "i1", Name: "cut", TaskID: "t1", TaskName: "frame"},
	}
	templates := []model.TemplateItem{
		{ID: "a", Name: "cut", TaskName: "frame", Normative: 10},
		{ID: "b", Name: "cut", TaskName: "frame", Normative: 99},
	}
	ResolveNormatives(items, templates)
	if items[0].Normative != 10 {
		t.Errorf("first enumerated template must win, got %d", items[0].Normative)
	}
}

func TestResolveNormativesNoMatchLeavesZero(t *testing.T) {
	items := []*model.WorkItem{
		{ID: "i1", Name: "polish", TaskID: "t9", TaskName: "finish"},
	}
	ResolveNormatives(items, nil)
	if items[0].Normative != 0 || items[0].NormativeComputed {
		t.Error("item without template match must stay at zero")
	}
}
