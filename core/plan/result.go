package plan

import (
	"time"

	"github.com/mfaivrep/planif/core/model"
	"github.com/mfaivrep/planif/core/source"
)

// RunMode selects whether computed fields are meant to be written back.
// It is passed explicitly into the engine instead of living in shared
// mutable state.
type RunMode int

const (
	DryRun RunMode = iota
	Apply
)

func (m RunMode) String() string {
	if m == Apply {
		return "apply"
	}
	return "dry-run"
}

// Phase tracks where a run is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolvingNormatives
	PhaseOrderingChain
	PhaseScheduling
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolvingNormatives:
		return "resolving-normatives"
	case PhaseOrderingChain:
		return "ordering-chain"
	case PhaseScheduling:
		return "scheduling"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// WarningCode classifies non-fatal conditions accumulated during a run.
type WarningCode string

const (
	WarnShortfall     WarningCode = "resource_shortfall"
	WarnBadConstraint WarningCode = "bad_constraint_fragment"
	WarnBadInterval   WarningCode = "bad_occupied_fragment"
	WarnChainHeads    WarningCode = "chain_ambiguous_head"
	WarnChainFork     WarningCode = "chain_forked_successor"
	WarnChainOrphan   WarningCode = "chain_orphan_group"
)

// Warning is a non-fatal condition attached to the item or resource it
// concerns. Warnings never interrupt the pass.
type Warning struct {
	Code       WarningCode `json:"code"`
	ItemID     string      `json:"item_id,omitempty"`
	ResourceID string      `json:"resource_id,omitempty"`
	Message    string      `json:"message"`
}

// ComputedItem pairs a work item id with the fields the engine derived
// for it.
type ComputedItem struct {
	ItemID string
	Fields source.ComputedFields
}

// Result is the outcome of one planning run.
type Result struct {
	RunID       string             `json:"run_id"`
	Mode        RunMode            `json:"-"`
	Phase       Phase              `json:"-"`
	Order       []*model.TaskGroup `json:"-"`
	Assignments []model.Assignment `json:"assignments"`
	Warnings    []Warning          `json:"warnings,omitempty"`
	Computed    []ComputedItem     `json:"-"`
	Summary     LoadSummary        `json:"-"`
	Started     time.Time          `json:"started"`
	Finished    time.Time          `json:"finished"`
}

func (r *Result) warnf(code WarningCode, itemID, resourceID, msg string) {
	r.Warnings = append(r.Warnings, Warning{Code: code, ItemID: itemID, ResourceID: resourceID, Message: msg})
}

// PhaseEvent is published on the event bus when the run changes phase.
type PhaseEvent struct {
	RunID string
	Phase Phase
}

// AssignmentEvent is published for every assignment created.
type AssignmentEvent struct {
	RunID      string
	Assignment model.Assignment
}

// WarningEvent is published for every warning recorded.
type WarningEvent struct {
	RunID   string
	Warning Warning
}
