package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfaivrep/planif/core/logger"
	coremetrics "github.com/mfaivrep/planif/core/metrics"
	"github.com/mfaivrep/planif/core/model"
	"github.com/mfaivrep/planif/core/source"
	"github.com/mfaivrep/planif/internal/eventbus"
)

// Fatal preconditions that abort a run before any assignment is made.
var (
	ErrNoWorkItems = errors.New("plan: no work items to schedule")
	ErrNoStartDate = errors.New("plan: no project start date on any ordered task")
	ErrBadCalendar = errors.New("plan: invalid business calendar")
)

// Snapshot is the immutable input of one planning run, resolved from
// the item source before the pass starts.
type Snapshot struct {
	Items      []*model.WorkItem
	Templates  []model.TemplateItem
	Resources  []*model.ResourceProfile
	Calendar   model.BusinessCalendar
	Parameters map[string]string // parameter dictionary, id -> display name
}

// Engine produces the assignment list for a snapshot. The pass is
// single-threaded: one shared time cursor and one shared assignment
// list, mutated in a fixed order.
type Engine struct {
	log     logger.Logger
	bus     eventbus.EventBus
	metrics coremetrics.MetricsSink
}

// New creates an engine. The bus and sink may be nil.
func New(log logger.Logger, bus eventbus.EventBus, sink coremetrics.MetricsSink) *Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Engine{log: log, bus: bus, metrics: sink}
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

func (e *Engine) setPhase(res *Result, p Phase) {
	res.Phase = p
	e.log.Debugf("run %s: %s", res.RunID, p)
	e.publish(PhaseEvent{RunID: res.RunID, Phase: p})
}

func (e *Engine) fail(res *Result, err error) (*Result, error) {
	res.Phase = PhaseFailed
	res.Finished = time.Now()
	e.publish(PhaseEvent{RunID: res.RunID, Phase: PhaseFailed})
	e.log.Errorf("run %s failed: %v", res.RunID, err)
	return res, err
}

// Plan runs one forward scheduling pass over the snapshot. It either
// yields a complete schedule, possibly with warnings, or a single fatal
// error with no assignments; never a partial schedule.
func (e *Engine) Plan(snap Snapshot, mode RunMode) (*Result, error) {
	res := &Result{
		RunID:   uuid.NewString(),
		Mode:    mode,
		Phase:   PhaseIdle,
		Started: time.Now(),
	}
	if len(snap.Items) == 0 {
		return e.fail(res, ErrNoWorkItems)
	}
	if err := snap.Calendar.Validate(); err != nil {
		return e.fail(res, fmt.Errorf("%w: %v", ErrBadCalendar, err))
	}

	e.setPhase(res, PhaseResolvingNormatives)
	resolved := ResolveNormatives(snap.Items, snap.Templates)
	e.log.Infof("run %s: resolved %d normatives from %d templates", res.RunID, resolved, len(snap.Templates))

	e.setPhase(res, PhaseOrderingChain)
	ordered, chainWarnings := ResolveChain(BuildGroups(snap.Items))
	for _, w := range chainWarnings {
		e.warn(res, w)
	}
	res.Order = ordered

	start := projectStart(ordered)
	if start.IsZero() {
		return e.fail(res, ErrNoStartDate)
	}
	cal := snap.Calendar
	cursor := time.Date(start.Year(), start.Month(), start.Day(), cal.DayStart, 0, 0, 0, start.Location())

	e.setPhase(res, PhaseScheduling)
	booked := make(ConflictSet)
	var records []coremetrics.PlanRecord
	scheduled := 0
	for _, group := range ordered {
		for _, item := range group.Items {
			if item.Normative <= 0 {
				e.log.Debugf("run %s: item %s has no normative, skipped", res.RunID, item.ID)
				continue
			}
			cursor = e.scheduleItem(res, item, cursor, cal, snap.Resources, booked, &records)
			scheduled++
		}
	}

	res.Computed = collectComputed(snap.Items)
	res.Summary = Summarize(res.Assignments)
	res.Finished = time.Now()
	planDuration.Observe(res.Finished.Sub(res.Started).Seconds())
	e.recordMetrics(res, records, scheduled)
	e.setPhase(res, PhaseDone)
	e.log.Infof("run %s: %d assignments, %d warnings, mean load %.0f min",
		res.RunID, len(res.Assignments), len(res.Warnings), res.Summary.MeanMinutes)
	return res, nil
}

// scheduleItem allocates one work item at the cursor and returns the
// advanced cursor.
func (e *Engine) scheduleItem(res *Result, item *model.WorkItem, cursor time.Time, cal model.BusinessCalendar, resources []*model.ResourceProfile, booked ConflictSet, records *[]coremetrics.PlanRecord) time.Time {
	reqs, bad := ParseRequirements(item.Constraint)
	for _, frag := range bad {
		e.warn(res, Warning{
			Code:    WarnBadConstraint,
			ItemID:  item.ID,
			Message: fmt.Sprintf("unparseable constraint fragment %q ignored", frag),
		})
	}

	startHour := cursor.Hour()
	endHour := startHour + (item.Normative+59)/60
	required := item.RequiredCount()

	var chosen []*model.ResourceProfile
	for _, r := range resources {
		if !Matches(r, reqs) {
			continue
		}
		if !Available(r, booked, cursor, startHour, endHour) {
			continue
		}
		chosen = append(chosen, r)
		if len(chosen) == required {
			break
		}
	}

	shortfall := len(chosen) < required
	if shortfall {
		shortfallWarnings.Inc()
		e.warn(res, Warning{
			Code:    WarnShortfall,
			ItemID:  item.ID,
			Message: fmt.Sprintf("item %q needs %d resources, only %d qualify and are free", item.Name, required, len(chosen)),
		})
	}

	end := Advance(cursor, item.Normative, cal)
	for _, r := range chosen {
		a := model.Assignment{
			ItemID:     item.ID,
			ResourceID: r.ID,
			Start:      cursor,
			End:        end,
			Minutes:    item.Normative,
		}
		res.Assignments = append(res.Assignments, a)
		booked.Add(r.ID, cursor, startHour, endHour)
		assignmentsTotal.Inc()
		e.publish(AssignmentEvent{RunID: res.RunID, Assignment: a})
		*records = append(*records, coremetrics.PlanRecord{
			RunID:      res.RunID,
			ItemID:     item.ID,
			ItemName:   item.Name,
			TaskName:   item.TaskName,
			ResourceID: r.ID,
			Start:      a.Start,
			End:        a.End,
			Minutes:    a.Minutes,
			Shortfall:  shortfall,
		})
	}
	itemsScheduled.WithLabelValues(item.TaskName).Inc()

	if !item.StartTime.Equal(cursor) {
		item.StartTime = cursor
		item.StartComputed = true
	}

	cursor = end
	if item.Normative <= 240 && cursor.Hour() >= cal.DayEnd {
		cursor = time.Date(cursor.Year(), cursor.Month(), cursor.Day(), cal.DayStart, 0, 0, 0, cursor.Location()).AddDate(0, 0, 1)
	}
	return cursor
}

func (e *Engine) warn(res *Result, w Warning) {
	res.Warnings = append(res.Warnings, w)
	e.log.Warnf("run %s: %s", res.RunID, w.Message)
	e.publish(WarningEvent{RunID: res.RunID, Warning: w})
}

func (e *Engine) recordMetrics(res *Result, records []coremetrics.PlanRecord, scheduled int) {
	if e.metrics == nil {
		return
	}
	if err := e.metrics.RecordPlanResult(records); err != nil {
		e.log.Errorf("metrics error: %v", err)
	}
	if rr, ok := e.metrics.(coremetrics.RunRecorder); ok {
		summary := coremetrics.RunSummary{
			RunID:       res.RunID,
			Items:       scheduled,
			Assignments: len(res.Assignments),
			Warnings:    len(res.Warnings),
			Elapsed:     res.Finished.Sub(res.Started),
			MeanLoad:    res.Summary.MeanMinutes,
			StdDevLoad:  res.Summary.StdDevMinutes,
			Time:        res.Finished,
		}
		if err := rr.RecordRunSummary(summary); err != nil {
			e.log.Errorf("run summary metrics error: %v", err)
		}
	}
}

// projectStart returns the declared start date of the first ordered
// task that carries one.
func projectStart(ordered []*model.TaskGroup) time.Time {
	for _, g := range ordered {
		for _, item := range g.Items {
			if !item.StartTime.IsZero() {
				return item.StartTime
			}
		}
	}
	return time.Time{}
}

// collectComputed gathers the fields the pass derived, for the
// persistence sink. Items whose values pre-existed are not included.
func collectComputed(items []*model.WorkItem) []ComputedItem {
	var out []ComputedItem
	for _, item := range items {
		if !item.NormativeComputed && !item.StartComputed {
			continue
		}
		var f source.ComputedFields
		if item.NormativeComputed {
			n := item.Normative
			f.Normative = &n
		}
		if item.StartComputed {
			t := item.StartTime
			f.StartTime = &t
		}
		out = append(out, ComputedItem{ItemID: item.ID, Fields: f})
	}
	return out
}
