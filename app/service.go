// Package app wires the planning engine to its adapters: the database
// source, metrics sinks, the event bus and the MQTT notifier.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/mfaivrep/planif/config"
	corelogger "github.com/mfaivrep/planif/core/logger"
	coremetrics "github.com/mfaivrep/planif/core/metrics"
	"github.com/mfaivrep/planif/core/model"
	"github.com/mfaivrep/planif/core/plan"
	"github.com/mfaivrep/planif/core/source"
	"github.com/mfaivrep/planif/infra/logger"
	"github.com/mfaivrep/planif/infra/metrics"
	"github.com/mfaivrep/planif/infra/notify"
	"github.com/mfaivrep/planif/infra/store"
	"github.com/mfaivrep/planif/internal/eventbus"
	"github.com/mfaivrep/planif/pkg/export"
)

// Service orchestrates planning runs over the configured source.
type Service struct {
	cfg    *config.Config
	engine *plan.Engine
	src    source.ItemSource
	sink   source.PersistenceSink
	pub    notify.Publisher
	bus    eventbus.EventBus
	log    corelogger.Logger
	out    io.Writer

	closers []func()
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub notify.Publisher
	if cfg.Notify.Enabled {
		pub, err = notify.NewPahoPublisher(cfg.Notify)
		if err != nil {
			return nil, fmt.Errorf("notify: %w", err)
		}
	}

	bus := eventbus.New()
	svc := &Service{
		cfg:    cfg,
		engine: plan.New(logger.New("engine"), bus, sink),
		src:    st,
		sink:   st,
		pub:    pub,
		bus:    bus,
		log:    logg,
		out:    os.Stdout,
	}
	svc.closers = append(svc.closers, func() {
		if err := st.Close(); err != nil {
			logg.Errorf("store close: %v", err)
		}
	})
	if pub != nil {
		svc.closers = append(svc.closers, pub.Close)
	}
	return svc, nil
}

// NewWithDeps builds a Service on explicit dependencies. Used by tests
// and by callers that already hold a source.
func NewWithDeps(cfg *config.Config, src source.ItemSource, sink source.PersistenceSink, pub notify.Publisher, msink coremetrics.MetricsSink, log corelogger.Logger, out io.Writer) *Service {
	if log == nil {
		log = corelogger.NopLogger{}
	}
	if out == nil {
		out = io.Discard
	}
	bus := eventbus.New()
	return &Service{
		cfg:    cfg,
		engine: plan.New(log, bus, msink),
		src:    src,
		sink:   sink,
		pub:    pub,
		bus:    bus,
		log:    log,
		out:    out,
	}
}

// Snapshot loads the planning input from the item source. A calendar
// set in the configuration wins over stored settings.
func (s *Service) Snapshot(ctx context.Context) (plan.Snapshot, error) {
	var snap plan.Snapshot
	var err error
	if snap.Items, err = s.src.LoadWorkItems(ctx); err != nil {
		return snap, err
	}
	if snap.Templates, err = s.src.LoadTemplateItems(ctx); err != nil {
		return snap, err
	}
	if snap.Resources, err = s.src.LoadResources(ctx); err != nil {
		return snap, err
	}
	if snap.Calendar, err = s.src.LoadCalendarSettings(ctx); err != nil {
		return snap, err
	}
	if s.cfg != nil && s.cfg.Calendar != (model.BusinessCalendar{}) {
		snap.Calendar = s.cfg.Calendar
	}
	if snap.Parameters, err = s.src.LoadParameterDictionary(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

// RunOnce executes one full planning pass: load, plan, print, and in
// apply mode write computed fields back and notify assignments.
func (s *Service) RunOnce(ctx context.Context) (*plan.Result, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	mode := plan.DryRun
	if s.cfg != nil && s.cfg.Apply {
		mode = plan.Apply
	}
	res, err := s.engine.Plan(snap, mode)
	if err != nil {
		return res, err
	}

	if err := export.WriteTable(s.out, res, snap.Items, deref(snap.Resources)); err != nil {
		s.log.Errorf("print result: %v", err)
	}
	s.log.Infof("run %s: mean load %.0f min, stddev %.0f min",
		res.RunID, res.Summary.MeanMinutes, res.Summary.StdDevMinutes)

	if mode == plan.Apply {
		if err := s.persist(ctx, res); err != nil {
			return res, err
		}
		s.notifyAll(res)
	}
	return res, nil
}

func (s *Service) persist(ctx context.Context, res *plan.Result) error {
	if s.sink == nil {
		return nil
	}
	for _, c := range res.Computed {
		if err := s.sink.SaveComputedFields(ctx, c.ItemID, c.Fields); err != nil {
			return fmt.Errorf("persist item %s: %w", c.ItemID, err)
		}
	}
	s.log.Infof("run %s: persisted %d computed items", res.RunID, len(res.Computed))
	return nil
}

func (s *Service) notifyAll(res *plan.Result) {
	if s.pub == nil {
		return
	}
	for _, a := range res.Assignments {
		if err := s.pub.PublishAssignment(res.RunID, a); err != nil {
			s.log.Errorf("notify assignment %s: %v", a.ItemID, err)
		}
	}
}

// Run executes the service until the context is cancelled. Without a
// schedule it performs a single pass; with one it replans on the cron
// cadence.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg != nil && s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	if s.cfg == nil || s.cfg.Schedule == "" {
		_, err := s.RunOnce(ctx)
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(s.cfg.Schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Errorf("scheduled run: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", s.cfg.Schedule, err)
	}
	c.Start()
	defer c.Stop()

	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Errorf("initial run: %v", err)
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() {
	s.bus.Close()
	for _, c := range s.closers {
		c()
	}
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, p := range in {
		out = append(out, *p)
	}
	return out
}
