package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mfaivrep/planif/core/metrics"
	"github.com/mfaivrep/planif/core/model"
	"github.com/mfaivrep/planif/infra/notify"
	"github.com/mfaivrep/planif/infra/store"
)

// Config is the root configuration of the planner.
type Config struct {
	Store    store.Config           `json:"store"`
	Calendar model.BusinessCalendar `json:"calendar"`
	Metrics  metrics.Config         `json:"metrics"`
	Notify   notify.Config          `json:"notify"`
	// Schedule is an optional cron expression. When set the planner
	// keeps running and replans on that cadence.
	Schedule string `json:"schedule"`
	// Apply writes computed normatives and start times back to the
	// store. The default is a dry run.
	Apply bool `json:"apply"`
}

// Load reads the config file at path and applies PLANIF_ environment
// overrides (double underscore as the nesting separator).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("PLANIF_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "planif_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to all sections.
func (c *Config) SetDefaults() {
	c.Store.SetDefaults()
	c.Metrics.SetDefaults()
	c.Notify.SetDefaults()
	if c.Calendar.DayStart == 0 && c.Calendar.DayEnd == 0 && c.Calendar.LunchStart == 0 {
		c.Calendar = model.DefaultCalendar()
	}
}

// Validate checks the sections that can fail fast.
func (c *Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Calendar.Validate(); err != nil {
		return err
	}
	return nil
}
