// Package store implements the source.ItemSource and
// source.PersistenceSink boundary on a relational database through
// GORM, with sqlite for single-binary setups and mysql for shared ones.
package store

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	corelogger "github.com/mfaivrep/planif/core/logger"
	"github.com/mfaivrep/planif/core/model"
	"github.com/mfaivrep/planif/core/source"
	"github.com/mfaivrep/planif/infra/logger"
)

// Config selects the database backend.
type Config struct {
	// Driver is "sqlite" or "mysql".
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
	// Migrate creates or updates the tables on open.
	Migrate bool `json:"migrate"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Driver == "" {
		c.Driver = "sqlite"
	}
	if c.DSN == "" && c.Driver == "sqlite" {
		c.DSN = "planif.db"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Driver != "sqlite" && c.Driver != "mysql" {
		return fmt.Errorf("store: unknown driver %s", c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("store: dsn is required")
	}
	return nil
}

// Store is a GORM-backed item source and persistence sink.
type Store struct {
	db  *gorm.DB
	log corelogger.Logger
}

// Open connects to the configured database.
func Open(cfg Config) (*Store, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		dialector = sqlite.Open(cfg.DSN)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: connect %s: %w", cfg.Driver, err)
	}
	s := &Store{db: db, log: logger.New("store")}
	if cfg.Migrate {
		if err := s.AutoMigrate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AutoMigrate creates or updates all tables.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("store: auto-migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LoadWorkItems returns the working set in table order.
func (s *Store) LoadWorkItems(ctx context.Context) ([]*model.WorkItem, error) {
	var rows []WorkItemRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: load work items: %w", err)
	}
	items := make([]*model.WorkItem, 0, len(rows))
	for _, r := range rows {
		item := &model.WorkItem{
			ID:          r.ID,
			Name:        r.Name,
			TaskID:      r.TaskID,
			TaskName:    r.TaskName,
			Normative:   r.NormativeMinutes,
			Quantity:    r.Quantity,
			Required:    r.Required,
			Constraint:  r.ConstraintExpr,
			Predecessor: r.Predecessor,
		}
		if r.StartTime != "" {
			ts, err := model.ParseStartTime(r.StartTime)
			if err != nil {
				s.log.Warnf("work item %s: bad start time %q ignored", r.ID, r.StartTime)
			} else {
				item.StartTime = ts
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadTemplateItems returns the template set in table order.
func (s *Store) LoadTemplateItems(ctx context.Context) ([]model.TemplateItem, error) {
	var rows []TemplateItemRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: load template items: %w", err)
	}
	items := make([]model.TemplateItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, model.TemplateItem{
			ID:        r.ID,
			Name:      r.Name,
			TaskID:    r.TaskID,
			TaskName:  r.TaskName,
			Normative: r.NormativeMinutes,
		})
	}
	return items, nil
}

// LoadCalendarSettings reads the work window from the settings table,
// falling back to the default calendar for missing keys.
func (s *Store) LoadCalendarSettings(ctx context.Context) (model.BusinessCalendar, error) {
	cal := model.DefaultCalendar()
	var rows []SettingRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return cal, fmt.Errorf("store: load settings: %w", err)
	}
	for _, r := range rows {
		v, err := strconv.Atoi(r.Value)
		if err != nil {
			s.log.Warnf("setting %s: bad value %q ignored", r.Name, r.Value)
			continue
		}
		switch r.Name {
		case "day_start":
			cal.DayStart = v
		case "day_end":
			cal.DayEnd = v
		case "lunch_start":
			cal.LunchStart = v
		}
	}
	return cal, nil
}

// LoadParameterDictionary returns the constraint-parameter names.
func (s *Store) LoadParameterDictionary(ctx context.Context) (map[string]string, error) {
	var rows []ParameterRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: load parameters: %w", err)
	}
	dict := make(map[string]string, len(rows))
	for _, r := range rows {
		dict[r.ID] = r.Name
	}
	return dict, nil
}

// LoadResources returns the executor profiles in table order.
// Malformed occupied-interval fragments are skipped with a warning and
// treated as no occupied time.
func (s *Store) LoadResources(ctx context.Context) ([]*model.ResourceProfile, error) {
	var rows []ResourceRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: load resources: %w", err)
	}
	resources := make([]*model.ResourceProfile, 0, len(rows))
	for _, r := range rows {
		ivs, bad := model.ParseOccupiedList(r.Occupied)
		for _, frag := range bad {
			s.log.Warnf("resource %s: bad occupied fragment %q ignored", r.ID, frag)
		}
		resources = append(resources, &model.ResourceProfile{
			ID:       r.ID,
			Name:     r.Name,
			Role:     r.Role,
			Level:    r.Level,
			Occupied: ivs,
		})
	}
	return resources, nil
}

// SaveComputedFields writes the computed normative and start time back
// into the work item row. Only the computed columns are touched, so
// re-saving identical values is safe.
func (s *Store) SaveComputedFields(ctx context.Context, itemID string, fields source.ComputedFields) error {
	updates := make(map[string]any, 2)
	if fields.Normative != nil {
		updates["normative_minutes"] = *fields.Normative
	}
	if fields.StartTime != nil {
		updates["start_time"] = model.FormatStartTime(*fields.StartTime)
	}
	if len(updates) == 0 {
		return nil
	}
	// RowsAffected is not checked: re-saving identical values reports
	// zero affected rows on some drivers and must stay silent.
	res := s.db.WithContext(ctx).Model(&WorkItemRow{}).Where("id = ?", itemID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("store: save computed fields for %s: %w", itemID, res.Error)
	}
	return nil
}
