package store

// Row models for the planning database. The planner core never sees
// these; Load* converts them into typed domain entities.
//
// Field mapping at the source boundary:
//
//	work_items.normative_minutes  -> model.WorkItem.Normative (minutes)
//	work_items.start_time         -> model.WorkItem.StartTime, textual
//	                                 DD.MM.YYYY HH:MM:SS
//	work_items.constraint_expr    -> model.WorkItem.Constraint,
//	                                 ID:value(min-max) comma-separated
//	resources.occupied            -> model.ResourceProfile.Occupied,
//	                                 YYYYMMDD:start-end comma-separated
//	settings(day_start|day_end|lunch_start) -> model.BusinessCalendar
//	parameters                    -> parameter dictionary, id -> name

// WorkItemRow is a working-set item, task or operation.
type WorkItemRow struct {
	ID               string `gorm:"primaryKey;size:64"`
	Name             string `gorm:"size:128"`
	TaskID           string `gorm:"size:64;index"`
	TaskName         string `gorm:"size:128"`
	NormativeMinutes int
	Quantity         float64
	Required         int
	ConstraintExpr   string `gorm:"size:256"`
	Predecessor      string `gorm:"size:128"`
	StartTime        string `gorm:"size:32"`
}

func (WorkItemRow) TableName() string { return "work_items" }

// TemplateItemRow is a reference item from the template project.
type TemplateItemRow struct {
	ID               string `gorm:"primaryKey;size:64"`
	Name             string `gorm:"size:128"`
	TaskID           string `gorm:"size:64;index"`
	TaskName         string `gorm:"size:128"`
	NormativeMinutes int
}

func (TemplateItemRow) TableName() string { return "template_items" }

// ResourceRow is an executor profile.
type ResourceRow struct {
	ID       string  `gorm:"primaryKey;size:64"`
	Name     string  `gorm:"size:128"`
	Role     string  `gorm:"size:64"`
	Level    float64
	Occupied string `gorm:"size:1024"`
}

func (ResourceRow) TableName() string { return "resources" }

// SettingRow is a named scalar setting, calendar hours included.
type SettingRow struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:256"`
}

func (SettingRow) TableName() string { return "settings" }

// ParameterRow maps a constraint parameter id to its display name.
type ParameterRow struct {
	ID   string `gorm:"primaryKey;size:32"`
	Name string `gorm:"size:128"`
}

func (ParameterRow) TableName() string { return "parameters" }

// allModels returns the models for migration.
func allModels() []any {
	return []any{
		&WorkItemRow{},
		&TemplateItemRow{},
		&ResourceRow{},
		&SettingRow{},
		&ParameterRow{},
	}
}
