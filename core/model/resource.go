package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Textual layouts inherited from the legacy tables.
const (
	// DateKeyLayout encodes a calendar day, e.g. "20251121".
	DateKeyLayout = "20060102"
	// StartTimeLayout is the persisted start-time form,
	// e.g. "21.11.2025 09:00:00".
	StartTimeLayout = "02.01.2006 15:04:05"
)

// ResourceProfile is one executor: a person or machine that can be
// assigned to work items.
type ResourceProfile struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Role     string             `json:"role,omitempty"`
	Level    float64            `json:"level,omitempty"`
	Occupied []OccupiedInterval `json:"occupied,omitempty"`
}

// OccupiedInterval is one busy window of a resource: whole hours on a
// single day, end exclusive.
type OccupiedInterval struct {
	Date      time.Time `json:"date"`
	StartHour int       `json:"start_hour"`
	EndHour   int       `json:"end_hour"`
}

// SameDate reports whether the interval lies on the given calendar day.
func (iv OccupiedInterval) SameDate(date time.Time) bool {
	y1, m1, d1 := iv.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overlaps reports whether [startHour, endHour) on date intersects the
// interval. Touching endpoints do not overlap.
func (iv OccupiedInterval) Overlaps(date time.Time, startHour, endHour int) bool {
	if !iv.SameDate(date) {
		return false
	}
	return !(endHour <= iv.StartHour || startHour >= iv.EndHour)
}

// ParseDateKey parses a compact day key like "20251121".
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse(DateKeyLayout, s)
}

// FormatDateKey renders t as a compact day key.
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseStartTime parses the persisted start-time form.
func ParseStartTime(s string) (time.Time, error) {
	return time.Parse(StartTimeLayout, s)
}

// FormatStartTime renders t in the persisted start-time form.
func FormatStartTime(t time.Time) string {
	return t.Format(StartTimeLayout)
}

// ParseOccupied parses one occupied fragment shaped
// "20251121:9-12" (day key, start hour, end hour).
func ParseOccupied(s string) (OccupiedInterval, error) {
	var iv OccupiedInterval
	dateStr, hours, ok := strings.Cut(s, ":")
	if !ok {
		return iv, fmt.Errorf("occupied %q: missing ':'", s)
	}
	date, err := ParseDateKey(dateStr)
	if err != nil {
		return iv, fmt.Errorf("occupied %q: %w", s, err)
	}
	low, high, ok := strings.Cut(hours, "-")
	if !ok {
		return iv, fmt.Errorf("occupied %q: missing '-'", s)
	}
	start, err := strconv.Atoi(low)
	if err != nil {
		return iv, fmt.Errorf("occupied %q: %w", s, err)
	}
	end, err := strconv.Atoi(high)
	if err != nil {
		return iv, fmt.Errorf("occupied %q: %w", s, err)
	}
	if start < 0 || end <= start || end > 24 {
		return iv, fmt.Errorf("occupied %q: hours out of range", s)
	}
	iv.Date = date
	iv.StartHour = start
	iv.EndHour = end
	return iv, nil
}

// FormatOccupied renders the interval in the persisted fragment form.
func FormatOccupied(iv OccupiedInterval) string {
	return fmt.Sprintf("%s:%d-%d", FormatDateKey(iv.Date), iv.StartHour, iv.EndHour)
}

// ParseOccupiedList parses a comma-separated occupied list. Malformed
// fragments are skipped and returned separately so the caller can warn
// about them.
func ParseOccupiedList(s string) ([]OccupiedInterval, []string) {
	var ivs []OccupiedInterval
	var bad []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		iv, err := ParseOccupied(part)
		if err != nil {
			bad = append(bad, part)
			continue
		}
		ivs = append(ivs, iv)
	}
	return ivs, bad
}

// FormatOccupiedList renders intervals in the persisted list form.
func FormatOccupiedList(ivs []OccupiedInterval) string {
	parts := make([]string, 0, len(ivs))
	for _, iv := range ivs {
		parts = append(parts, FormatOccupied(iv))
	}
	return strings.Join(parts, ",")
}
