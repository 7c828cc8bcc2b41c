package model

import "fmt"

// LunchMinutes is the fixed length of the midday break.
const LunchMinutes = 60

// BusinessCalendar is the daily work window. Hours are o'clock values;
// the lunch break starts at LunchStart and lasts LunchMinutes.
type BusinessCalendar struct {
	DayStart   int `json:"day_start"`
	DayEnd     int `json:"day_end"`
	LunchStart int `json:"lunch_start"`
}

// DefaultCalendar is the 9-to-18 window with lunch at 13.
func DefaultCalendar() BusinessCalendar {
	return BusinessCalendar{DayStart: 9, DayEnd: 18, LunchStart: 13}
}

// Validate checks that the window is coherent: the day has positive
// length and lunch fits strictly inside it.
func (c BusinessCalendar) Validate() error {
	if c.DayStart < 0 || c.DayEnd > 24 || c.DayStart >= c.DayEnd {
		return fmt.Errorf("calendar: bad work window %d-%d", c.DayStart, c.DayEnd)
	}
	if c.LunchStart < c.DayStart || c.LunchStart+1 > c.DayEnd {
		return fmt.Errorf("calendar: lunch at %d outside work window %d-%d", c.LunchStart, c.DayStart, c.DayEnd)
	}
	return nil
}
