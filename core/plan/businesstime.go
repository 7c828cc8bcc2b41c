package plan

import (
	"time"

	"github.com/mfaivrep/planif/core/model"
)

// Advance moves start forward by the given number of working minutes
// under the calendar rules. It is a pure function: the input timestamp
// is never mutated.
//
// Work is consumed segment by segment: before the lunch hour the
// segment runs until lunch start, after lunch until day end. A cursor
// sitting exactly at lunch start is pushed to the end of lunch without
// consuming anything. A morning segment filled exactly also lands at
// the end of lunch, so a returned timestamp never falls inside the
// lunch hour. An afternoon segment filled exactly ends on the day-end
// o'clock, the interval endpoint; anything longer rolls to the next
// day's start. Zero or negative durations return start unchanged.
func Advance(start time.Time, minutes int, cal model.BusinessCalendar) time.Time {
	if minutes <= 0 {
		return start
	}
	cur := start
	remaining := minutes
	for remaining > 0 {
		minute := cur.Hour()*60 + cur.Minute()
		lunch := cal.LunchStart * 60
		dayEnd := cal.DayEnd * 60

		if minute >= dayEnd {
			cur = atHour(cur.AddDate(0, 0, 1), cal.DayStart)
			continue
		}
		if minute == lunch {
			cur = atHour(cur, cal.LunchStart+1)
			continue
		}
		if minute < lunch {
			segment := lunch - minute
			if remaining < segment {
				return cur.Add(time.Duration(remaining) * time.Minute)
			}
			remaining -= segment
			cur = atHour(cur, cal.LunchStart+1)
			continue
		}
		segment := dayEnd - minute
		if remaining <= segment {
			return cur.Add(time.Duration(remaining) * time.Minute)
		}
		remaining -= segment
		cur = atHour(cur.AddDate(0, 0, 1), cal.DayStart)
	}
	return cur
}

// atHour returns t's date at the given whole hour.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
