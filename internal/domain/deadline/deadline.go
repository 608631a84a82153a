// Package deadline computes promised delivery dates on the workshop calendar.
package deadline

import "time"

// ExcludedWeekday is the weekly closed day that never counts as a production day.
const ExcludedWeekday = time.Sunday

// Compute returns the calendar date reached by advancing productionDays counted days
// from start. Days falling on excluded are passed over without being counted.
// A non-positive productionDays yields the start date itself.
func Compute(start time.Time, productionDays int, excluded time.Weekday) time.Time {
	day := Date(start)
	for counted := 0; counted < productionDays; {
		day = day.AddDate(0, 0, 1)
		if day.Weekday() != excluded {
			counted++
		}
	}
	return day
}

// ForWorkshop is Compute with the workshop's closed day.
func ForWorkshop(start time.Time, productionDays int) time.Time {
	return Compute(start, productionDays, ExcludedWeekday)
}

// Date truncates t to midnight in its own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
