package changeoff

import (
	"math"
	"time"

	"go-leaveco/internal/calendar"
)

// ValueInput carries everything the day-value rule table needs. The
// classification is resolved by the caller; the calculation itself is pure.
type ValueInput struct {
	WorkPattern string
	Day         calendar.DayType
	StartTime   time.Time
	EndTime     time.Time

	// Bonus flags atop a shift pattern. Only honoured off-weekday.
	Travelling bool
	Standby    bool
}

// HoursWorked measures end minus start on the same date, rolling end over to
// the next day for overnight shifts.
func HoursWorked(start, end time.Time) float64 {
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return end.Sub(start).Hours()
}

// Value maps a worked day to its Change Off credit. Shift patterns earn a
// flat value by classification; the hour-based patterns look at the worked
// duration; travelling rewards an early departure.
func Value(in ValueInput) float64 {
	hours := HoursWorked(in.StartTime, in.EndTime)
	offDay := in.Day != calendar.DayTypeWeekday

	base := 0.0
	switch in.WorkPattern {
	case "3-shift":
		if offDay {
			base = 1.0
		}
	case "2-shift":
		base = 0.5
		if offDay {
			base = 1.5
		}
	case "non-shift", "back-office":
		if offDay {
			base = 1.0
			if hours >= 12 {
				base = 2.0
			}
		} else if hours > 12 {
			base = 1.0
		}
	case "travelling":
		if offDay {
			base = travellingValue(in.StartTime)
		}
	case "standby":
		if offDay {
			base = 0.5
		}
	}

	// Bonus flags never replace the base, and never pay on a weekday.
	if offDay {
		if in.Travelling && in.WorkPattern != "travelling" {
			base += travellingValue(in.StartTime)
		}
		if in.Standby && in.WorkPattern != "standby" {
			base += 0.5
		}
	}

	return round2(base)
}

// Berangkat sebelum jam 12 siang dihitung satu hari penuh.
func travellingValue(start time.Time) float64 {
	if start.Hour() < 12 {
		return 1.0
	}
	return 0.5
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
