package tick

import (
	"math"
	"time"
)

// Millisecond durations for building the calendar increment series. Months
// and years use nominal lengths for increment *selection* only; split
// generation steps real calendar boundaries.
const (
	msSecond = 1e3
	msMinute = 60 * msSecond
	msHour   = 60 * msMinute
	msDay    = 24 * msHour
	msMonth  = 30 * msDay
	msYear   = 365 * msDay
)

// timeIncrs is the candidate series for time scales, in unix milliseconds.
// The unit set is increment-dependent: which calendar unit a split lands on
// falls out of which band the chosen increment sits in.
var timeIncrs = []float64{
	1, 2, 5, 10, 20, 50, 100, 200, 500,
	msSecond, 2 * msSecond, 5 * msSecond, 10 * msSecond, 15 * msSecond, 30 * msSecond,
	msMinute, 2 * msMinute, 5 * msMinute, 10 * msMinute, 15 * msMinute, 30 * msMinute,
	msHour, 2 * msHour, 3 * msHour, 6 * msHour, 12 * msHour,
	msDay, 2 * msDay, 7 * msDay, 14 * msDay,
	msMonth, 2 * msMonth, 3 * msMonth, 6 * msMonth,
	msYear, 2 * msYear, 5 * msYear, 10 * msYear,
}

// planTime produces multi-unit calendar splits for a time scale whose values
// are unix milliseconds. Sub-day increments step in fixed durations; day
// increments align to midnight; month and year increments step calendar
// boundaries so splits stay on the 1st regardless of month length.
func planTime(min, max, availablePx float64, opts Options) Plan {
	incrs := opts.Increments
	if incrs == nil {
		incrs = timeIncrs
	}
	incr, space := FindIncrement(min, max, incrs, availablePx, opts.MinSpacing)
	if incr == 0 {
		return Plan{}
	}

	p := Plan{Incr: incr, Spacing: space}
	format := timeFormat(incr)

	switch {
	case incr >= msMonth:
		p.Splits = calendarSplits(min, max, incr)
	default:
		// Fixed-duration stepping, aligned to the increment grid. Day-level
		// increments land on UTC midnights because the unix epoch does.
		for v := firstSplit(min, incr); v <= max; v += incr {
			p.Splits = append(p.Splits, v)
		}
	}

	for _, v := range p.Splits {
		p.Labels = append(p.Labels, msTime(v).Format(format))
	}
	return p
}

// calendarSplits steps whole months or years between min and max.
func calendarSplits(min, max, incr float64) []float64 {
	stepMonths := int(math.Round(incr / msMonth))
	if incr >= msYear {
		stepMonths = 12 * int(math.Round(incr/msYear))
	}

	t := msTime(min)
	// Advance to the next month boundary unless min already sits on one.
	aligned := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	if aligned.Before(t) {
		aligned = aligned.AddDate(0, 1, 0)
	}
	if stepMonths >= 12 {
		// Year steps additionally align to January.
		for aligned.Month() != time.January {
			aligned = aligned.AddDate(0, 1, 0)
		}
	}

	var splits []float64
	for cur := aligned; ; cur = cur.AddDate(0, stepMonths, 0) {
		ms := float64(cur.UnixMilli())
		if ms > max {
			break
		}
		if ms >= min {
			splits = append(splits, ms)
		}
	}
	return splits
}

// timeFormat selects the label layout for the increment's unit band.
func timeFormat(incr float64) string {
	switch {
	case incr >= msYear:
		return "2006"
	case incr >= msMonth:
		return "Jan 2006"
	case incr >= msDay:
		return "Jan 2"
	case incr >= msMinute:
		return "15:04"
	case incr >= msSecond:
		return "15:04:05"
	default:
		return "15:04:05.000"
	}
}

func msTime(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}
