package tick

import (
	"testing"
	"time"

	"github.com/plotgrid/plotgrid/pkg/scale"
)

func ms(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func timeScale(t *testing.T, min, max time.Time) *scale.Scale {
	t.Helper()
	return testScale(t, scale.Def{
		Distribution: scale.Time,
		Horizontal:   true,
		Range:        scale.FixedRange{Min: ms(min), Max: ms(max)},
	})
}

func TestPlanAxis_TimeHours(t *testing.T) {
	day := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	s := timeScale(t, day, day.AddDate(0, 0, 1))

	p := PlanAxis(s, ms(day), ms(day.AddDate(0, 0, 1)), 600, Options{MinSpacing: 50})

	if p.Incr != 2*msHour {
		t.Fatalf("Incr = %v, want 2h in ms (%v)", p.Incr, 2*msHour)
	}
	if len(p.Splits) != 13 {
		t.Fatalf("got %d splits, want 13 (00:00 through 24:00)", len(p.Splits))
	}
	if p.Labels[0] != "00:00" || p.Labels[1] != "02:00" {
		t.Errorf("Labels[0..1] = %q, %q, want 00:00, 02:00", p.Labels[0], p.Labels[1])
	}
}

func TestPlanAxis_TimeSeconds(t *testing.T) {
	start := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	s := timeScale(t, start, start.Add(time.Minute))

	p := PlanAxis(s, ms(start), ms(start.Add(time.Minute)), 600, Options{MinSpacing: 45})

	if p.Incr != 5*msSecond {
		t.Fatalf("Incr = %v, want 5s in ms", p.Incr)
	}
	if p.Labels[1] != "09:30:05" {
		t.Errorf("Labels[1] = %q, want 09:30:05", p.Labels[1])
	}
}

func TestPlanAxis_TimeMonths(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := timeScale(t, start, end)

	p := PlanAxis(s, ms(start), ms(end), 600, Options{})

	if p.Incr != msMonth {
		t.Fatalf("Incr = %v, want 1 month in ms (%v)", p.Incr, msMonth)
	}
	if len(p.Splits) != 13 {
		t.Fatalf("got %d splits (%v), want 13 month boundaries", len(p.Splits), p.Labels)
	}
	// Calendar stepping must land on the 1st even across the leap February.
	for i, v := range p.Splits {
		day := msTime(v)
		if day.Day() != 1 || day.Hour() != 0 {
			t.Errorf("split %d = %v, want a month boundary", i, day)
		}
	}
	if p.Labels[0] != "Jan 2024" || p.Labels[1] != "Feb 2024" {
		t.Errorf("Labels[0..1] = %q, %q", p.Labels[0], p.Labels[1])
	}
}

func TestPlanAxis_TimeYears(t *testing.T) {
	start := time.Date(2010, time.June, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	s := timeScale(t, start, end)

	p := PlanAxis(s, ms(start), ms(end), 500, Options{})

	if p.Incr < msYear {
		t.Fatalf("Incr = %v, want at least a year", p.Incr)
	}
	// Year splits align to January 1.
	for _, v := range p.Splits {
		d := msTime(v)
		if d.Month() != time.January || d.Day() != 1 {
			t.Errorf("split %v not aligned to Jan 1", d)
		}
	}
	if p.Labels[0] != "2011" {
		t.Errorf("Labels[0] = %q, want 2011 (first boundary after mid-2010)", p.Labels[0])
	}
}

func TestTimeFormat_UnitBands(t *testing.T) {
	tests := []struct {
		incr float64
		want string
	}{
		{500, "15:04:05.000"},
		{5 * msSecond, "15:04:05"},
		{msMinute, "15:04"},
		{6 * msHour, "15:04"},
		{msDay, "Jan 2"},
		{msMonth, "Jan 2006"},
		{msYear, "2006"},
	}
	for _, tt := range tests {
		if got := timeFormat(tt.incr); got != tt.want {
			t.Errorf("timeFormat(%v) = %q, want %q", tt.incr, got, tt.want)
		}
	}
}
