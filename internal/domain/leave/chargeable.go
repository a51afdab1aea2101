package leave

import (
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/holiday"
)

// HalfDay is the fixed charge of a morning or afternoon half day.
const HalfDay = 0.5

// IsOffDay reports the organization's weekly days off. Services run on Sunday,
// so Saturday and Monday are off instead of the usual weekend.
func IsOffDay(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Monday
}

// ChargeableDays counts the days a request consumes. Half-day types always
// charge HalfDay. Other types count every day in [start, end] that is neither
// an off day nor in cal. A reversed range counts as zero.
func ChargeableDays(start, end time.Time, t LeaveType, cal holiday.Calendar) float64 {
	start, end = truncateDay(start), truncateDay(end)
	if start.After(end) {
		return 0
	}
	if t.IsHalfDay() {
		return HalfDay
	}

	var days float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsOffDay(d) || cal.IsHoliday(d) {
			continue
		}
		days++
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
