package leave

import (
	"testing"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestChargeableDays(t *testing.T) {
	empty := holiday.Calendar{}

	tests := []struct {
		name  string
		start string
		end   string
		typ   LeaveType
		cal   holiday.Calendar
		want  float64
	}{
		{"reversed range is zero", "2024-06-05", "2024-06-04", LeaveTypeAnnual, empty, 0},
		{"reversed half day is zero", "2024-06-05", "2024-06-04", LeaveTypeHalfDayMorning, empty, 0},
		{"morning half day", "2024-06-04", "2024-06-04", LeaveTypeHalfDayMorning, empty, 0.5},
		{"afternoon half day ignores range", "2024-06-04", "2024-06-10", LeaveTypeHalfDayAfternoon, empty, 0.5},
		{"monday to sunday skips saturday and monday", "2024-06-03", "2024-06-09", LeaveTypeAnnual, empty, 5},
		{"sunday is a working day", "2024-06-09", "2024-06-09", LeaveTypeAnnual, empty, 1},
		{"single saturday", "2024-06-08", "2024-06-08", LeaveTypeAnnual, empty, 0},
		{"single monday", "2024-06-10", "2024-06-10", LeaveTypeSick, empty, 0},
		{"holiday excluded", "2024-06-03", "2024-06-09", LeaveTypeAnnual, holiday.Calendar{"2024-06-06": "현충일"}, 4},
		{"default table", "2024-06-03", "2024-06-09", LeaveTypeFamilyEvent, holiday.Default(), 4},
		{"nil calendar", "2024-06-04", "2024-06-05", LeaveTypeSpecial, nil, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChargeableDays(day(tt.start), day(tt.end), tt.typ, tt.cal)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChargeableDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 6, 4, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2.0, ChargeableDays(start, end, LeaveTypeAnnual, nil))
}

func TestChargeableDays_Idempotent(t *testing.T) {
	cal := holiday.Default()
	first := ChargeableDays(day("2025-09-30"), day("2025-10-12"), LeaveTypeAnnual, cal)
	second := ChargeableDays(day("2025-09-30"), day("2025-10-12"), LeaveTypeAnnual, cal)
	assert.Equal(t, first, second)
}

func TestIsOffDay(t *testing.T) {
	assert.True(t, IsOffDay(day("2024-06-08")))  // Saturday
	assert.True(t, IsOffDay(day("2024-06-10")))  // Monday
	assert.False(t, IsOffDay(day("2024-06-09"))) // Sunday
	assert.False(t, IsOffDay(day("2024-06-11")))
}
