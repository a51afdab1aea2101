package leave

import (
	"strings"
	"time"
)

type LeaveType string

const (
	LeaveTypeAnnual           LeaveType = "annual"
	LeaveTypeHalfDayMorning   LeaveType = "half_day_morning"
	LeaveTypeHalfDayAfternoon LeaveType = "half_day_afternoon"
	LeaveTypeFamilyEvent      LeaveType = "family_event"
	LeaveTypeSick             LeaveType = "sick"
	LeaveTypeSpecial          LeaveType = "special"
)

// AllLeaveTypes lists the accepted codes in display order.
var AllLeaveTypes = []LeaveType{
	LeaveTypeAnnual,
	LeaveTypeHalfDayMorning,
	LeaveTypeHalfDayAfternoon,
	LeaveTypeFamilyEvent,
	LeaveTypeSick,
	LeaveTypeSpecial,
}

var labels = map[LeaveType]string{
	LeaveTypeAnnual:           "연차",
	LeaveTypeHalfDayMorning:   "오전반차",
	LeaveTypeHalfDayAfternoon: "오후반차",
	LeaveTypeFamilyEvent:      "경조사",
	LeaveTypeSick:             "병가",
	LeaveTypeSpecial:          "특별휴가",
}

// ParseLeaveType accepts either the code or the Korean label shown in the UI.
func ParseLeaveType(s string) (LeaveType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllLeaveTypes {
		if string(t) == s || labels[t] == s {
			return t, true
		}
	}
	return "", false
}

func (t LeaveType) Label() string {
	return labels[t]
}

func (t LeaveType) IsHalfDay() bool {
	return t == LeaveTypeHalfDayMorning || t == LeaveTypeHalfDayAfternoon
}

// IsDeductible reports whether approval consumes the requester's leave balance.
// Family event, sick and special leave are tracked but not deducted.
func (t LeaveType) IsDeductible() bool {
	return t == LeaveTypeAnnual || t.IsHalfDay()
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsActive reports whether a request in this status still occupies its dates.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	RequesterID string
	Type        LeaveType

	StartDate time.Time
	EndDate   time.Time
	Days      float64
	Reason    string

	Status          Status
	ApprovedBy      *string // approver reference, also set on reject
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	RejectionReason *string
	CancelledAt     *time.Time

	// Incremented by every status transition
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	RequesterName *string
}
