package leave

import (
	"strconv"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type SubmitLeaveRequest struct {
	RequesterID string `json:"-"`
	LeaveType   string `json:"leave_type" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Reason      string `json:"reason" validate:"required,max=500"`

	// Set by Validate
	Type  LeaveType `json:"-"`
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *SubmitLeaveRequest) Validate() error {
	errs := validator.Struct(r)
	if len(errs) > 0 {
		return errs
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	t, ok := ParseLeaveType(r.LeaveType)
	if !ok {
		errs.Add("leave_type", "leave_type is not a known leave type")
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if startOK && endOK {
		if start.After(end) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else if ok && t.IsHalfDay() && !start.Equal(end) {
			errs.Add("end_date", "half-day leave must start and end on the same date")
		}
	}

	if len(errs) > 0 {
		return errs
	}

	r.Type, r.Start, r.End = t, start, end
	return nil
}

type RejectLeaveRequest struct {
	RequestID  string `json:"-"`
	ApproverID string `json:"-"`
	Reason     string `json:"reason" validate:"required,max=500"`
}

func (r *RejectLeaveRequest) Validate() error {
	errs := validator.Struct(r)
	if len(errs) == 0 && validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	if validator.IsEmpty(r.RequestID) {
		errs.Add("id", "id is required")
	}
	return errs.OrNil()
}

// ChargeableDaysRequest backs the preview shown before submitting.
type ChargeableDaysRequest struct {
	LeaveType string
	StartDate string
	EndDate   string

	Type  LeaveType `json:"-"`
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *ChargeableDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	t, ok := ParseLeaveType(r.LeaveType)
	if !ok {
		errs.Add("leave_type", "leave_type is not a known leave type")
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if len(errs) > 0 {
		return errs
	}

	r.Type, r.Start, r.End = t, start, end
	return nil
}

type CalendarRequest struct {
	Year        int
	Month       int
	RequesterID string // optional, restricts entries to one requester
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	if r.Month < 1 || r.Month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}
	return errs.OrNil()
}

// ListLeaveRequestsQuery holds raw query-string values for list endpoints.
type ListLeaveRequestsQuery struct {
	Status string
	From   string
	To     string
	Page   string
	Limit  string
}

// ToFilter validates the query and converts it to a repository filter.
func (q ListLeaveRequestsQuery) ToFilter() (LeaveRequestFilter, error) {
	var errs validator.ValidationErrors
	filter := LeaveRequestFilter{Page: 1, Limit: 20}

	if q.Status != "" {
		s := Status(q.Status)
		switch s {
		case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
			filter.Status = s
		default:
			errs.Add("status", "status must be one of: pending approved rejected cancelled")
		}
	}
	if q.From != "" {
		if d, ok := validator.IsValidDate(q.From); ok {
			filter.From = &d
		} else {
			errs.Add("from", "from must be in YYYY-MM-DD format")
		}
	}
	if q.To != "" {
		if d, ok := validator.IsValidDate(q.To); ok {
			filter.To = &d
		} else {
			errs.Add("to", "to must be in YYYY-MM-DD format")
		}
	}
	if q.Page != "" {
		if p, err := strconv.Atoi(q.Page); err == nil && p > 0 {
			filter.Page = p
		} else {
			errs.Add("page", "page must be a positive integer")
		}
	}
	if q.Limit != "" {
		if l, err := strconv.Atoi(q.Limit); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		} else {
			errs.Add("limit", "limit must be between 1 and 100")
		}
	}

	if len(errs) > 0 {
		return LeaveRequestFilter{}, errs
	}
	return filter, nil
}

type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	RequesterID     string     `json:"requester_id"`
	RequesterName   *string    `json:"requester_name,omitempty"`
	LeaveType       LeaveType  `json:"leave_type"`
	LeaveTypeLabel  string     `json:"leave_type_label"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Days            float64    `json:"days"`
	Reason          string     `json:"reason"`
	Status          Status     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		RequesterID:     r.RequesterID,
		RequesterName:   r.RequesterName,
		LeaveType:       r.Type,
		LeaveTypeLabel:  r.Type.Label(),
		StartDate:       r.StartDate.Format(dateLayout),
		EndDate:         r.EndDate.Format(dateLayout),
		Days:            r.Days,
		Reason:          r.Reason,
		Status:          r.Status,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectedAt:      r.RejectedAt,
		RejectionReason: r.RejectionReason,
		CancelledAt:     r.CancelledAt,
		CreatedAt:       r.CreatedAt,
	}
}

type ListLeaveRequestResponse struct {
	Items      []LeaveRequestResponse `json:"items"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

type ChargeableDaysResponse struct {
	LeaveType  LeaveType `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Days       float64   `json:"days"`
	Deductible bool      `json:"deductible"`
}

type CalendarDayResponse struct {
	Date     string                 `json:"date"`
	Weekday  string                 `json:"weekday"`
	OffDay   bool                   `json:"off_day"`
	Holiday  *string                `json:"holiday,omitempty"`
	Requests []LeaveRequestResponse `json:"requests"`
}
