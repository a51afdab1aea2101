package leave

import (
	"testing"

	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitLeaveRequest_Validate(t *testing.T) {
	req := SubmitLeaveRequest{LeaveType: "연차", StartDate: "2024-06-04", EndDate: "2024-06-05", Reason: "가족 여행"}
	require.NoError(t, req.Validate())
	assert.Equal(t, LeaveTypeAnnual, req.Type)
	assert.Equal(t, day("2024-06-04"), req.Start)
	assert.Equal(t, day("2024-06-05"), req.End)

	tests := []struct {
		name  string
		req   SubmitLeaveRequest
		field string
	}{
		{"missing reason", SubmitLeaveRequest{LeaveType: "annual", StartDate: "2024-06-04", EndDate: "2024-06-04"}, "reason"},
		{"blank reason", SubmitLeaveRequest{LeaveType: "annual", StartDate: "2024-06-04", EndDate: "2024-06-04", Reason: "  "}, "reason"},
		{"unknown type", SubmitLeaveRequest{LeaveType: "holiday", StartDate: "2024-06-04", EndDate: "2024-06-04", Reason: "r"}, "leave_type"},
		{"bad date", SubmitLeaveRequest{LeaveType: "annual", StartDate: "06/04/2024", EndDate: "2024-06-04", Reason: "r"}, "start_date"},
		{"reversed", SubmitLeaveRequest{LeaveType: "annual", StartDate: "2024-06-05", EndDate: "2024-06-04", Reason: "r"}, "end_date"},
		{"half day spanning", SubmitLeaveRequest{LeaveType: "half_day_morning", StartDate: "2024-06-04", EndDate: "2024-06-05", Reason: "r"}, "end_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestRejectLeaveRequest_Validate(t *testing.T) {
	req := RejectLeaveRequest{RequestID: "id", Reason: "일정 중복"}
	assert.NoError(t, req.Validate())

	req.Reason = " "
	assert.Error(t, req.Validate())
}

func TestListLeaveRequestsQuery_ToFilter(t *testing.T) {
	f, err := ListLeaveRequestsQuery{}.ToFilter()
	require.NoError(t, err)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)

	f, err = ListLeaveRequestsQuery{Status: "pending", From: "2024-06-01", Page: "2", Limit: "50"}.ToFilter()
	require.NoError(t, err)
	assert.Equal(t, StatusPending, f.Status)
	assert.Equal(t, day("2024-06-01"), *f.From)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 50, f.Limit)

	_, err = ListLeaveRequestsQuery{Status: "done", Limit: "1000"}.ToFilter()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "status")
	assert.Contains(t, verrs.ToMap(), "limit")
}

func TestCalendarRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CalendarRequest{Year: 2024, Month: 6}).Validate())
	assert.Error(t, (&CalendarRequest{Year: 2024, Month: 13}).Validate())
}
