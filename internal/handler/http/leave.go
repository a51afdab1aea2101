package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/leave"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
	"github.com/sarang-church/groupware-backend-go/internal/handler/http/response"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
)

type LeaveHandler interface {
	ChargeableDays(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)

	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	now          func() time.Time
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService, now: time.Now}
}

// ChargeableDays implements LeaveHandler.
func (l *LeaveHandlerImpl) ChargeableDays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := leave.ChargeableDaysRequest{
		LeaveType: q.Get("leave_type"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	preview, err := l.leaveService.ChargeableDays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// GetMyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	balance, err := l.leaveService.Balance(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// Calendar implements LeaveHandler.
func (l *LeaveHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	now := l.now()
	req := leave.CalendarRequest{Year: now.Year(), Month: int(now.Month())}

	var errs validator.ValidationErrors
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("year", "year must be a number")
		}
		req.Year = year
	}
	if v := r.URL.Query().Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			errs.Add("month", "month must be a number")
		}
		req.Month = month
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	// Without leave.view_all the calendar only shows the caller's own requests
	if !caller.Can(user.PermissionLeaveViewAll) || r.URL.Query().Get("scope") == "mine" {
		req.RequesterID = caller.UserID
	}

	days, err := l.leaveService.Calendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

func listQuery(r *http.Request) leave.ListLeaveRequestsQuery {
	q := r.URL.Query()
	return leave.ListLeaveRequestsQuery{
		Status: q.Get("status"),
		From:   q.Get("from"),
		To:     q.Get("to"),
		Page:   q.Get("page"),
		Limit:  q.Get("limit"),
	}
}

func (l *LeaveHandlerImpl) writeList(w http.ResponseWriter, r *http.Request, filter leave.LeaveRequestFilter) {
	result, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Items, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter, err := listQuery(r).ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.RequesterID = r.URL.Query().Get("requester_id")

	l.writeList(w, r, filter)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	filter, err := listQuery(r).ToFilter()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.RequesterID = caller.UserID

	l.writeList(w, r, filter)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	request, err := l.leaveService.Get(r.Context(), chi.URLParam(r, "id"), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequesterID = caller.UserID

	created, err := l.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("leave request submitted", "id", created.ID, "requester_id", caller.UserID, "days", created.Days)
	response.Created(w, "Leave request submitted", created)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	approved, err := l.leaveService.Approve(r.Context(), chi.URLParam(r, "id"), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("leave request approved", "id", approved.ID, "approver_id", caller.UserID)
	response.SuccessWithMessage(w, "Leave request approved", approved)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ApproverID = caller.UserID

	rejected, err := l.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("leave request rejected", "id", rejected.ID, "approver_id", caller.UserID)
	response.SuccessWithMessage(w, "Leave request rejected", rejected)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	cancelled, err := l.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", cancelled)
}
