package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/leave"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
	"github.com/sarang-church/groupware-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	GetLeaveBalance(w http.ResponseWriter, r *http.Request)
	SetLeaveAllotment(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewUserHandler(leaveService leave.LeaveService) UserHandler {
	return &UserHandlerImpl{leaveService: leaveService}
}

// GetLeaveBalance implements UserHandler.
func (u *UserHandlerImpl) GetLeaveBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := u.leaveService.Balance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// SetLeaveAllotment implements UserHandler.
func (u *UserHandlerImpl) SetLeaveAllotment(w http.ResponseWriter, r *http.Request) {
	var req user.SetLeaveAllotmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetLeaveAllotment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = chi.URLParam(r, "id")

	balance, err := u.leaveService.SetAllotment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("leave allotment updated", "user_id", req.UserID, "total_days", balance.TotalDays)
	response.SuccessWithMessage(w, "Leave allotment updated", balance)
}
