package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/auth"
	"github.com/sarang-church/groupware-backend-go/internal/domain/leave"
	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/validator"
	"github.com/sarang-church/groupware-backend-go/internal/service/file"
)

func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', 1, 64)
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Business errors that carry details
	var overlapErr *leave.OverlapError
	if errors.As(err, &overlapErr) {
		ConflictWithDetails(w, "Leave request overlaps an existing request", map[string]string{
			"conflict_id":    overlapErr.ConflictID,
			"conflict_start": overlapErr.ConflictStart.Format("2006-01-02"),
			"conflict_end":   overlapErr.ConflictEnd.Format("2006-01-02"),
		})
		return
	}

	var balanceErr *leave.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		BadRequest(w, "Insufficient leave balance", map[string]string{
			"remaining_days": formatDays(balanceErr.Remaining),
			"requested_days": formatDays(balanceErr.Requested),
		})
		return
	}

	var conflictErr *reservation.ConflictError
	if errors.As(err, &conflictErr) {
		var details map[string]string
		if conflictErr.With.ID != "" {
			details = map[string]string{
				"conflict_id":    conflictErr.With.ID,
				"conflict_kind":  string(conflictErr.With.Kind),
				"conflict_label": conflictErr.With.Label,
				"conflict_start": conflictErr.With.Start.Format(time.RFC3339),
				"conflict_end":   conflictErr.With.End.Format(time.RFC3339),
			}
		}
		ConflictWithDetails(w, "Reservation overlaps an existing booking", details)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrAllotmentBelowUsed):
		BadRequest(w, "Leave allotment cannot be lower than used days", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Leave request cannot move to the requested status")
	case errors.Is(err, leave.ErrNoChargeableDays):
		BadRequest(w, "Requested range has no chargeable days", nil)
	case errors.Is(err, leave.ErrSelfApproval):
		Forbidden(w, "Requester cannot approve or reject own request")
	case errors.Is(err, leave.ErrNotApprover):
		Forbidden(w, "User is not allowed to approve leave")
	case errors.Is(err, leave.ErrNotRequester):
		Forbidden(w, "Only the requester can cancel a leave request")

	// Reservation domain errors
	case errors.Is(err, reservation.ErrResourceNotFound):
		NotFound(w, "Resource not found")
	case errors.Is(err, reservation.ErrReservationNotFound):
		NotFound(w, "Reservation not found")
	case errors.Is(err, reservation.ErrResourceInactive):
		BadRequest(w, "Resource is not available for booking", nil)
	case errors.Is(err, reservation.ErrFixedNotCancelable):
		BadRequest(w, "Recurring fixed bookings cannot be cancelled", nil)
	case errors.Is(err, reservation.ErrNotVehicle):
		BadRequest(w, "Reservation is not a vehicle booking", nil)
	case errors.Is(err, reservation.ErrNotRequester):
		Forbidden(w, "Only the requester can change this reservation")
	case errors.Is(err, reservation.ErrAlreadyCancelled):
		Conflict(w, "Reservation already cancelled")
	case errors.Is(err, reservation.ErrInvalidVehicleState):
		Conflict(w, "Vehicle reservation is not in the required state")
	case errors.Is(err, reservation.ErrInvalidMileage):
		ValidationError(w, map[string]string{"mileage": err.Error()})

	// File errors
	case errors.Is(err, file.ErrInvalidFileType):
		ValidationError(w, map[string]string{"photo": err.Error()})
	case errors.Is(err, file.ErrFileTooLarge):
		BadRequest(w, "File exceeds the 10MB limit", nil)
	case errors.Is(err, file.ErrImageTooLarge):
		ValidationError(w, map[string]string{"photo": err.Error()})

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
