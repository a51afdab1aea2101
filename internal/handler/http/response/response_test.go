package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/leave"
	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
	"github.com/sarang-church/groupware-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorCarriesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set(RequestIDHeader, "host/abc-000001")

	NotFound(rec, "Leave request not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "host/abc-000001", body.Error.RequestID)
}

func TestHandleError(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }

	t.Run("insufficient balance", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, &leave.InsufficientBalanceError{Remaining: 1.5, Requested: 3})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "1.5", body.Error.Details["remaining_days"])
		assert.Equal(t, "3.0", body.Error.Details["requested_days"])
	})

	t.Run("overlapping leave", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, &leave.OverlapError{ConflictID: "req-1", ConflictStart: day(3), ConflictEnd: day(5)})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "req-1", decode(t, rec).Error.Details["conflict_id"])
	})

	t.Run("reservation conflict", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, &reservation.ConflictError{With: reservation.BookingInterval{
			ID:    "rsv-1",
			Kind:  reservation.KindPersisted,
			Start: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
		}})

		assert.Equal(t, http.StatusConflict, rec.Code)
		details := decode(t, rec).Error.Details
		assert.Equal(t, "rsv-1", details["conflict_id"])
		assert.Equal(t, "2024-06-10T09:00:00Z", details["conflict_start"])
	})

	t.Run("wrapped sentinel", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, errors.Join(errors.New("context"), leave.ErrLeaveRequestNotFound))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("oversized image is a validation error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, file.ErrImageTooLarge)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Error.Code)
	})

	t.Run("unknown error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleError(rec, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", decode(t, rec).Error.Code)
	})
}
