package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
	"github.com/sarang-church/groupware-backend-go/internal/handler/http/response"
)

type ReservationHandler interface {
	ListResources(w http.ResponseWriter, r *http.Request)
	CreateResource(w http.ResponseWriter, r *http.Request)

	Timeline(w http.ResponseWriter, r *http.Request)
	SelectRange(w http.ResponseWriter, r *http.Request)

	CreateReservation(w http.ResponseWriter, r *http.Request)
	GetReservation(w http.ResponseWriter, r *http.Request)
	CancelReservation(w http.ResponseWriter, r *http.Request)

	StartVehicleUse(w http.ResponseWriter, r *http.Request)
	ReturnVehicle(w http.ResponseWriter, r *http.Request)
}

type ReservationHandlerImpl struct {
	reservationService reservation.ReservationService
}

func NewReservationHandler(reservationService reservation.ReservationService) ReservationHandler {
	return &ReservationHandlerImpl{reservationService: reservationService}
}

// ListResources implements ReservationHandler.
func (h *ReservationHandlerImpl) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.reservationService.ListResources(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resources)
}

// CreateResource implements ReservationHandler.
func (h *ReservationHandlerImpl) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req reservation.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateResource decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.reservationService.CreateResource(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Resource created", created)
}

// Timeline implements ReservationHandler.
func (h *ReservationHandlerImpl) Timeline(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	req := reservation.TimelineRequest{
		Date:     r.URL.Query().Get("date"),
		Category: r.URL.Query().Get("category"),
	}

	timeline, err := h.reservationService.DayTimeline(r.Context(), req, caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timeline)
}

// SelectRange implements ReservationHandler.
func (h *ReservationHandlerImpl) SelectRange(w http.ResponseWriter, r *http.Request) {
	var req reservation.SelectRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SelectRange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	selection, err := h.reservationService.SelectRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, selection)
}

// CreateReservation implements ReservationHandler.
func (h *ReservationHandlerImpl) CreateReservation(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	var req reservation.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateReservation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequesterID = caller.UserID

	created, err := h.reservationService.CreateReservation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("reservation created", "id", created.ID, "resource_id", created.ResourceID, "requester_id", caller.UserID)
	response.Created(w, "Reservation created", created)
}

// GetReservation implements ReservationHandler.
func (h *ReservationHandlerImpl) GetReservation(w http.ResponseWriter, r *http.Request) {
	found, err := h.reservationService.GetReservation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// CancelReservation implements ReservationHandler.
func (h *ReservationHandlerImpl) CancelReservation(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	cancelled, err := h.reservationService.CancelReservation(r.Context(), chi.URLParam(r, "id"), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reservation cancelled", cancelled)
}

type vehicleStartPayload struct {
	Mileage int `json:"mileage"`
}

type vehicleReturnPayload struct {
	Mileage         int    `json:"mileage"`
	IsClean         bool   `json:"is_clean"`
	ParkingLocation string `json:"parking_location"`
	ConditionNote   string `json:"condition_note"`
}

// readCheckpointForm decodes the "data" JSON field into payload and opens the
// "photo" file. It writes the error response itself and reports false on failure.
func readCheckpointForm(w http.ResponseWriter, r *http.Request, payload interface{}) (multipart.File, string, bool) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, "", false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return nil, "", false
	}
	if err := json.Unmarshal([]byte(dataJSON), payload); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return nil, "", false
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.ValidationError(w, map[string]string{"photo": "photo is required"})
			return nil, "", false
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, "", false
	}
	return file, fileHeader.Filename, true
}

// StartVehicleUse implements ReservationHandler.
func (h *ReservationHandlerImpl) StartVehicleUse(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	var payload vehicleStartPayload
	file, filename, ok := readCheckpointForm(w, r, &payload)
	if !ok {
		return
	}
	defer file.Close()

	started, err := h.reservationService.StartVehicleUse(r.Context(), reservation.StartVehicleUseRequest{
		ReservationID: chi.URLParam(r, "id"),
		CallerID:      caller.UserID,
		Mileage:       payload.Mileage,
		Photo:         file,
		PhotoName:     filename,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("vehicle checked out", "reservation_id", started.ID, "mileage", payload.Mileage)
	response.SuccessWithMessage(w, "Vehicle use started", started)
}

// ReturnVehicle implements ReservationHandler.
func (h *ReservationHandlerImpl) ReturnVehicle(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentCaller(w, r)
	if !ok {
		return
	}

	var payload vehicleReturnPayload
	file, filename, ok := readCheckpointForm(w, r, &payload)
	if !ok {
		return
	}
	defer file.Close()

	returned, err := h.reservationService.ReturnVehicle(r.Context(), reservation.ReturnVehicleRequest{
		ReservationID:   chi.URLParam(r, "id"),
		CallerID:        caller.UserID,
		Mileage:         payload.Mileage,
		IsClean:         payload.IsClean,
		ParkingLocation: payload.ParkingLocation,
		ConditionNote:   payload.ConditionNote,
		Photo:           file,
		PhotoName:       filename,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("vehicle returned", "reservation_id", returned.ID, "mileage", payload.Mileage)
	response.SuccessWithMessage(w, "Vehicle returned", returned)
}
