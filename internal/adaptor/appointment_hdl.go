package adaptor

import (
	"encoding/json"
	"net/http"

	"clinic-booking/internal/dto/request"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewAppointmentHandler(service usecase.BookingService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log.With(zap.String("handler", "appointment")),
	}
}

// Book handles POST /api/appointments (patient only)
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	patientID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	appointment, err := h.service.Book(r.Context(), patientID.String(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "book appointment")
		return
	}

	utils.ResponseCreated(w, "success", appointment)
}

// GetUserAppointments handles GET /api/appointments (own bookings)
func (h *AppointmentHandler) GetUserAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	appointments, err := h.service.GetUserAppointments(r.Context(), userID.String(), req)
	if err != nil {
		respondServiceError(w, h.log, err, "get user appointments")
		return
	}

	utils.ResponseSuccess(w, "success", appointments)
}

// GetAppointmentByID handles GET /api/appointments/{id} (participant only)
func (h *AppointmentHandler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	appointmentID := chi.URLParam(r, "id")
	if appointmentID == "" {
		utils.ResponseBadRequest(w, "Appointment ID is required", nil)
		return
	}

	appointment, err := h.service.GetAppointmentByID(r.Context(), userID.String(), appointmentID)
	if err != nil {
		respondServiceError(w, h.log, err, "get appointment by ID")
		return
	}

	utils.ResponseSuccess(w, "success", appointment)
}

// CancelAppointment handles PUT /api/appointments/{id}/cancel (participant only)
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	appointmentID := chi.URLParam(r, "id")
	if appointmentID == "" {
		utils.ResponseBadRequest(w, "Appointment ID is required", nil)
		return
	}

	if err := h.service.CancelAppointment(r.Context(), userID.String(), appointmentID); err != nil {
		respondServiceError(w, h.log, err, "cancel appointment")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ActivateChat handles POST /api/appointments/{id}/activate-chat (doctor only)
func (h *AppointmentHandler) ActivateChat(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	appointmentID := chi.URLParam(r, "id")
	if appointmentID == "" {
		utils.ResponseBadRequest(w, "Appointment ID is required", nil)
		return
	}

	req := &request.ActivateChatRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	appointment, err := h.service.ActivateChat(r.Context(), doctorID.String(), appointmentID, req)
	if err != nil {
		respondServiceError(w, h.log, err, "activate chat")
		return
	}

	utils.ResponseSuccess(w, "success", appointment)
}

// ConfirmPayment handles POST /api/appointments/{id}/confirm-payment
func (h *AppointmentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "id")
	if appointmentID == "" {
		utils.ResponseBadRequest(w, "Appointment ID is required", nil)
		return
	}

	appointment, err := h.service.ConfirmPayment(r.Context(), appointmentID)
	if err != nil {
		respondServiceError(w, h.log, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "success", appointment)
}
