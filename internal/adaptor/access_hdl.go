package adaptor

import (
	"net/http"

	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AccessHandler struct {
	service usecase.AccessService
	log     *zap.Logger
}

func NewAccessHandler(service usecase.AccessService, log *zap.Logger) *AccessHandler {
	return &AccessHandler{
		service: service,
		log:     log.With(zap.String("handler", "access")),
	}
}

// CheckChatAccess handles GET /api/access/chat?doctor_id=... (patient session).
// The messaging service calls this before permitting a message send.
func (h *AccessHandler) CheckChatAccess(w http.ResponseWriter, r *http.Request) {
	patientID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	doctorID := r.URL.Query().Get("doctor_id")
	if doctorID == "" {
		utils.ResponseBadRequest(w, "doctor_id query parameter is required", nil)
		return
	}

	result := h.service.CheckChatAccess(r.Context(), patientID.String(), doctorID)
	utils.ResponseSuccess(w, "success", result)
}

// CheckVideoAccess handles GET /api/access/video/{id}
func (h *AccessHandler) CheckVideoAccess(w http.ResponseWriter, r *http.Request) {
	appointmentID := chi.URLParam(r, "id")
	if appointmentID == "" {
		utils.ResponseBadRequest(w, "Appointment ID is required", nil)
		return
	}

	result := h.service.CheckVideoAccess(r.Context(), appointmentID)
	utils.ResponseSuccess(w, "success", result)
}
