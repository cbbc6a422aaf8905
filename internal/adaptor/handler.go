package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Slot        *SlotHandler
	Appointment *AppointmentHandler
	Access      *AccessHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Slot:        NewSlotHandler(service.Slot, log),
		Appointment: NewAppointmentHandler(service.Booking, log),
		Access:      NewAccessHandler(service.Access, log),
	}
}

// respondServiceError maps typed service errors to HTTP responses. Every
// failure reaches the caller with a specific reason; nothing collapses into
// a generic error except genuinely unexpected ones.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, utils.ErrSlotConflict):
		log.Warn(operation+" failed - slot conflict", zap.Error(err))
		utils.ResponseConflict(w, "Slot already booked, please pick another from the current slot list")

	case errors.Is(err, utils.ErrInvalidSlot):
		log.Warn(operation+" failed - invalid slot", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, utils.ErrAlreadyTerminal):
		log.Warn(operation+" failed - terminal status", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, utils.ErrNotOwner):
		log.Warn(operation+" failed - not owner", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, utils.ErrDoctorNotApproved):
		log.Warn(operation+" failed - doctor not approved", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, utils.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
