package wire

import (
	"clinic-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSlot(r chi.Router, slotHandler *adaptor.SlotHandler) {
	// GET /api/doctors/{id}/slots - slot availability is public; a stale
	// read just surfaces as a conflict on the booking attempt.
	r.Get("/api/doctors/{id}/slots", slotHandler.ListAvailableSlots)
}
