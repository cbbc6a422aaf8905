package wire

import (
	"clinic-booking/internal/adaptor"
	"clinic-booking/internal/data/entity"
	"clinic-booking/internal/data/repository"
	"clinic-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAppointment(
	r chi.Router,
	appointmentHandler *adaptor.AppointmentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// Patient booking surface
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RolePatient, log))
			r.Post("/api/appointments", appointmentHandler.Book)
		})

		// Doctor-only: activating chat marks the visit completed
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleDoctor, log))
			r.Post("/api/appointments/{id}/activate-chat", appointmentHandler.ActivateChat)
		})

		// Either participant
		r.Get("/api/appointments", appointmentHandler.GetUserAppointments)
		r.Get("/api/appointments/{id}", appointmentHandler.GetAppointmentByID)
		r.Put("/api/appointments/{id}/cancel", appointmentHandler.CancelAppointment)

		// Called by the external payment step after settlement
		r.Post("/api/appointments/{id}/confirm-payment", appointmentHandler.ConfirmPayment)
	})
}
