package wire

import (
	"clinic-booking/internal/adaptor"
	"clinic-booking/internal/data/repository"
	"clinic-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccess(
	r chi.Router,
	accessHandler *adaptor.AccessHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/access/chat?doctor_id= - consumed by the messaging service
		r.Get("/api/access/chat", accessHandler.CheckChatAccess)

		// GET /api/access/video/{id} - live consultation window check
		r.Get("/api/access/video/{id}", accessHandler.CheckVideoAccess)
	})
}
