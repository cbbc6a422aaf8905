package usecase

import (
	"clinic-booking/internal/access"
	"clinic-booking/internal/data/repository"
	"clinic-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Slot    SlotService
	Booking BookingService
	Access  AccessService
}

func NewService(repo *repository.Repository, config *utils.Config, clock access.Clock, log *zap.Logger) *Service {
	return &Service{
		Slot:    NewSlotService(repo, config.Schedule, log),
		Booking: NewBookingService(repo, config, clock, log),
		Access:  NewAccessService(repo, config, clock, log),
	}
}
