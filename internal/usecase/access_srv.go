package usecase

import (
	"context"

	"clinic-booking/internal/access"
	"clinic-booking/internal/data/repository"
	"clinic-booking/internal/dto/response"
	"clinic-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccessService answers privilege checks for the messaging and video
// surfaces. Checks always succeed and default to false: a failed lookup
// denies access, it never errors out a message send.
type AccessService interface {
	CheckChatAccess(ctx context.Context, patientID, doctorID string) *response.ChatAccessResponse
	CheckVideoAccess(ctx context.Context, appointmentID string) *response.VideoAccessResponse
}

type accessService struct {
	repo  *repository.Repository
	gate  access.Gate
	clock access.Clock
	log   *zap.Logger
}

func NewAccessService(repo *repository.Repository, config *utils.Config, clock access.Clock, log *zap.Logger) AccessService {
	return &accessService{
		repo:  repo,
		gate:  access.NewGate(config.Access.VideoWindow()),
		clock: clock,
		log:   log.With(zap.String("service", "access")),
	}
}

func (s *accessService) CheckChatAccess(ctx context.Context, patientID, doctorID string) *response.ChatAccessResponse {
	denied := &response.ChatAccessResponse{CanChat: false}

	patientUUID, err := uuid.Parse(patientID)
	if err != nil {
		return denied
	}
	doctorUUID, err := uuid.Parse(doctorID)
	if err != nil {
		return denied
	}

	// A patient may hold several historical appointments with the same
	// doctor; chat stays open as long as any one of them grants it.
	appointments, err := s.repo.Appointment.FindByPatientAndDoctor(ctx, patientUUID, doctorUUID)
	if err != nil {
		s.log.Error("Chat access check failed, denying",
			zap.Error(err),
			zap.String("patient_id", patientID),
			zap.String("doctor_id", doctorID),
		)
		return denied
	}

	now := s.clock.Now()
	for _, a := range appointments {
		if s.gate.CanChat(a, now) {
			return &response.ChatAccessResponse{CanChat: true}
		}
	}

	return denied
}

func (s *accessService) CheckVideoAccess(ctx context.Context, appointmentID string) *response.VideoAccessResponse {
	denied := &response.VideoAccessResponse{CanVideoCall: false}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return denied
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Video access check failed, denying",
			zap.Error(err),
			zap.String("appointment_id", appointmentID),
		)
		return denied
	}
	if appointment == nil {
		return denied
	}

	return &response.VideoAccessResponse{
		CanVideoCall: s.gate.CanVideoCall(appointment, s.clock.Now()),
	}
}
