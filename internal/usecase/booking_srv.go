package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-booking/internal/access"
	"clinic-booking/internal/data/entity"
	"clinic-booking/internal/data/repository"
	"clinic-booking/internal/dto/request"
	"clinic-booking/internal/dto/response"
	"clinic-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Patient-facing
	Book(ctx context.Context, patientID string, req *request.BookAppointmentRequest) (*response.AppointmentResponse, error)
	GetUserAppointments(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AppointmentResponse], error)
	GetAppointmentByID(ctx context.Context, callerID string, appointmentID string) (*response.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, actorID string, appointmentID string) error

	// Doctor-facing
	ActivateChat(ctx context.Context, doctorID string, appointmentID string, req *request.ActivateChatRequest) (*response.AppointmentResponse, error)

	// External payment step
	ConfirmPayment(ctx context.Context, appointmentID string) (*response.AppointmentResponse, error)
}

type bookingService struct {
	repo           *repository.Repository
	gate           access.Gate
	clock          access.Clock
	grid           slotGrid
	chatExpiryDays int
	log            *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, clock access.Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:           repo,
		gate:           access.NewGate(config.Access.VideoWindow()),
		clock:          clock,
		grid:           newSlotGrid(config.Schedule),
		chatExpiryDays: config.Access.ChatExpiryDays,
		log:            log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Book(ctx context.Context, patientID string, req *request.BookAppointmentRequest) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	patientUUID, err := uuid.Parse(patientID)
	if err != nil {
		return nil, fmt.Errorf("invalid patient ID format %s: %w", patientID, err)
	}

	doctorUUID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("invalid doctor ID format %s: %w", req.DoctorID, err)
	}

	// Directory checks
	doctor, err := s.repo.Doctor.FindByID(ctx, doctorUUID)
	if err != nil {
		return nil, fmt.Errorf("look up doctor %s: %w", req.DoctorID, err)
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor %s: %w", req.DoctorID, utils.ErrNotFound)
	}
	if !doctor.Approved {
		return nil, fmt.Errorf("doctor %s: %w", req.DoctorID, utils.ErrDoctorNotApproved)
	}

	patient, err := s.repo.Patient.FindByID(ctx, patientUUID)
	if err != nil {
		return nil, fmt.Errorf("look up patient %s: %w", patientID, err)
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %s: %w", patientID, utils.ErrNotFound)
	}

	scheduledAt, err := combineDateAndSlot(req.Date, req.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("parse requested slot: %w", err)
	}

	if !s.grid.Contains(scheduledAt) {
		return nil, fmt.Errorf("%s %s: %w", req.Date, req.TimeSlot, utils.ErrInvalidSlot)
	}

	now := s.clock.Now()

	// Online payment is already settled, so the booking starts confirmed
	// and the chat window opens immediately. Cash stays pending until the
	// clinic visit; chat opens only on doctor activation.
	appointment := &entity.Appointment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:     patientUUID,
		DoctorID:      doctorUUID,
		ScheduledAt:   scheduledAt,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		Fee:           doctor.ConsultationFee,
		Notes:         req.Notes,
	}

	if appointment.PaymentMethod == entity.PaymentMethodOnline {
		appointment.Status = entity.AppointmentStatusConfirmed
		appointment.PaymentStatus = entity.PaymentStatusPaid
		expiry := access.ChatExpiry(now, s.chatExpiryDays)
		appointment.ChatExpiresAt = &expiry
	} else {
		appointment.Status = entity.AppointmentStatusScheduled
		appointment.PaymentStatus = entity.PaymentStatusPending
	}

	// Atomic check-and-reserve: a concurrent booking for the same slot
	// surfaces as ErrSlotConflict and is reported to the caller, never
	// retried here.
	if err := s.repo.Appointment.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.log.Info("Appointment booked",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("patient_id", patientID),
		zap.String("doctor_id", req.DoctorID),
		zap.Time("scheduled_at", scheduledAt),
		zap.String("payment_method", req.PaymentMethod),
		zap.String("status", string(appointment.Status)),
	)

	s.notify(ctx, doctorUUID, entity.NotificationBookingCreated,
		fmt.Sprintf("New appointment with %s on %s", patient.FullName, scheduledAt.Format("2006-01-02 15:04")))
	s.recordActivity(ctx, patientUUID, "appointment.booked", appointment.ID)

	resp := response.AppointmentToResponse(appointment, s.gate, now)
	return &resp, nil
}

func (s *bookingService) GetUserAppointments(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AppointmentResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	appointments, err := s.repo.Appointment.FindByParticipant(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user appointments",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get appointments for user %s: %w", userID, err)
	}

	total, err := s.repo.Appointment.CountByParticipant(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user appointments", zap.Error(err))
		return nil, fmt.Errorf("count appointments for user %s: %w", userID, err)
	}

	now := s.clock.Now()
	responses := make([]response.AppointmentResponse, len(appointments))
	for i, a := range appointments {
		responses[i] = response.AppointmentToResponse(a, s.gate, now)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetAppointmentByID(ctx context.Context, callerID string, appointmentID string) (*response.AppointmentResponse, error) {
	callerUUID, err := uuid.Parse(callerID)
	if err != nil {
		return nil, fmt.Errorf("invalid caller ID format %s: %w", callerID, err)
	}

	appointment, err := s.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.PatientID != callerUUID && appointment.DoctorID != callerUUID {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, utils.ErrUnauthorized)
	}

	resp := response.AppointmentToResponse(appointment, s.gate, s.clock.Now())
	return &resp, nil
}

func (s *bookingService) CancelAppointment(ctx context.Context, actorID string, appointmentID string) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return fmt.Errorf("invalid actor ID format %s: %w", actorID, err)
	}

	appointment, err := s.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if appointment.PatientID != actorUUID && appointment.DoctorID != actorUUID {
		return fmt.Errorf("appointment %s: %w", appointmentID, utils.ErrUnauthorized)
	}

	if appointment.IsTerminal() {
		return fmt.Errorf("appointment %s: %w", appointmentID, utils.ErrAlreadyTerminal)
	}

	// The guarded update frees the slot atomically with the status write;
	// a racing transition loses and reports ErrAlreadyTerminal.
	err = s.repo.Appointment.TransitionStatus(ctx, appointment.ID, entity.AppointmentStatusCancelled,
		entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed)
	if err != nil {
		return err
	}

	s.log.Info("Appointment cancelled",
		zap.String("appointment_id", appointmentID),
		zap.String("actor_id", actorID),
	)

	recipient := appointment.DoctorID
	if actorUUID == appointment.DoctorID {
		recipient = appointment.PatientID
	}
	s.notify(ctx, recipient, entity.NotificationBookingCancelled,
		fmt.Sprintf("Appointment on %s was cancelled", appointment.ScheduledAt.Format("2006-01-02 15:04")))
	s.recordActivity(ctx, actorUUID, "appointment.cancelled", appointment.ID)

	return nil
}

func (s *bookingService) ActivateChat(ctx context.Context, doctorID string, appointmentID string, req *request.ActivateChatRequest) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Activate chat validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	doctorUUID, err := uuid.Parse(doctorID)
	if err != nil {
		return nil, fmt.Errorf("invalid doctor ID format %s: %w", doctorID, err)
	}

	appointment, err := s.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.DoctorID != doctorUUID {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, utils.ErrNotOwner)
	}

	if appointment.Status == entity.AppointmentStatusCancelled {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, utils.ErrAlreadyTerminal)
	}

	now := s.clock.Now()
	days := req.ExpiryDays
	if days <= 0 {
		days = s.chatExpiryDays
	}
	expiry := access.ChatExpiry(now, days)

	// Activation marks the clinical visit completed. A completed
	// appointment may be activated again: the doctor can always extend
	// the chat window, it just never moves backwards.
	if err := s.repo.Appointment.ActivateChat(ctx, appointment.ID, expiry); err != nil {
		return nil, err
	}

	updated, err := s.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Chat activated",
		zap.String("appointment_id", appointmentID),
		zap.String("doctor_id", doctorID),
		zap.Int("expiry_days", days),
		zap.Time("chat_expires_at", expiry),
	)

	s.notify(ctx, appointment.PatientID, entity.NotificationChatActivated,
		fmt.Sprintf("Chat with your doctor is now open until %s", expiry.Format("2006-01-02 15:04")))
	s.recordActivity(ctx, doctorUUID, "appointment.chat_activated", appointment.ID)

	resp := response.AppointmentToResponse(updated, s.gate, now)
	return &resp, nil
}

func (s *bookingService) ConfirmPayment(ctx context.Context, appointmentID string) (*response.AppointmentResponse, error) {
	appointment, err := s.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.Status != entity.AppointmentStatusScheduled {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, utils.ErrAlreadyTerminal)
	}

	now := s.clock.Now()
	err = s.repo.Appointment.ConfirmPayment(ctx, appointment.ID, access.ChatExpiry(now, s.chatExpiryDays))
	if err != nil {
		return nil, err
	}

	updated, err := s.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Payment confirmed",
		zap.String("appointment_id", appointmentID),
	)

	s.notify(ctx, appointment.PatientID, entity.NotificationPaymentConfirmed,
		fmt.Sprintf("Payment received for your appointment on %s", appointment.ScheduledAt.Format("2006-01-02 15:04")))
	s.recordActivity(ctx, appointment.PatientID, "appointment.payment_confirmed", appointment.ID)

	resp := response.AppointmentToResponse(updated, s.gate, now)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findAppointment(ctx context.Context, appointmentID string) (*entity.Appointment, error) {
	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find appointment %s: %w", appointmentID, err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, utils.ErrNotFound)
	}

	return appointment, nil
}

// notify records the event for the external notification pipeline.
// Failures are logged and never fail the triggering operation.
func (s *bookingService) notify(ctx context.Context, recipient uuid.UUID, typ entity.NotificationType, message string) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.clock.Now(),
		},
		RecipientID: recipient,
		Type:        typ,
		Message:     message,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.log.Warn("Failed to emit notification",
			zap.Error(err),
			zap.String("recipient_id", recipient.String()),
			zap.String("type", string(typ)),
		)
	}
}

func (s *bookingService) recordActivity(ctx context.Context, actor uuid.UUID, action string, entityID uuid.UUID) {
	entry := &entity.ActivityLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.clock.Now(),
		},
		ActorID:    actor,
		Action:     action,
		EntityType: "appointment",
		EntityID:   entityID,
	}

	if err := s.repo.ActivityLog.Create(ctx, entry); err != nil {
		s.log.Warn("Failed to record activity",
			zap.Error(err),
			zap.String("actor_id", actor.String()),
			zap.String("action", action),
		)
	}
}

func combineDateAndSlot(date, timeSlot string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", fmt.Sprintf("%s %s", date, timeSlot))
}
