package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-booking/internal/data/entity"
	"clinic-booking/pkg/database"
	"clinic-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// pgUniqueViolation is the SQLSTATE raised when the partial unique index on
// (doctor_id, scheduled_at) rejects a second live booking for the same slot.
const pgUniqueViolation = "23505"

type AppointmentRepository interface {
	// Create inserts the appointment. The slot-exclusivity check and the
	// insert are a single atomic operation: a concurrent booking for the
	// same doctor and time loses with utils.ErrSlotConflict.
	Create(ctx context.Context, appointment *entity.Appointment) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, until time.Time) ([]*entity.Appointment, error)
	FindByPatientAndDoctor(ctx context.Context, patientID, doctorID uuid.UUID) ([]*entity.Appointment, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Appointment, error)
	CountByParticipant(ctx context.Context, userID uuid.UUID) (int64, error)

	// TransitionStatus moves the appointment to the target status only when
	// its current status is one of the allowed sources. Zero rows affected
	// means the appointment reached a terminal status in the meantime.
	TransitionStatus(ctx context.Context, id uuid.UUID, to entity.AppointmentStatus, from ...entity.AppointmentStatus) error

	// ActivateChat grants or extends the chat window and marks the visit
	// completed. The window never moves backwards. Cancelled appointments
	// are rejected.
	ActivateChat(ctx context.Context, id uuid.UUID, expiresAt time.Time) error

	// ConfirmPayment settles a cash booking: scheduled -> confirmed,
	// payment pending -> paid, chat window granted if not already present.
	ConfirmPayment(ctx context.Context, id uuid.UUID, chatExpiresAt time.Time) error
}

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

const appointmentColumns = `id, patient_id, doctor_id, scheduled_at, status, payment_method,
		       payment_status, chat_expires_at, fee, notes, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, scheduled_at, status, payment_method,
		                          payment_status, chat_expires_at, fee, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ScheduledAt,
		appointment.Status,
		appointment.PaymentMethod,
		appointment.PaymentStatus,
		appointment.ChatExpiresAt,
		appointment.Fee,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("doctor %s at %s: %w",
				appointment.DoctorID.String(),
				appointment.ScheduledAt.Format(time.RFC3339),
				utils.ErrSlotConflict)
		}
		r.log.Error("Failed to create appointment",
			zap.Error(err),
			zap.String("doctor_id", appointment.DoctorID.String()),
			zap.String("patient_id", appointment.PatientID.String()),
		)
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`

	appointment, err := r.scanRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return nil, fmt.Errorf("find appointment by ID %s: %w", id.String(), err)
	}

	return appointment, nil
}

func (r *appointmentRepository) FindByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, until time.Time) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE doctor_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at
	`

	rows, err := r.db.Query(ctx, query, doctorID, from, until)
	if err != nil {
		r.log.Error("Failed to find appointments by doctor",
			zap.Error(err),
			zap.String("doctor_id", doctorID.String()),
		)
		return nil, fmt.Errorf("find appointments for doctor %s: %w", doctorID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *appointmentRepository) FindByPatientAndDoctor(ctx context.Context, patientID, doctorID uuid.UUID) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE patient_id = $1 AND doctor_id = $2
		ORDER BY scheduled_at DESC
	`

	rows, err := r.db.Query(ctx, query, patientID, doctorID)
	if err != nil {
		r.log.Error("Failed to find appointments by patient and doctor",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
			zap.String("doctor_id", doctorID.String()),
		)
		return nil, fmt.Errorf("find appointments for patient %s and doctor %s: %w",
			patientID.String(), doctorID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *appointmentRepository) FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE patient_id = $1 OR doctor_id = $1
		ORDER BY scheduled_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find appointments by participant",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find appointments for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *appointmentRepository) CountByParticipant(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE patient_id = $1 OR doctor_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count appointments by participant",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count appointments for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *appointmentRepository) TransitionStatus(ctx context.Context, id uuid.UUID, to entity.AppointmentStatus, from ...entity.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	result, err := r.db.Exec(ctx, query, id, to, allowed)
	if err != nil {
		r.log.Error("Failed to transition appointment status",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("transition appointment %s to %s: %w", id.String(), string(to), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s: %w", id.String(), utils.ErrAlreadyTerminal)
	}

	return nil
}

func (r *appointmentRepository) ActivateChat(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	query := `
		UPDATE appointments
		SET status = $2,
		    chat_expires_at = GREATEST(COALESCE(chat_expires_at, $3), $3),
		    updated_at = NOW()
		WHERE id = $1 AND status <> $4
	`

	result, err := r.db.Exec(ctx, query, id,
		entity.AppointmentStatusCompleted, expiresAt, entity.AppointmentStatusCancelled)
	if err != nil {
		r.log.Error("Failed to activate chat",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return fmt.Errorf("activate chat for appointment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s: %w", id.String(), utils.ErrAlreadyTerminal)
	}

	return nil
}

func (r *appointmentRepository) ConfirmPayment(ctx context.Context, id uuid.UUID, chatExpiresAt time.Time) error {
	query := `
		UPDATE appointments
		SET status = $2,
		    payment_status = $3,
		    chat_expires_at = COALESCE(chat_expires_at, $4),
		    updated_at = NOW()
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.Exec(ctx, query, id,
		entity.AppointmentStatusConfirmed, entity.PaymentStatusPaid, chatExpiresAt,
		entity.AppointmentStatusScheduled)
	if err != nil {
		r.log.Error("Failed to confirm payment",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return fmt.Errorf("confirm payment for appointment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s: %w", id.String(), utils.ErrAlreadyTerminal)
	}

	return nil
}

func (r *appointmentRepository) scanRow(row pgx.Row) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.ScheduledAt,
		&appointment.Status,
		&appointment.PaymentMethod,
		&appointment.PaymentStatus,
		&appointment.ChatExpiresAt,
		&appointment.Fee,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) scanRows(rows pgx.Rows) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	for rows.Next() {
		appointment, err := r.scanRow(rows)
		if err != nil {
			r.log.Error("Failed to scan appointment row", zap.Error(err))
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}
