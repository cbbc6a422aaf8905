package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type Appointment struct {
	Base
	PatientID     uuid.UUID         `db:"patient_id"`
	DoctorID      uuid.UUID         `db:"doctor_id"`
	ScheduledAt   time.Time         `db:"scheduled_at"`
	Status        AppointmentStatus `db:"status"`
	PaymentMethod PaymentMethod     `db:"payment_method"`
	PaymentStatus PaymentStatus     `db:"payment_status"`
	ChatExpiresAt *time.Time        `db:"chat_expires_at"`
	Fee           float64           `db:"fee"`
	Notes         string            `db:"notes"`
}

// IsTerminal reports whether the appointment status permits no further
// status transitions.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// HoldsSlot reports whether the appointment still occupies its time slot.
// Cancelled appointments release the slot.
func (a *Appointment) HoldsSlot() bool {
	return a.Status != AppointmentStatusCancelled
}
