package response

import (
	"time"

	"clinic-booking/internal/access"
	"clinic-booking/internal/data/entity"
)

type SlotResponse struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

type DaySlotsResponse struct {
	DoctorID string         `json:"doctor_id"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

type AppointmentResponse struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patient_id"`
	DoctorID      string     `json:"doctor_id"`
	ScheduledAt   time.Time  `json:"scheduled_at"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	PaymentStatus string     `json:"payment_status"`
	ChatExpiresAt *time.Time `json:"chat_expires_at,omitempty"`
	Fee           float64    `json:"fee"`
	Notes         string     `json:"notes,omitempty"`
	CanChat       bool       `json:"can_chat"`
	CanVideoCall  bool       `json:"can_video_call"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ChatAccessResponse struct {
	CanChat bool `json:"can_chat"`
}

type VideoAccessResponse struct {
	CanVideoCall bool `json:"can_video_call"`
}

// AppointmentToResponse renders an appointment with its privilege flags
// evaluated at the given instant. The flags are never stored; they are
// recomputed on every render because they change with wall-clock time.
func AppointmentToResponse(a *entity.Appointment, gate access.Gate, now time.Time) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID.String(),
		PatientID:     a.PatientID.String(),
		DoctorID:      a.DoctorID.String(),
		ScheduledAt:   a.ScheduledAt,
		Status:        string(a.Status),
		PaymentMethod: string(a.PaymentMethod),
		PaymentStatus: string(a.PaymentStatus),
		ChatExpiresAt: a.ChatExpiresAt,
		Fee:           a.Fee,
		Notes:         a.Notes,
		CanChat:       gate.CanChat(a, now),
		CanVideoCall:  gate.CanVideoCall(a, now),
		CreatedAt:     a.CreatedAt,
	}
}
