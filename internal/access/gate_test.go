package access

import (
	"testing"
	"time"

	"clinic-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func appointmentAt(scheduledAt time.Time, status entity.AppointmentStatus, chatExpiresAt *time.Time) *entity.Appointment {
	return &entity.Appointment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: scheduledAt.Add(-24 * time.Hour),
			UpdatedAt: scheduledAt.Add(-24 * time.Hour),
		},
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		ScheduledAt:   scheduledAt,
		Status:        status,
		PaymentMethod: entity.PaymentMethodOnline,
		PaymentStatus: entity.PaymentStatusPaid,
		ChatExpiresAt: chatExpiresAt,
	}
}

func TestCanChat(t *testing.T) {
	gate := NewGate(DefaultVideoWindow)
	scheduled := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	expiry := scheduled.Add(7 * 24 * time.Hour)

	tests := []struct {
		name   string
		status entity.AppointmentStatus
		expiry *time.Time
		now    time.Time
		want   bool
	}{
		{"confirmed with open window", entity.AppointmentStatusConfirmed, &expiry, scheduled, true},
		{"completed with open window", entity.AppointmentStatusCompleted, &expiry, scheduled, true},
		{"scheduled never chats", entity.AppointmentStatusScheduled, &expiry, scheduled, false},
		{"cancelled never chats", entity.AppointmentStatusCancelled, &expiry, scheduled, false},
		{"no window granted", entity.AppointmentStatusConfirmed, nil, scheduled, false},
		{"one second before expiry", entity.AppointmentStatusConfirmed, &expiry, expiry.Add(-time.Second), true},
		{"exactly at expiry", entity.AppointmentStatusConfirmed, &expiry, expiry, false},
		{"one second past expiry", entity.AppointmentStatusConfirmed, &expiry, expiry.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := appointmentAt(scheduled, tt.status, tt.expiry)
			assert.Equal(t, tt.want, gate.CanChat(a, tt.now))
		})
	}
}

func TestCanChatNilAppointment(t *testing.T) {
	gate := NewGate(DefaultVideoWindow)
	assert.False(t, gate.CanChat(nil, time.Now()))
	assert.False(t, gate.CanVideoCall(nil, time.Now()))
}

func TestCanVideoCallWindow(t *testing.T) {
	gate := NewGate(DefaultVideoWindow)
	scheduled := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	expiry := scheduled.Add(7 * 24 * time.Hour)

	at := func(hour, minute int) time.Time {
		return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"55 minutes before", at(13, 5), true},
		{"55 minutes after", at(14, 55), true},
		{"exactly one hour before", at(13, 0), true},
		{"exactly one hour after", at(15, 0), true},
		{"two hours before", at(12, 0), false},
		{"just over an hour after", at(15, 1), false},
		{"way after", at(16, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := appointmentAt(scheduled, entity.AppointmentStatusConfirmed, &expiry)
			assert.Equal(t, tt.want, gate.CanVideoCall(a, tt.now))
		})
	}
}

func TestCanVideoCallRequiresChat(t *testing.T) {
	gate := NewGate(DefaultVideoWindow)
	scheduled := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)

	// In the video window but no chat window granted: video stays closed.
	a := appointmentAt(scheduled, entity.AppointmentStatusScheduled, nil)
	assert.False(t, gate.CanVideoCall(a, scheduled))

	// Cancelled appointment inside the window.
	expiry := scheduled.Add(7 * 24 * time.Hour)
	cancelled := appointmentAt(scheduled, entity.AppointmentStatusCancelled, &expiry)
	assert.False(t, gate.CanVideoCall(cancelled, scheduled))
}

func TestChatExpiry(t *testing.T) {
	from := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, from.Add(3*24*time.Hour), ChatExpiry(from, 3))
	assert.Equal(t, from.Add(7*24*time.Hour), ChatExpiry(from, 0), "zero days falls back to default")
	assert.Equal(t, from.Add(7*24*time.Hour), ChatExpiry(from, -1), "negative days falls back to default")
}

func TestNewGateDefaultsWindow(t *testing.T) {
	gate := NewGate(0)
	scheduled := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)
	expiry := scheduled.Add(7 * 24 * time.Hour)
	a := appointmentAt(scheduled, entity.AppointmentStatusConfirmed, &expiry)

	assert.True(t, gate.CanVideoCall(a, scheduled.Add(-time.Hour)))
	assert.False(t, gate.CanVideoCall(a, scheduled.Add(-time.Hour-time.Second)))
}
