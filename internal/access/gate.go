// Package access computes the time-windowed chat and video-call privileges
// for an appointment. All decisions are pure functions of the appointment
// fields and the supplied instant; nothing here is cached or persisted.
package access

import (
	"time"

	"clinic-booking/internal/data/entity"
)

const (
	// DefaultChatExpiryDays is the chat window granted on online payment
	// or doctor activation, unless the doctor chooses another length.
	DefaultChatExpiryDays = 7

	// DefaultVideoWindow bounds video calls to scheduled_at ± this duration.
	DefaultVideoWindow = time.Hour
)

type Gate struct {
	videoWindow time.Duration
}

func NewGate(videoWindow time.Duration) Gate {
	if videoWindow <= 0 {
		videoWindow = DefaultVideoWindow
	}
	return Gate{videoWindow: videoWindow}
}

// CanChat reports whether the patient may send messages for this
// appointment at the given instant. Chat requires an unexpired chat window
// and a confirmed or completed appointment.
func (g Gate) CanChat(a *entity.Appointment, now time.Time) bool {
	if a == nil || a.ChatExpiresAt == nil {
		return false
	}
	if a.Status != entity.AppointmentStatusConfirmed && a.Status != entity.AppointmentStatusCompleted {
		return false
	}
	return now.Before(*a.ChatExpiresAt)
}

// CanVideoCall reports whether a live video call is permitted at the given
// instant. Video is a strict subset of chat, additionally bounded to the
// window around the scheduled visit.
func (g Gate) CanVideoCall(a *entity.Appointment, now time.Time) bool {
	if a == nil || a.Status == entity.AppointmentStatusCancelled {
		return false
	}
	if !g.CanChat(a, now) {
		return false
	}
	from := a.ScheduledAt.Add(-g.videoWindow)
	until := a.ScheduledAt.Add(g.videoWindow)
	return !now.Before(from) && !now.After(until)
}

// ChatExpiry computes a chat window end relative to the given instant.
// Zero or negative days fall back to the default window.
func ChatExpiry(from time.Time, days int) time.Time {
	if days <= 0 {
		days = DefaultChatExpiryDays
	}
	return from.Add(time.Duration(days) * 24 * time.Hour)
}
