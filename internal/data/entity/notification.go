package entity

import (
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "booking_created"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationChatActivated    NotificationType = "chat_activated"
	NotificationPaymentConfirmed NotificationType = "payment_confirmed"
)

type Notification struct {
	BaseSimple
	RecipientID uuid.UUID        `db:"recipient_id"`
	Type        NotificationType `db:"type"`
	Message     string           `db:"message"`
	IsRead      bool             `db:"is_read"`
}
