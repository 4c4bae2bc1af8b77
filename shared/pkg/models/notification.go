package models

import (
	"time"

	"github.com/google/uuid"
)

const EventNotificationRequested = "notification.requested"

type NotificationPayload struct {
	Destination string `json:"destination"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

func NewNotificationEvent(destination, subject, message string) Event[NotificationPayload] {
	return Event[NotificationPayload]{
		ID:      uuid.NewString(),
		Type:    EventNotificationRequested,
		Version: 1,
		Time:    time.Now(),
		Payload: NotificationPayload{
			Destination: destination,
			Subject:     subject,
			Message:     message,
		},
	}
}
