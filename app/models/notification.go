package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity defines the possible notification levels.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is an ephemeral user-facing status message.
type Notification struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotification builds a notification with a fresh ID and timestamp.
func NewNotification(severity Severity, message string) Notification {
	return Notification{
		ID:        uuid.New().String(),
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
