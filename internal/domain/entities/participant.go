package entities

import (
	"time"

	"rsvpbot/internal/domain"
)

// Participant represents a user's current RSVP answer for an event.
type Participant struct {
	EventID   int64
	UserID    string
	Username  string
	Status    domain.Status
	UpdatedAt time.Time
}
