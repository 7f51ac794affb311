package input

import (
	"context"

	"rsvpbot/internal/domain"
)

// ToggleResult describes the outcome of an RSVP button press.
type ToggleResult struct {
	Changed  bool
	Notable  bool
	Previous domain.Status // "" when the user had no answer
	Current  domain.Status
	Counts   domain.Counts
}

type ParticipantUseCase interface {
	ToggleParticipation(ctx context.Context, eventID int64, userID, username string, requested domain.Status) (ToggleResult, error)
}
