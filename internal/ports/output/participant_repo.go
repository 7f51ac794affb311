package output

import (
	"context"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
)

type ParticipantRepository interface {
	// Upsert inserts or replaces the (event, user) answer; domain.ErrEventNotFound
	// when the event does not exist.
	Upsert(ctx context.Context, participant *entities.Participant) error
	// FindByEventIDAndUserID returns domain.ErrParticipantNotFound when the user
	// never answered.
	FindByEventIDAndUserID(ctx context.Context, eventID int64, userID string) (*entities.Participant, error)
	FindByEventIDAndStatus(ctx context.Context, eventID int64, status domain.Status) ([]entities.Participant, error)
	CountByStatus(ctx context.Context, eventID int64) (domain.Counts, error)
}
