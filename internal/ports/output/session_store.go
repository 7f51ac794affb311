package output

import (
	"context"

	"rsvpbot/internal/domain/entities"
)

// StepStore persists the current creation step of a user outside the process
// so a restart can tell the user their session was lost.
type StepStore interface {
	SaveStep(ctx context.Context, userID string, step entities.Step) error
	// LoadStep returns entities.StepIdle when nothing is stored.
	LoadStep(ctx context.Context, userID string) (entities.Step, error)
	ClearStep(ctx context.Context, userID string) error
}

// Authorizer is the allow-list gate for creating and deleting events.
type Authorizer interface {
	Allowed(userID string) bool
}
