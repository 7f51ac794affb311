package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/ports/input"
	"rsvpbot/internal/ports/output"
)

var _ input.ParticipantUseCase = (*ParticipantService)(nil)

type ParticipantService struct {
	participantRepo output.ParticipantRepository
	eventRepo       output.EventRepository
	display         DisplayScheduler
	now             func() time.Time
}

func NewParticipantService(
	participantRepo output.ParticipantRepository,
	eventRepo output.EventRepository,
	display DisplayScheduler,
) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		display:         display,
		now:             time.Now,
	}
}

// ToggleParticipation records the user's answer. Repeating the current answer
// and declining without ever having answered are no-ops.
func (s *ParticipantService) ToggleParticipation(
	ctx context.Context,
	eventID int64,
	userID, username string,
	requested domain.Status,
) (input.ToggleResult, error) {
	if !requested.Valid() {
		return input.ToggleResult{}, domain.Invalid("status", map[string]any{"Status": string(requested)})
	}
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return input.ToggleResult{}, err
	}

	var previous domain.Status
	existing, err := s.participantRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	switch {
	case err == nil:
		previous = existing.Status
	case errors.Is(err, domain.ErrParticipantNotFound):
	default:
		return input.ToggleResult{}, fmt.Errorf("find participant: %w", err)
	}

	result := input.ToggleResult{Previous: previous, Current: previous}
	if previous == requested || (previous == "" && requested == domain.StatusDeclining) {
		return result, nil
	}

	participant := &entities.Participant{
		EventID:   eventID,
		UserID:    userID,
		Username:  username,
		Status:    requested,
		UpdatedAt: s.now(),
	}
	if err := s.participantRepo.Upsert(ctx, participant); err != nil {
		return input.ToggleResult{}, err
	}

	counts, err := s.participantRepo.CountByStatus(ctx, eventID)
	if err != nil {
		return input.ToggleResult{}, fmt.Errorf("count participants: %w", err)
	}

	result.Changed = true
	result.Current = requested
	result.Counts = counts
	result.Notable = notable(previous, requested)

	logrus.WithFields(logrus.Fields{
		"event_id": eventID,
		"user_id":  userID,
		"from":     previous,
		"to":       requested,
	}).Info("✅ RSVP updated")

	if event.IsPublished() {
		s.display.ScheduleUpdate(ctx, eventID, counts, event.MessageRef)
	}
	return result, nil
}

func notable(previous, current domain.Status) bool {
	switch {
	case previous == "" && current == domain.StatusJoining:
		return true
	case previous == domain.StatusJoining && current == domain.StatusDeclining:
		return true
	case previous == domain.StatusDeclining && current == domain.StatusJoining:
		return true
	}
	return false
}
