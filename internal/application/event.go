package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/domain/validation"
	"rsvpbot/internal/ports/input"
	"rsvpbot/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	publisher       output.Publisher
	authorizer      output.Authorizer
	display         DisplayScheduler
	location        *time.Location
	now             func() time.Time
}

func NewEventService(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	publisher output.Publisher,
	authorizer output.Authorizer,
	display DisplayScheduler,
	location *time.Location,
) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		publisher:       publisher,
		authorizer:      authorizer,
		display:         display,
		location:        location,
		now:             time.Now,
	}
}

// Publish stores the draft, broadcasts it and links the broadcast message to
// the stored event. A failed broadcast removes the stored row again.
func (s *EventService) Publish(ctx context.Context, draft entities.EventDraft) (*entities.Event, error) {
	draft, err := s.revalidate(draft)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"event_id": event.ID, "title": event.Title})

	ref, err := s.publisher.Publish(ctx, event)
	if err != nil {
		s.rollback(ctx, event.ID)
		log.Errorf("❌ Failed to publish event: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPublishFailure, err)
	}

	if err := s.eventRepo.AttachMessage(ctx, event.ID, ref); err != nil {
		if uerr := s.publisher.Unpublish(context.WithoutCancel(ctx), ref); uerr != nil {
			log.Warnf("⚠️ Failed to remove orphaned broadcast message: %v", uerr)
		}
		s.rollback(ctx, event.ID)
		return nil, fmt.Errorf("attach message: %w", err)
	}
	event.MessageRef = ref

	log.Info("✅ Event published")
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]entities.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *EventService) ViewEvent(ctx context.Context, actorID string, id int64) (*input.EventView, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.FindByEventIDAndStatus(ctx, id, domain.StatusJoining)
	if err != nil {
		return nil, fmt.Errorf("find joining participants: %w", err)
	}
	joining := make([]string, 0, len(participants))
	for _, p := range participants {
		joining = append(joining, p.Username)
	}
	return &input.EventView{
		Event:     *event,
		Joining:   joining,
		CanDelete: s.authorizer.Allowed(actorID),
	}, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, actorID string, id int64) error {
	if !s.authorizer.Allowed(actorID) {
		return domain.ErrAccessDenied
	}
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{"event_id": id, "user_id": actorID})

	if event.IsPublished() {
		if err := s.publisher.Unpublish(ctx, event.MessageRef); err != nil {
			log.Warnf("⚠️ Failed to delete broadcast message: %v", err)
		}
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.display.Forget(id)

	log.Info("🗑️ Event deleted")
	return nil
}

// revalidate guards against a draft that went stale while the user was
// choosing an image.
func (s *EventService) revalidate(draft entities.EventDraft) (entities.EventDraft, error) {
	title, err := validation.ValidateTitle(draft.Title)
	if err != nil {
		return draft, err
	}
	description, err := validation.ValidateDescription(draft.Description)
	if err != nil {
		return draft, err
	}
	date, startsAt, err := validation.ValidateDate(draft.Date, s.now().In(s.location))
	if err != nil {
		return draft, err
	}
	draft.Title = title
	draft.Description = description
	draft.Date = date
	draft.StartsAt = startsAt
	return draft, nil
}

func (s *EventService) rollback(ctx context.Context, id int64) {
	err := s.eventRepo.Delete(context.WithoutCancel(ctx), id)
	if err != nil && !errors.Is(err, domain.ErrEventNotFound) {
		logrus.WithField("event_id", id).Errorf("❌ Failed to roll back unpublished event: %v", err)
	}
}
