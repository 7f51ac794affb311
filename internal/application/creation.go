package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/domain/validation"
	"rsvpbot/internal/ports/input"
	"rsvpbot/internal/ports/output"
)

var _ input.CreationUseCase = (*CreationService)(nil)

// CreationService drives the event creation dialogue:
// title, description, date, time, optional image, publish.
type CreationService struct {
	sessions   *SessionStore
	events     input.EventUseCase
	authorizer output.Authorizer
	location   *time.Location
	now        func() time.Time
}

func NewCreationService(
	sessions *SessionStore,
	events input.EventUseCase,
	authorizer output.Authorizer,
	location *time.Location,
) *CreationService {
	return &CreationService{
		sessions:   sessions,
		events:     events,
		authorizer: authorizer,
		location:   location,
		now:        time.Now,
	}
}

func (s *CreationService) Active(userID, channelID string) bool {
	return s.sessions.Active(userID, channelID)
}

func (s *CreationService) SetSurface(userID, messageRef string) string {
	return s.sessions.SetSurface(userID, messageRef)
}

// Handle applies one input to the user's session. The returned error is
// reserved for unexpected failures; user-correctable problems are reported in
// Reply.Err.
func (s *CreationService) Handle(ctx context.Context, actor input.Actor, in intent.Intent) (input.Reply, error) {
	slot := s.sessions.lock(actor.UserID)
	defer s.sessions.release(ctx, actor.UserID, slot)

	switch in.(type) {
	case intent.StartCreation:
		return s.start(actor, slot), nil
	case intent.Cancel:
		return s.cancel(actor, slot), nil
	}

	sess := slot.session
	if sess == nil {
		return s.idle(ctx, actor, in), nil
	}
	if sess.ChannelID != actor.ChannelID {
		return input.Reply{Step: sess.Step}, nil
	}
	if _, ok := in.(intent.Ignore); ok {
		return input.Reply{Step: sess.Step}, nil
	}

	switch sess.Step {
	case entities.StepAwaitingTitle:
		return s.onTitle(sess, in), nil
	case entities.StepAwaitingDescription:
		return s.onDescription(sess, in), nil
	case entities.StepAwaitingDate:
		return s.onDate(sess, in), nil
	case entities.StepAwaitingTime:
		return s.onTime(sess, in), nil
	case entities.StepAwaitingCustomTime:
		return s.onCustomTime(sess, in), nil
	case entities.StepAwaitingImage:
		return s.onImage(ctx, slot, in)
	}
	return input.Reply{}, fmt.Errorf("session of user %s in unexpected step %q", actor.UserID, sess.Step)
}

func (s *CreationService) start(actor input.Actor, slot *sessionSlot) input.Reply {
	if !s.authorizer.Allowed(actor.UserID) {
		return input.Reply{Step: stepOf(slot.session), Err: domain.ErrAccessDenied}
	}
	reply := input.Reply{Step: entities.StepAwaitingTitle, Render: input.RenderTitlePrompt}
	if slot.session != nil {
		reply.ReplacedSurface = slot.session.SurfaceRef
	}
	slot.session = &entities.CreationSession{
		UserID:    actor.UserID,
		ChannelID: actor.ChannelID,
		Step:      entities.StepAwaitingTitle,
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    actor.UserID,
		"channel_id": actor.ChannelID,
	}).Info("📝 Event creation started")
	return reply
}

func (s *CreationService) cancel(actor input.Actor, slot *sessionSlot) input.Reply {
	if slot.session == nil {
		return input.Reply{Step: entities.StepIdle, Render: input.RenderNothingToCancel}
	}
	reply := input.Reply{
		Step:            entities.StepCancelled,
		Render:          input.RenderCancelled,
		ReplacedSurface: slot.session.SurfaceRef,
	}
	slot.session = nil
	logrus.WithField("user_id", actor.UserID).Info("🚫 Event creation cancelled")
	return reply
}

// idle answers input from a user without a session. A step marker left by a
// previous process means the session was lost in a restart. Free text stays
// unanswered so ordinary DMs are not treated as creation input.
func (s *CreationService) idle(ctx context.Context, actor input.Actor, in intent.Intent) input.Reply {
	step, err := s.sessions.steps.LoadStep(ctx, actor.UserID)
	if err != nil {
		logrus.WithField("user_id", actor.UserID).Warnf("⚠️ Failed to load session step: %v", err)
		step = entities.StepIdle
	}
	if !step.Terminal() {
		return input.Reply{Step: entities.StepIdle, Render: input.RenderSessionExpired}
	}
	switch in.(type) {
	case intent.Skip, intent.Image:
		return input.Reply{Step: entities.StepIdle, Err: domain.ErrNoActiveSession}
	}
	return input.Reply{Step: entities.StepIdle}
}

func (s *CreationService) onTitle(sess *entities.CreationSession, in intent.Intent) input.Reply {
	text, ok := in.(intent.Text)
	if !ok {
		return hint(sess)
	}
	title, err := validation.ValidateTitle(text.Value)
	if err != nil {
		return input.Reply{Step: sess.Step, Err: err}
	}
	sess.Title = title
	return advance(sess, entities.StepAwaitingDescription, input.RenderDescriptionPrompt)
}

func (s *CreationService) onDescription(sess *entities.CreationSession, in intent.Intent) input.Reply {
	text, ok := in.(intent.Text)
	if !ok {
		return hint(sess)
	}
	description, err := validation.ValidateDescription(text.Value)
	if err != nil {
		return input.Reply{Step: sess.Step, Err: err}
	}
	if _, err := validation.ValidateTitle(sess.Title); err != nil {
		return input.Reply{Step: sess.Step, Err: err}
	}
	sess.Description = description

	now := s.clock()
	sess.CalendarYear, sess.CalendarMonth = now.Year(), int(now.Month())
	return withCalendar(advance(sess, entities.StepAwaitingDate, input.RenderCalendar), sess)
}

func (s *CreationService) onDate(sess *entities.CreationSession, in intent.Intent) input.Reply {
	switch in := in.(type) {
	case intent.CalendarNav:
		year, month, err := domain.NavigateMonth(in.Direction, in.Year, in.Month)
		if err != nil {
			reply := withCalendar(rerender(sess, input.RenderCalendar), sess)
			reply.Err = err
			return reply
		}
		sess.CalendarYear, sess.CalendarMonth = year, month
		return withCalendar(rerender(sess, input.RenderCalendar), sess)

	case intent.PickDate:
		day := fmt.Sprintf("%02d.%02d.%04d", in.Day, in.Month, in.Year)
		// The day is selectable while its last minute is still ahead.
		if _, _, err := validation.ValidateDate(validation.CombineDateTime(day, "23:59"), s.clock()); err != nil {
			return input.Reply{Step: sess.Step, Err: err}
		}
		sess.Date = day
		return advance(sess, entities.StepAwaitingTime, input.RenderTimePicker)
	}
	return hint(sess)
}

func (s *CreationService) onTime(sess *entities.CreationSession, in intent.Intent) input.Reply {
	switch in := in.(type) {
	case intent.PickTime:
		if !domain.IsTimeSlot(in.Clock) {
			return input.Reply{Step: sess.Step, Err: domain.Invalid("time_slot", map[string]any{"Time": in.Clock})}
		}
		return s.setTime(sess, in.Clock)
	case intent.CustomTime:
		return advance(sess, entities.StepAwaitingCustomTime, input.RenderCustomTimePrompt)
	}
	return hint(sess)
}

func (s *CreationService) onCustomTime(sess *entities.CreationSession, in intent.Intent) input.Reply {
	text, ok := in.(intent.Text)
	if !ok {
		return hint(sess)
	}
	clock, err := validation.ParseClock(text.Value)
	if err != nil {
		return input.Reply{Step: sess.Step, Err: err}
	}
	return s.setTime(sess, clock)
}

func (s *CreationService) setTime(sess *entities.CreationSession, clock string) input.Reply {
	date, startsAt, err := validation.ValidateDate(validation.CombineDateTime(sess.Date, clock), s.clock())
	if err != nil {
		return input.Reply{Step: sess.Step, Err: err}
	}
	sess.Date = date
	sess.StartsAt = startsAt
	return advance(sess, entities.StepAwaitingImage, input.RenderImagePrompt)
}

func (s *CreationService) onImage(ctx context.Context, slot *sessionSlot, in intent.Intent) (input.Reply, error) {
	sess := slot.session
	switch in := in.(type) {
	case intent.Image:
		sess.ImageRef = in.Ref
	case intent.Skip:
		sess.ImageRef = ""
	default:
		return hint(sess), nil
	}

	event, err := s.events.Publish(ctx, sess.Draft())
	switch {
	case err == nil:
		reply := input.Reply{
			Step:            entities.StepCompleted,
			Render:          input.RenderPublished,
			Event:           event,
			ReplacedSurface: sess.SurfaceRef,
		}
		slot.session = nil
		return reply, nil
	case errors.Is(err, domain.ErrDuplicateEvent):
		reply := input.Reply{Step: entities.StepIdle, Err: err, ReplacedSurface: sess.SurfaceRef}
		slot.session = nil
		return reply, nil
	case errors.Is(err, domain.ErrPublishFailure), errors.Is(err, domain.ErrInvalidInput):
		return input.Reply{Step: sess.Step, Err: err}, nil
	}
	return input.Reply{}, fmt.Errorf("publish event: %w", err)
}

func (s *CreationService) clock() time.Time {
	return s.now().In(s.location)
}

// advance moves sess to step; the currently shown surface is handed back for
// removal.
func advance(sess *entities.CreationSession, step entities.Step, render input.Render) input.Reply {
	sess.Step = step
	return rerender(sess, render)
}

func rerender(sess *entities.CreationSession, render input.Render) input.Reply {
	reply := input.Reply{Step: sess.Step, Render: render, ReplacedSurface: sess.SurfaceRef}
	sess.SurfaceRef = ""
	return reply
}

func withCalendar(reply input.Reply, sess *entities.CreationSession) input.Reply {
	reply.CalendarYear = sess.CalendarYear
	reply.CalendarMonth = sess.CalendarMonth
	return reply
}

func hint(sess *entities.CreationSession) input.Reply {
	return input.Reply{Step: sess.Step, Err: domain.Invalid("hint_"+string(sess.Step), nil)}
}

func stepOf(sess *entities.CreationSession) entities.Step {
	if sess == nil {
		return entities.StepIdle
	}
	return sess.Step
}
