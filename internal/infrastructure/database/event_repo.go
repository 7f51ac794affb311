package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/infrastructure/database/sqlc_generated"
	"rsvpbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
	q    *sqlc_generated.Queries
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool, q: sqlc_generated.New(pool)}
}

func (r *EventRepository) Create(ctx context.Context, draft entities.EventDraft) (*entities.Event, error) {
	row, err := r.q.CreateEvent(ctx, sqlc_generated.CreateEventParams{
		Title:       draft.Title,
		Description: draft.Description,
		Date:        draft.Date,
		StartsAt:    timeToTimestamptz(draft.StartsAt),
		ImageRef:    optionalText(draft.ImageRef),
	})
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, domain.ErrDuplicateEvent
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	e := eventToDomain(row)
	return &e, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	row, err := r.q.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	e := eventToDomain(row)
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]entities.Event, error) {
	rows, err := r.q.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]entities.Event, len(rows))
	for i := range rows {
		out[i] = eventToDomain(rows[i])
	}
	return out, nil
}

func (r *EventRepository) AttachMessage(ctx context.Context, id int64, messageRef string) error {
	n, err := r.q.AttachEventMessage(ctx, sqlc_generated.AttachEventMessageParams{
		ID:         id,
		MessageRef: optionalText(messageRef),
	})
	if err != nil {
		return fmt.Errorf("attach event message: %w", err)
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		qtx := r.q.WithTx(tx)
		if err := qtx.DeleteParticipantsByEvent(ctx, id); err != nil {
			return fmt.Errorf("delete participants: %w", err)
		}
		n, err := qtx.DeleteEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		if n == 0 {
			return domain.ErrEventNotFound
		}
		return nil
	})
}
