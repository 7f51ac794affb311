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

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

type ParticipantRepository struct {
	q *sqlc_generated.Queries
}

func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{q: sqlc_generated.New(pool)}
}

func (r *ParticipantRepository) Upsert(ctx context.Context, participant *entities.Participant) error {
	err := r.q.UpsertParticipant(ctx, sqlc_generated.UpsertParticipantParams{
		EventID:   participant.EventID,
		UserID:    participant.UserID,
		Username:  participant.Username,
		Status:    string(participant.Status),
		UpdatedAt: timeToTimestamptz(participant.UpdatedAt),
	})
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("upsert participant: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) FindByEventIDAndUserID(ctx context.Context, eventID int64, userID string) (*entities.Participant, error) {
	row, err := r.q.GetParticipant(ctx, sqlc_generated.GetParticipantParams{EventID: eventID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	p := participantToDomain(row)
	return &p, nil
}

func (r *ParticipantRepository) FindByEventIDAndStatus(ctx context.Context, eventID int64, status domain.Status) ([]entities.Participant, error) {
	rows, err := r.q.ListParticipantsByStatus(ctx, sqlc_generated.ListParticipantsByStatusParams{
		EventID: eventID,
		Status:  string(status),
	})
	if err != nil {
		return nil, fmt.Errorf("list participants by status: %w", err)
	}
	out := make([]entities.Participant, len(rows))
	for i := range rows {
		out[i] = participantToDomain(rows[i])
	}
	return out, nil
}

func (r *ParticipantRepository) CountByStatus(ctx context.Context, eventID int64) (domain.Counts, error) {
	rows, err := r.q.CountParticipantsByStatus(ctx, eventID)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("count participants by status: %w", err)
	}
	var counts domain.Counts
	for _, row := range rows {
		switch domain.Status(row.Status) {
		case domain.StatusJoining:
			counts.Joining = int(row.Total)
		case domain.StatusDeclining:
			counts.Declining = int(row.Total)
		}
	}
	return counts, nil
}
