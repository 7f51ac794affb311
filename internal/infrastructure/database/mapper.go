package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/infrastructure/database/sqlc_generated"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

// optionalText maps "" to NULL.
func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func eventToDomain(e sqlc_generated.Event) entities.Event {
	return entities.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		StartsAt:    pgtypeTimestamptzToTime(e.StartsAt),
		ImageRef:    e.ImageRef.String,
		MessageRef:  e.MessageRef.String,
		CreatedAt:   pgtypeTimestamptzToTime(e.CreatedAt),
	}
}

func participantToDomain(p sqlc_generated.Participant) entities.Participant {
	return entities.Participant{
		EventID:   p.EventID,
		UserID:    p.UserID,
		Username:  p.Username,
		Status:    domain.Status(p.Status),
		UpdatedAt: pgtypeTimestamptzToTime(p.UpdatedAt),
	}
}
