package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/input"
	dc "rsvpbot/pkg/discord"
)

// componentToken is the chosen option of a select menu or the custom ID of
// a button.
func componentToken(data discordgo.MessageComponentInteractionData) string {
	if len(data.Values) > 0 {
		return data.Values[0]
	}
	return data.CustomID
}

// HandleComponent routes button presses and menu selections.
func (h *Handler) HandleComponent(ctx context.Context, i *discordgo.InteractionCreate) {
	actor := interactionActor(i)
	locale := string(i.Locale)

	in, err := intent.ParseCallback(componentToken(i.MessageComponentData()))
	if err != nil {
		logrus.WithError(err).WithField("custom_id", i.MessageComponentData().CustomID).Warn("⚠️ Unknown component")
		respondEphemeral(ctx, h.api, i.Interaction, dc.ErrorMessage(h.tr, locale, err))
		return
	}

	switch v := in.(type) {
	case intent.Ignore:
		if err := deferUpdate(ctx, h.api, i.Interaction); err != nil {
			logrus.WithError(err).Warn("⚠️ Failed to acknowledge component")
		}
	case intent.Join:
		h.toggle(ctx, i, actor, locale, v.EventID, domain.StatusJoining)
	case intent.Decline:
		h.toggle(ctx, i, actor, locale, v.EventID, domain.StatusDeclining)
	case intent.View:
		h.viewEvent(ctx, i, actor, locale, v.EventID)
	case intent.Delete:
		h.deleteEvent(ctx, i, actor, locale, v.EventID)
	case intent.ListEvents:
		if err := deferEphemeral(ctx, h.api, i.Interaction); err != nil {
			logrus.WithError(err).Warn("⚠️ Failed to acknowledge component")
			return
		}
		h.showEvents(ctx, locale, &deferredResponder{api: h.api, interaction: i.Interaction})
	case intent.CustomTime:
		h.customTime(ctx, i, actor, locale)
	default:
		if err := deferUpdate(ctx, h.api, i.Interaction); err != nil {
			logrus.WithError(err).Warn("⚠️ Failed to acknowledge component")
			return
		}
		h.create(ctx, actor, locale, in, &followupResponder{api: h.api, interaction: i.Interaction})
	}
}

func (h *Handler) toggle(ctx context.Context, i *discordgo.InteractionCreate, actor input.Actor, locale string, eventID int64, status domain.Status) {
	if err := deferUpdate(ctx, h.api, i.Interaction); err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to acknowledge RSVP")
		return
	}
	r := &followupResponder{api: h.api, interaction: i.Interaction}

	result, err := h.participants.ToggleParticipation(ctx, eventID, actor.UserID, actor.Username, status)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event_id": eventID,
			"user_id":  actor.UserID,
		}).Warn("⚠️ RSVP failed")
		notify(ctx, r, dc.ErrorMessage(h.tr, locale, err))
		return
	}
	if !result.Notable {
		return
	}
	key := "rsvp.joined"
	if result.Current == domain.StatusDeclining {
		key = "rsvp.declined"
	}
	notify(ctx, r, h.tr.T(locale, key, nil))
}

func (h *Handler) viewEvent(ctx context.Context, i *discordgo.InteractionCreate, actor input.Actor, locale string, eventID int64) {
	if err := deferEphemeral(ctx, h.api, i.Interaction); err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to acknowledge component")
		return
	}
	r := &deferredResponder{api: h.api, interaction: i.Interaction}
	defer r.done(ctx)

	view, err := h.events.ViewEvent(ctx, actor.UserID, eventID)
	if err != nil {
		notify(ctx, r, dc.ErrorMessage(h.tr, locale, err))
		return
	}
	r.show(ctx, "", []*discordgo.MessageEmbed{dc.EventViewEmbed(h.tr, locale, view)}, dc.EventViewComponents(h.tr, locale, view))
}

func (h *Handler) deleteEvent(ctx context.Context, i *discordgo.InteractionCreate, actor input.Actor, locale string, eventID int64) {
	if err := deferEphemeral(ctx, h.api, i.Interaction); err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to acknowledge component")
		return
	}
	r := &deferredResponder{api: h.api, interaction: i.Interaction}
	defer r.done(ctx)

	if err := h.events.DeleteEvent(ctx, actor.UserID, eventID); err != nil {
		notify(ctx, r, dc.ErrorMessage(h.tr, locale, err))
		return
	}
	notify(ctx, r, h.tr.T(locale, "event.deleted", nil))
}
