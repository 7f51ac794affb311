package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/input"
	dc "rsvpbot/pkg/discord"
)

// create feeds one input to the creation flow and renders the reply.
func (h *Handler) create(ctx context.Context, actor input.Actor, locale string, in intent.Intent, r responder) {
	reply, err := h.creation.Handle(ctx, actor, in)
	if err != nil {
		logrus.WithError(err).WithField("user_id", actor.UserID).Error("❌ Creation input failed")
		notify(ctx, r, dc.ErrorMessage(h.tr, locale, err))
		r.done(ctx)
		return
	}
	h.render(ctx, actor, locale, reply, r)
}

// render shows a creation reply. Interactive surfaces are posted to the
// conversation channel and tracked so the next one can replace them; plain
// prompts and confirmations go through r.
func (h *Handler) render(ctx context.Context, actor input.Actor, locale string, reply input.Reply, r responder) {
	defer r.done(ctx)

	if reply.Err != nil {
		notify(ctx, r, dc.ErrorMessage(h.tr, locale, reply.Err))
	}

	var content string
	var components []discordgo.MessageComponent
	switch reply.Render {
	case input.RenderTitlePrompt:
		notify(ctx, r, h.tr.T(locale, "creation.title_prompt", nil))
	case input.RenderDescriptionPrompt:
		notify(ctx, r, h.tr.T(locale, "creation.description_prompt", nil))
	case input.RenderCalendar:
		content = h.tr.T(locale, "creation.calendar_prompt", nil)
		components = dc.CalendarComponents(h.tr, locale, reply.CalendarYear, reply.CalendarMonth)
	case input.RenderTimePicker:
		content = h.tr.T(locale, "creation.time_prompt", nil)
		components = dc.TimePickerComponents(h.tr, locale)
	case input.RenderCustomTimePrompt:
		content = h.tr.T(locale, "creation.custom_time_prompt", nil)
		components = dc.CancelComponents(h.tr, locale, intent.TokenCancelTime)
	case input.RenderImagePrompt:
		content = h.tr.T(locale, "creation.image_prompt", nil)
		components = dc.CancelComponents(h.tr, locale, intent.TokenCancelImage)
	case input.RenderPublished:
		title := ""
		if reply.Event != nil {
			title = dc.EscapeMarkdown(reply.Event.Title)
		}
		notify(ctx, r, h.tr.T(locale, "creation.published", map[string]any{"Title": title}))
	case input.RenderCancelled:
		notify(ctx, r, h.tr.T(locale, "creation.cancelled", nil))
	case input.RenderNothingToCancel:
		notify(ctx, r, h.tr.T(locale, "creation.nothing_to_cancel", nil))
	case input.RenderSessionExpired:
		notify(ctx, r, h.tr.T(locale, "creation.session_expired", nil))
	}

	if content != "" {
		h.postSurface(ctx, actor, content, components)
	}
	if reply.ReplacedSurface != "" {
		h.dropSurface(reply.ReplacedSurface)
	}
}

func (h *Handler) postSurface(ctx context.Context, actor input.Actor, content string, components []discordgo.MessageComponent) {
	msg, err := h.api.ChannelMessageSendComplex(actor.ChannelID, &discordgo.MessageSend{
		Content:         content,
		Components:      components,
		AllowedMentions: noMentions,
	}, discordgo.WithContext(ctx))
	if err != nil {
		logrus.WithError(err).WithField("channel_id", actor.ChannelID).Error("❌ Failed to send creation step")
		return
	}
	if stale := h.creation.SetSurface(actor.UserID, dc.MessageRef(msg.ChannelID, msg.ID)); stale != "" {
		h.dropSurface(stale)
	}
}

// dropSurface deletes a superseded message after the grace period.
func (h *Handler) dropSurface(ref string) {
	channelID, messageID, ok := dc.SplitMessageRef(ref)
	if !ok {
		return
	}
	time.AfterFunc(h.grace, func() {
		defer recoverPanic("surface cleanup")
		if err := h.api.ChannelMessageDelete(channelID, messageID); err != nil {
			logrus.WithError(err).WithField("message_id", messageID).Debug("Failed to delete superseded message")
		}
	})
}
