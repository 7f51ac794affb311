package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/input"
	dc "rsvpbot/pkg/discord"
)

// customTime answers with the time modal when the session is waiting for a
// time. The modal has to be the initial response, so the flow runs first.
func (h *Handler) customTime(ctx context.Context, i *discordgo.InteractionCreate, actor input.Actor, locale string) {
	reply, err := h.creation.Handle(ctx, actor, intent.CustomTime{})
	if err != nil {
		logrus.WithError(err).WithField("user_id", actor.UserID).Error("❌ Creation input failed")
		respondEphemeral(ctx, h.api, i.Interaction, dc.ErrorMessage(h.tr, locale, err))
		return
	}

	if reply.Render == input.RenderCustomTimePrompt {
		err = h.api.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: dc.CustomTimeModal(h.tr, locale),
		}, discordgo.WithContext(ctx))
	} else {
		err = deferUpdate(ctx, h.api, i.Interaction)
	}
	if err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to acknowledge component")
	}
	h.render(ctx, actor, locale, reply, &followupResponder{api: h.api, interaction: i.Interaction})
}

// HandleModalSubmit receives the custom time typed into the modal.
func (h *Handler) HandleModalSubmit(ctx context.Context, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if data.CustomID != dc.ModalCustomTime {
		return
	}
	if err := deferEphemeral(ctx, h.api, i.Interaction); err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to acknowledge modal")
		return
	}
	value := dc.ExtractModalValue(data, dc.InputCustomTime)
	h.create(ctx, interactionActor(i), string(i.Locale), intent.Text{Value: value}, &deferredResponder{api: h.api, interaction: i.Interaction})
}
