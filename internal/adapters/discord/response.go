package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

var noMentions = &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func respondEphemeral(ctx context.Context, api discordAPI, i *discordgo.Interaction, content string) {
	err := api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: noMentions,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to respond to interaction")
	}
}

// responder delivers the short, user-directed part of a reply: prompts,
// confirmations and errors. Interactive surfaces go to the channel instead.
type responder interface {
	show(ctx context.Context, content string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent)
	// done finishes the exchange once nothing more will be shown.
	done(ctx context.Context)
}

func notify(ctx context.Context, r responder, content string) {
	r.show(ctx, content, nil, nil)
}

// channelResponder replies in the channel of a typed message.
type channelResponder struct {
	api       discordAPI
	channelID string
	reference *discordgo.MessageReference
}

func (r *channelResponder) show(ctx context.Context, content string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	_, err := r.api.ChannelMessageSendComplex(r.channelID, &discordgo.MessageSend{
		Content:         content,
		Embeds:          embeds,
		Components:      components,
		Reference:       r.reference,
		AllowedMentions: noMentions,
	}, discordgo.WithContext(ctx))
	if err != nil {
		logrus.WithError(err).WithField("channel_id", r.channelID).Warn("⚠️ Failed to send reply")
	}
}

func (r *channelResponder) done(context.Context) {}

// followupResponder answers an acknowledged component interaction with
// ephemeral followups.
type followupResponder struct {
	api         discordAPI
	interaction *discordgo.Interaction
}

func (r *followupResponder) show(ctx context.Context, content string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	_, err := r.api.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Content:         content,
		Embeds:          embeds,
		Components:      components,
		Flags:           discordgo.MessageFlagsEphemeral,
		AllowedMentions: noMentions,
	}, discordgo.WithContext(ctx))
	if err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to send followup")
	}
}

func (r *followupResponder) done(context.Context) {}

// deferredResponder fills in an ephemeral deferred response. The first show
// edits it, later ones become followups, and done removes it if unused.
type deferredResponder struct {
	api         discordAPI
	interaction *discordgo.Interaction
	used        bool
}

func (r *deferredResponder) show(ctx context.Context, content string, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	if r.used {
		(&followupResponder{api: r.api, interaction: r.interaction}).show(ctx, content, embeds, components)
		return
	}
	r.used = true
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	_, err := r.api.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content:         &content,
		Embeds:          &embeds,
		Components:      &components,
		AllowedMentions: noMentions,
	}, discordgo.WithContext(ctx))
	if err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to edit deferred response")
	}
}

func (r *deferredResponder) done(ctx context.Context) {
	if r.used {
		return
	}
	if err := r.api.InteractionResponseDelete(r.interaction, discordgo.WithContext(ctx)); err != nil {
		logrus.WithError(err).Debug("Failed to delete deferred response")
	}
}

func deferEphemeral(ctx context.Context, api discordAPI, i *discordgo.Interaction) error {
	return api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}, discordgo.WithContext(ctx))
}

func deferUpdate(ctx context.Context, api discordAPI, i *discordgo.Interaction) error {
	return api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
}
