package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/ports/output"
	dc "rsvpbot/pkg/discord"
)

// channelAPI is what the publisher needs from *discordgo.Session.
type channelAPI interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Publisher posts events to the broadcast channel and keeps their RSVP
// buttons current. It implements output.Publisher and output.RSVPDisplay.
type Publisher struct {
	api       channelAPI
	channelID string
	tr        output.T
	locale    string
}

var (
	_ output.Publisher   = (*Publisher)(nil)
	_ output.RSVPDisplay = (*Publisher)(nil)
)

// NewPublisher renders broadcast messages in locale ("" for the default).
func NewPublisher(api channelAPI, channelID string, tr output.T, locale string) *Publisher {
	return &Publisher{api: api, channelID: channelID, tr: tr, locale: locale}
}

func (p *Publisher) Publish(ctx context.Context, event *entities.Event) (string, error) {
	msg, err := p.api.ChannelMessageSendComplex(p.channelID, &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{dc.EventEmbed(p.tr, p.locale, event)},
		Components:      dc.RSVPComponents(p.tr, p.locale, event.ID, domain.Counts{}),
		AllowedMentions: noMentions,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send event message: %w", err)
	}

	ref := dc.MessageRef(msg.ChannelID, msg.ID)
	logrus.WithFields(logrus.Fields{
		"event_id":    event.ID,
		"message_ref": ref,
	}).Info("📝 Event message posted")
	return ref, nil
}

func (p *Publisher) Unpublish(ctx context.Context, messageRef string) error {
	channelID, messageID, ok := dc.SplitMessageRef(messageRef)
	if !ok {
		return fmt.Errorf("invalid message ref %q", messageRef)
	}
	if err := p.api.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete event message: %w", err)
	}
	return nil
}

// UpdateRSVP rewrites only the buttons; the embed is left untouched. A
// malformed ref is reported as permanent so it is not retried.
func (p *Publisher) UpdateRSVP(ctx context.Context, messageRef string, eventID int64, counts domain.Counts) error {
	channelID, messageID, ok := dc.SplitMessageRef(messageRef)
	if !ok {
		return backoff.Permanent(fmt.Errorf("invalid message ref %q", messageRef))
	}
	components := dc.RSVPComponents(p.tr, p.locale, eventID, counts)
	_, err := p.api.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("edit event message: %w", err)
	}
	return nil
}
