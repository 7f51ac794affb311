package discord

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/ports/input"
	"rsvpbot/internal/ports/output"
)

const handlerTimeout = 30 * time.Second

// discordAPI is the subset of *discordgo.Session the handler talks to.
type discordAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Handler handles Discord interactions and messages using use cases.
type Handler struct {
	api          discordAPI
	creation     input.CreationUseCase
	events       input.EventUseCase
	participants input.ParticipantUseCase
	authorizer   output.Authorizer
	tr           output.T
	grace        time.Duration
}

// NewHandler creates a Handler. grace is how long a superseded interactive
// message stays visible after its replacement is posted.
func NewHandler(
	api discordAPI,
	creation input.CreationUseCase,
	events input.EventUseCase,
	participants input.ParticipantUseCase,
	authorizer output.Authorizer,
	tr output.T,
	grace time.Duration,
) *Handler {
	return &Handler{
		api:          api,
		creation:     creation,
		events:       events,
		participants: participants,
		authorizer:   authorizer,
		tr:           tr,
		grace:        grace,
	}
}

// HandleInteraction is registered on the session for InteractionCreate.
func (h *Handler) HandleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	defer recoverPanic("interaction")

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.HandleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		h.HandleComponent(ctx, i)
	case discordgo.InteractionModalSubmit:
		h.HandleModalSubmit(ctx, i)
	}
}

// HandleMessage is registered on the session for MessageCreate.
func (h *Handler) HandleMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	defer recoverPanic("message")

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	h.handleMessage(ctx, m)
}

func recoverPanic(source string) {
	if r := recover(); r != nil {
		logrus.WithFields(logrus.Fields{
			"source": source,
			"panic":  r,
			"stack":  string(debug.Stack()),
		}).Error("❌ Recovered from panic in handler")
	}
}

func interactionActor(i *discordgo.InteractionCreate) input.Actor {
	user := interactionUser(i)
	if user == nil {
		return input.Actor{ChannelID: i.ChannelID}
	}
	return input.Actor{
		UserID:    user.ID,
		Username:  resolveDisplayName(i.Member, user),
		ChannelID: i.ChannelID,
	}
}

// interactionUser is Member.User in guilds and User in DMs.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
