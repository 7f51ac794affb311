package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/input"
)

type keyT struct{}

func (keyT) T(_, key string, _ map[string]any) string { return key }

type allowAll bool

func (a allowAll) Allowed(string) bool { return bool(a) }

type sentMessage struct {
	channelID string
	data      *discordgo.MessageSend
}

// fakeAPI records every call made to Discord.
type fakeAPI struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	followups []*discordgo.WebhookParams
	sent      []sentMessage
	edited    []*discordgo.MessageEdit
	deleted   []string
	dropped   int // deleted interaction responses
	sendErr   error
	nextID    int
}

func (f *fakeAPI) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeAPI) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	return &discordgo.Message{}, nil
}

func (f *fakeAPI) InteractionResponseDelete(_ *discordgo.Interaction, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropped++
	return nil
}

func (f *fakeAPI) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followups = append(f.followups, data)
	return &discordgo.Message{}, nil
}

func (f *fakeAPI) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, sentMessage{channelID: channelID, data: data})
	return &discordgo.Message{ID: fmt.Sprintf("m%d", f.nextID), ChannelID: channelID}, nil
}

func (f *fakeAPI) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = append(f.edited, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (f *fakeAPI) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, channelID+":"+messageID)
	return nil
}

func (f *fakeAPI) deletedRefs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type mockCreation struct{ mock.Mock }

func (m *mockCreation) Handle(ctx context.Context, actor input.Actor, in intent.Intent) (input.Reply, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(input.Reply), args.Error(1)
}

func (m *mockCreation) Active(userID, channelID string) bool {
	return m.Called(userID, channelID).Bool(0)
}

func (m *mockCreation) SetSurface(userID, messageRef string) string {
	return m.Called(userID, messageRef).String(0)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) Publish(ctx context.Context, draft entities.EventDraft) (*entities.Event, error) {
	args := m.Called(ctx, draft)
	event, _ := args.Get(0).(*entities.Event)
	return event, args.Error(1)
}

func (m *mockEvents) ListEvents(ctx context.Context) ([]entities.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]entities.Event)
	return events, args.Error(1)
}

func (m *mockEvents) ViewEvent(ctx context.Context, actorID string, id int64) (*input.EventView, error) {
	args := m.Called(ctx, actorID, id)
	view, _ := args.Get(0).(*input.EventView)
	return view, args.Error(1)
}

func (m *mockEvents) DeleteEvent(ctx context.Context, actorID string, id int64) error {
	return m.Called(ctx, actorID, id).Error(0)
}

type mockParticipants struct{ mock.Mock }

func (m *mockParticipants) ToggleParticipation(ctx context.Context, eventID int64, userID, username string, requested domain.Status) (input.ToggleResult, error) {
	args := m.Called(ctx, eventID, userID, username, requested)
	return args.Get(0).(input.ToggleResult), args.Error(1)
}

type handlerFixture struct {
	h            *Handler
	api          *fakeAPI
	creation     *mockCreation
	events       *mockEvents
	participants *mockParticipants
}

func newHandlerFixture(allowed bool) handlerFixture {
	f := handlerFixture{
		api:          &fakeAPI{},
		creation:     &mockCreation{},
		events:       &mockEvents{},
		participants: &mockParticipants{},
	}
	f.h = NewHandler(f.api, f.creation, f.events, f.participants, allowAll(allowed), keyT{}, 0)
	return f
}

func guildMember(id, nick string) *discordgo.Member {
	return &discordgo.Member{Nick: nick, User: &discordgo.User{ID: id, Username: "user-" + id}}
}

func componentInteraction(customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "c1",
		GuildID:   "g1",
		Locale:    discordgo.EnglishUS,
		Member:    guildMember("u1", "Al"),
		Data:      discordgo.MessageComponentInteractionData{CustomID: customID, Values: values},
	}}
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "dm1",
		User:      &discordgo.User{ID: "u1", Username: "alice", GlobalName: "Alice"},
		Data:      discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}
