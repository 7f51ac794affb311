package application

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
)

func newParticipantFixture(t *testing.T, published bool) (*ParticipantService, *memStore, *recordingScheduler, int64) {
	t.Helper()
	store := newMemStore()
	event, err := store.Create(context.Background(), entities.EventDraft{Title: "Meetup", Description: "Chat", Date: "16.10.2026 18:00"})
	require.NoError(t, err)
	if published {
		require.NoError(t, store.AttachMessage(context.Background(), event.ID, "chan:msg-1"))
	}
	scheduler := &recordingScheduler{}
	return NewParticipantService(store, store, scheduler), store, scheduler, event.ID
}

func TestToggleParticipationJoin(t *testing.T) {
	svc, _, scheduler, id := newParticipantFixture(t, true)

	res, err := svc.ToggleParticipation(context.Background(), id, "u1", "alice", domain.StatusJoining)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, res.Notable)
	assert.Equal(t, domain.Status(""), res.Previous)
	assert.Equal(t, domain.StatusJoining, res.Current)
	assert.Equal(t, domain.Counts{Joining: 1}, res.Counts)

	require.Len(t, scheduler.calls(), 1)
	assert.Equal(t, scheduleCall{eventID: id, counts: domain.Counts{Joining: 1}, target: "chan:msg-1"}, scheduler.calls()[0])
}

func TestToggleParticipationRepeatIsNoop(t *testing.T) {
	svc, store, scheduler, id := newParticipantFixture(t, true)
	ctx := context.Background()

	_, err := svc.ToggleParticipation(ctx, id, "u1", "alice", domain.StatusJoining)
	require.NoError(t, err)

	res, err := svc.ToggleParticipation(ctx, id, "u1", "alice", domain.StatusJoining)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.False(t, res.Notable)
	assert.Equal(t, 1, store.upsertCount())
	assert.Len(t, scheduler.calls(), 1)

	counts, err := store.CountByStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{Joining: 1}, counts)
}

func TestToggleParticipationDeclineWithoutRecordIsNoop(t *testing.T) {
	svc, store, scheduler, id := newParticipantFixture(t, true)

	res, err := svc.ToggleParticipation(context.Background(), id, "u1", "alice", domain.StatusDeclining)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 0, store.upsertCount())
	assert.Empty(t, scheduler.calls())

	_, err = store.FindByEventIDAndUserID(context.Background(), id, "u1")
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
}

func TestToggleParticipationSwitchesAreNotable(t *testing.T) {
	svc, _, scheduler, id := newParticipantFixture(t, true)
	ctx := context.Background()

	_, err := svc.ToggleParticipation(ctx, id, "u1", "alice", domain.StatusJoining)
	require.NoError(t, err)

	res, err := svc.ToggleParticipation(ctx, id, "u1", "alice", domain.StatusDeclining)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, res.Notable)
	assert.Equal(t, domain.StatusJoining, res.Previous)
	assert.Equal(t, domain.Counts{Declining: 1}, res.Counts)

	res, err = svc.ToggleParticipation(ctx, id, "u1", "alice", domain.StatusJoining)
	require.NoError(t, err)
	assert.True(t, res.Notable)
	assert.Equal(t, domain.Counts{Joining: 1}, res.Counts)

	assert.Len(t, scheduler.calls(), 3)
}

func TestToggleParticipationUnknownEvent(t *testing.T) {
	svc, _, _, _ := newParticipantFixture(t, true)

	_, err := svc.ToggleParticipation(context.Background(), 404, "u1", "alice", domain.StatusJoining)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestToggleParticipationUnpublishedEventSkipsDisplay(t *testing.T) {
	svc, _, scheduler, id := newParticipantFixture(t, false)

	res, err := svc.ToggleParticipation(context.Background(), id, "u1", "alice", domain.StatusJoining)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Empty(t, scheduler.calls())
}

func TestToggleParticipationRejectsUnknownStatus(t *testing.T) {
	svc, _, _, id := newParticipantFixture(t, true)

	_, err := svc.ToggleParticipation(context.Background(), id, "u1", "alice", domain.Status("maybe"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToggleParticipationConcurrentUsers(t *testing.T) {
	svc, store, _, id := newParticipantFixture(t, true)
	ctx := context.Background()
	const users = 50

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := domain.StatusJoining
			userID := fmt.Sprintf("u%d", i)
			_, err := svc.ToggleParticipation(ctx, id, userID, userID, status)
			assert.NoError(t, err)
			if i%5 == 0 {
				_, err = svc.ToggleParticipation(ctx, id, userID, userID, domain.StatusDeclining)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	counts, err := store.CountByStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{Joining: 40, Declining: 10}, counts)
}
