package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/input"
)

func TestSessionStoreEvictsIdleSessions(t *testing.T) {
	steps := newMemSteps()
	store := NewSessionStore(steps, time.Hour)
	now := fixedNow()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for _, userID := range []string{"stale", "fresh"} {
		slot := store.lock(userID)
		slot.session = &entities.CreationSession{UserID: userID, ChannelID: "c", Step: entities.StepAwaitingTitle}
		store.release(ctx, userID, slot)
		if userID == "stale" {
			now = now.Add(50 * time.Minute)
		}
	}
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, store.evict(ctx))
	assert.False(t, store.Active("stale", "c"))
	assert.True(t, store.Active("fresh", "c"))
	assert.Equal(t, 1, store.Len())

	step, err := steps.LoadStep(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, entities.StepIdle, step)
}

func TestSessionStoreRelocksEvictedSlot(t *testing.T) {
	store := NewSessionStore(newMemSteps(), time.Hour)
	ctx := context.Background()

	slot := store.lock("u")
	store.release(ctx, "u", slot)
	store.evict(ctx)
	require.True(t, slot.dead)

	fresh := store.lock("u")
	assert.NotSame(t, slot, fresh)
	assert.False(t, fresh.dead)
	store.release(ctx, "u", fresh)
}

func TestRunJanitorStopsWithContext(t *testing.T) {
	store := NewSessionStore(newMemSteps(), time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestCreationConcurrentUsers(t *testing.T) {
	f := newCreationFixture()
	authorizer := allowList{}
	for i := 0; i < 20; i++ {
		authorizer[fmt.Sprintf("user-%d", i)] = true
	}
	f.svc.authorizer = authorizer

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := input.Actor{UserID: fmt.Sprintf("user-%d", i), ChannelID: fmt.Sprintf("dm-%d", i)}
			for _, in := range []intent.Intent{intent.StartCreation{}, intent.Text{Value: fmt.Sprintf("Event %d", i)}, intent.Text{Value: "Chat"}} {
				_, err := f.svc.Handle(context.Background(), actor, in)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, f.sessions.Len())
	for i := 0; i < 20; i++ {
		step, err := f.steps.LoadStep(context.Background(), fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		assert.Equal(t, entities.StepAwaitingDate, step)
	}
}
