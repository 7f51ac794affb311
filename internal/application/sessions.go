package application

import (
	"context"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/ports/output"
)

// SessionStore holds creation sessions keyed by user id. Every mutation of a
// user's session happens under that user's slot lock.
type SessionStore struct {
	slots *xsync.MapOf[string, *sessionSlot]
	steps output.StepStore
	ttl   time.Duration
	now   func() time.Time
}

type sessionSlot struct {
	mu      sync.Mutex
	session *entities.CreationSession
	dead    bool // evicted from the map; lockers must fetch a fresh slot
}

func NewSessionStore(steps output.StepStore, ttl time.Duration) *SessionStore {
	return &SessionStore{
		slots: xsync.NewMapOf[string, *sessionSlot](),
		steps: steps,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *SessionStore) lock(userID string) *sessionSlot {
	for {
		slot, _ := s.slots.LoadOrCompute(userID, func() *sessionSlot {
			return &sessionSlot{}
		})
		slot.mu.Lock()
		if !slot.dead {
			return slot
		}
		slot.mu.Unlock()
	}
}

// release persists the step marker of the slot's session and unlocks it.
func (s *SessionStore) release(ctx context.Context, userID string, slot *sessionSlot) {
	defer slot.mu.Unlock()

	var err error
	if slot.session == nil {
		err = s.steps.ClearStep(ctx, userID)
	} else {
		slot.session.UpdatedAt = s.now()
		err = s.steps.SaveStep(ctx, userID, slot.session.Step)
	}
	if err != nil {
		logrus.WithField("user_id", userID).Warnf("⚠️ Failed to persist session step: %v", err)
	}
}

// Active reports whether userID has a session running in channelID.
func (s *SessionStore) Active(userID, channelID string) bool {
	slot, ok := s.slots.Load(userID)
	if !ok {
		return false
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.session != nil && slot.session.ChannelID == channelID
}

// SetSurface records messageRef as the surface of userID's session. Two
// replies can be rendered before either surface is recorded, so the surface
// being displaced is returned for removal; with no session left the new
// surface itself is stale.
func (s *SessionStore) SetSurface(userID, messageRef string) string {
	slot, ok := s.slots.Load(userID)
	if !ok {
		return messageRef
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.dead || slot.session == nil {
		return messageRef
	}
	stale := slot.session.SurfaceRef
	slot.session.SurfaceRef = messageRef
	if stale == messageRef {
		return ""
	}
	return stale
}

// Len returns the number of sessions held.
func (s *SessionStore) Len() int {
	n := 0
	s.slots.Range(func(_ string, slot *sessionSlot) bool {
		slot.mu.Lock()
		if slot.session != nil {
			n++
		}
		slot.mu.Unlock()
		return true
	})
	return n
}

// RunJanitor evicts sessions idle for longer than the TTL every interval
// until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evict(ctx); n > 0 {
				logrus.WithField("evicted", n).Info("🧹 Idle creation sessions evicted")
			}
		}
	}
}

func (s *SessionStore) evict(ctx context.Context) int {
	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	s.slots.Range(func(userID string, slot *sessionSlot) bool {
		if !slot.mu.TryLock() {
			return true
		}
		defer slot.mu.Unlock()

		if slot.session != nil {
			if slot.session.UpdatedAt.After(cutoff) {
				return true
			}
			if err := s.steps.ClearStep(ctx, userID); err != nil {
				logrus.WithField("user_id", userID).Warnf("⚠️ Failed to clear session step: %v", err)
			}
			slot.session = nil
			evicted++
		}
		slot.dead = true
		s.slots.Delete(userID)
		return true
	})
	return evicted
}
