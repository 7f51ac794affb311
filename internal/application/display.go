package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/ports/output"
)

// DisplayScheduler receives fresh RSVP counts for a published event.
type DisplayScheduler interface {
	ScheduleUpdate(ctx context.Context, eventID int64, counts domain.Counts, target string)
	Forget(eventID int64)
}

type DisplayConfig struct {
	Debounce  time.Duration
	BaseDelay time.Duration
	Attempts  int
}

func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Debounce:  100 * time.Millisecond,
		BaseDelay: 200 * time.Millisecond,
		Attempts:  3,
	}
}

var _ DisplayScheduler = (*DisplayUpdater)(nil)

// DisplayUpdater coalesces bursts of count changes per event into a single
// edit of the published message. Counts are re-read from the store when the
// edit is made, so a snapshot taken before a later write cannot win.
type DisplayUpdater struct {
	display      output.RSVPDisplay
	events       output.EventRepository
	participants output.ParticipantRepository
	cfg          DisplayConfig
	entries      *xsync.MapOf[int64, *displayEntry]
}

type displayEntry struct {
	mu      sync.Mutex // guards pending, last and shown
	pending []domain.Counts
	last    domain.Counts
	shown   bool

	flushMu sync.Mutex // one flush at a time per event
}

func NewDisplayUpdater(display output.RSVPDisplay, events output.EventRepository, participants output.ParticipantRepository, cfg DisplayConfig) *DisplayUpdater {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &DisplayUpdater{
		display:      display,
		events:       events,
		participants: participants,
		cfg:          cfg,
		entries:      xsync.NewMapOf[int64, *displayEntry](),
	}
}

// ScheduleUpdate buffers counts for eventID, waits for the debounce window and
// then applies the most recent buffered snapshot to target, unless a
// concurrent call already flushed it. Failures are logged, never returned.
func (u *DisplayUpdater) ScheduleUpdate(ctx context.Context, eventID int64, counts domain.Counts, target string) {
	// The edit is cosmetic and must outlive the interaction that caused it.
	ctx = context.WithoutCancel(ctx)

	e := u.entry(eventID)
	e.mu.Lock()
	e.pending = append(e.pending, counts)
	e.mu.Unlock()

	time.Sleep(u.cfg.Debounce)

	e.flushMu.Lock()
	defer e.flushMu.Unlock()

	e.mu.Lock()
	if len(e.pending) == 0 {
		e.mu.Unlock()
		return
	}
	snapshot := e.pending[len(e.pending)-1]
	e.pending = nil
	e.mu.Unlock()

	counts, ok := u.current(ctx, eventID, snapshot)
	if !ok {
		return
	}

	e.mu.Lock()
	unchanged := e.shown && e.last == counts
	e.mu.Unlock()
	if unchanged {
		return
	}

	if err := u.apply(ctx, eventID, counts, target); err != nil {
		logrus.WithFields(logrus.Fields{
			"event_id":    eventID,
			"message_ref": target,
		}).Errorf("❌ Keyboard update gave up after %d attempts: %v", u.cfg.Attempts, err)
		return
	}

	e.mu.Lock()
	e.last, e.shown = counts, true
	e.mu.Unlock()
}

// current returns the counts to show for eventID. It reports false when the
// event is gone, in which case its buffer is dropped and nothing is edited.
func (u *DisplayUpdater) current(ctx context.Context, eventID int64, snapshot domain.Counts) (domain.Counts, bool) {
	if _, err := u.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			u.entries.Delete(eventID)
			logrus.WithField("event_id", eventID).Debug("Event deleted before keyboard update")
			return domain.Counts{}, false
		}
		logrus.WithField("event_id", eventID).Warnf("⚠️ Failed to load event for keyboard update: %v", err)
	}

	counts, err := u.participants.CountByStatus(ctx, eventID)
	if err != nil {
		logrus.WithField("event_id", eventID).Warnf("⚠️ Failed to re-read counts, using buffered snapshot: %v", err)
		return snapshot, true
	}
	return counts, true
}

// Forget drops the buffer of a deleted event.
func (u *DisplayUpdater) Forget(eventID int64) {
	u.entries.Delete(eventID)
}

func (u *DisplayUpdater) entry(eventID int64) *displayEntry {
	e, _ := u.entries.LoadOrCompute(eventID, func() *displayEntry {
		return &displayEntry{}
	})
	return e
}

func (u *DisplayUpdater) apply(ctx context.Context, eventID int64, counts domain.Counts, target string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = u.cfg.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	attempt := 0
	update := func() error {
		attempt++
		return u.display.UpdateRSVP(ctx, target, eventID, counts)
	}
	notify := func(err error, wait time.Duration) {
		logrus.WithFields(logrus.Fields{
			"event_id": eventID,
			"attempt":  attempt,
		}).Warnf("⚠️ Keyboard update failed, retrying in %s: %v", wait, err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(u.cfg.Attempts-1)), ctx)
	if err := backoff.RetryNotify(update, policy, notify); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDisplayUpdate, err)
	}
	logrus.WithFields(logrus.Fields{
		"event_id":  eventID,
		"joining":   counts.Joining,
		"declining": counts.Declining,
	}).Debug("✅ Keyboard updated")
	return nil
}
