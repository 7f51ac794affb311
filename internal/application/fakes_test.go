package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
)

// memStore implements both repositories over maps.
type memStore struct {
	mu           sync.Mutex
	nextID       int64
	events       map[int64]*entities.Event
	participants map[int64][]entities.Participant
	upserts      int
}

func newMemStore() *memStore {
	return &memStore{
		events:       make(map[int64]*entities.Event),
		participants: make(map[int64][]entities.Participant),
	}
}

func (m *memStore) Create(_ context.Context, draft entities.EventDraft) (*entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.Title == draft.Title && e.Date == draft.Date {
			return nil, domain.ErrDuplicateEvent
		}
	}
	m.nextID++
	e := &entities.Event{
		ID:          m.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		Date:        draft.Date,
		StartsAt:    draft.StartsAt,
		ImageRef:    draft.ImageRef,
		CreatedAt:   time.Now(),
	}
	m.events[e.ID] = e
	copied := *e
	return &copied, nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (*entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *memStore) List(_ context.Context) ([]entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, *e)
	}
	return out, nil
}

func (m *memStore) AttachMessage(_ context.Context, id int64, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	e.MessageRef = ref
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(m.events, id)
	delete(m.participants, id)
	return nil
}

func (m *memStore) Upsert(_ context.Context, p *entities.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[p.EventID]; !ok {
		return domain.ErrEventNotFound
	}
	m.upserts++
	rows := m.participants[p.EventID]
	for i := range rows {
		if rows[i].UserID == p.UserID {
			rows[i] = *p
			return nil
		}
	}
	m.participants[p.EventID] = append(rows, *p)
	return nil
}

func (m *memStore) FindByEventIDAndUserID(_ context.Context, eventID int64, userID string) (*entities.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.participants[eventID] {
		if p.UserID == userID {
			copied := p
			return &copied, nil
		}
	}
	return nil, domain.ErrParticipantNotFound
}

func (m *memStore) FindByEventIDAndStatus(_ context.Context, eventID int64, status domain.Status) ([]entities.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.Participant
	for _, p := range m.participants[eventID] {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) CountByStatus(_ context.Context, eventID int64) (domain.Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var c domain.Counts
	for _, p := range m.participants[eventID] {
		switch p.Status {
		case domain.StatusJoining:
			c.Joining++
		case domain.StatusDeclining:
			c.Declining++
		}
	}
	return c, nil
}

func (m *memStore) upsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserts
}

type fakePublisher struct {
	mu          sync.Mutex
	published   []entities.Event
	unpublished []string
	publishErr  error
	unpubErr    error
}

func (p *fakePublisher) Publish(_ context.Context, e *entities.Event) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return "", p.publishErr
	}
	p.published = append(p.published, *e)
	return fmt.Sprintf("chan:msg-%d", e.ID), nil
}

func (p *fakePublisher) Unpublish(_ context.Context, ref string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unpublished = append(p.unpublished, ref)
	return p.unpubErr
}

func (p *fakePublisher) setPublishErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.publishErr = err
}

func (p *fakePublisher) publishedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

type displayCall struct {
	ref     string
	eventID int64
	counts  domain.Counts
	at      time.Time
}

// fakeDisplay fails the first failures calls, or every call when permanent.
type fakeDisplay struct {
	mu        sync.Mutex
	calls     []displayCall
	failures  int
	permanent bool
}

var errDisplayDown = errors.New("display down")

func (d *fakeDisplay) UpdateRSVP(_ context.Context, ref string, eventID int64, counts domain.Counts) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, displayCall{ref: ref, eventID: eventID, counts: counts, at: time.Now()})
	if d.permanent {
		return backoff.Permanent(errDisplayDown)
	}
	if d.failures > 0 {
		d.failures--
		return errDisplayDown
	}
	return nil
}

func (d *fakeDisplay) snapshot() []displayCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]displayCall(nil), d.calls...)
}

type scheduleCall struct {
	eventID int64
	counts  domain.Counts
	target  string
}

type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []scheduleCall
	forgotten []int64
}

func (r *recordingScheduler) ScheduleUpdate(_ context.Context, eventID int64, counts domain.Counts, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, scheduleCall{eventID: eventID, counts: counts, target: target})
}

func (r *recordingScheduler) Forget(eventID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forgotten = append(r.forgotten, eventID)
}

func (r *recordingScheduler) calls() []scheduleCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]scheduleCall(nil), r.scheduled...)
}

type memSteps struct {
	mu    sync.Mutex
	steps map[string]entities.Step
}

func newMemSteps() *memSteps {
	return &memSteps{steps: make(map[string]entities.Step)}
}

func (s *memSteps) SaveStep(_ context.Context, userID string, step entities.Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps[userID] = step
	return nil
}

func (s *memSteps) LoadStep(_ context.Context, userID string) (entities.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step, ok := s.steps[userID]
	if !ok {
		return entities.StepIdle, nil
	}
	return step, nil
}

func (s *memSteps) ClearStep(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.steps, userID)
	return nil
}

type allowList map[string]bool

func (a allowList) Allowed(userID string) bool { return a[userID] }

func eet() *time.Location {
	loc, err := time.LoadLocation("EET")
	if err != nil {
		panic(err)
	}
	return loc
}

// fixedNow is 2026-10-15 12:00 EET.
func fixedNow() time.Time {
	return time.Date(2026, time.October, 15, 12, 0, 0, 0, eet())
}
