package reminder

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FakeRepository is an in-memory Repository for tests.
type FakeRepository struct {
	mu        sync.Mutex
	reminders map[uuid.UUID]*Reminder

	FindErr         error
	MarkNotifiedErr error
	ClaimErr        error
	ReleaseErr      error
	CreateErr       error

	MarkNotifiedCalls []uuid.UUID
	ClaimCalls        []uuid.UUID
	ReleaseCalls      []uuid.UUID
}

func NewFakeRepository(reminders ...*Reminder) *FakeRepository {
	repo := &FakeRepository{reminders: make(map[uuid.UUID]*Reminder)}
	for _, r := range reminders {
		repo.Put(r)
	}
	return repo
}

// Put stores a copy of r, generating an ID when it is empty.
func (f *FakeRepository) Put(r *Reminder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	stored := *r
	f.reminders[r.ID] = &stored
}

// Get returns a copy of the stored reminder, or nil.
func (f *FakeRepository) Get(id uuid.UUID) *Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reminders[id]
	if !ok {
		return nil
	}
	out := *r
	return &out
}

func (f *FakeRepository) Create(ctx context.Context, r *Reminder) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.Put(r)
	return nil
}

func (f *FakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Reminder, error) {
	r := f.Get(id)
	if r == nil {
		return nil, ErrReminderNotFound
	}
	return r, nil
}

func (f *FakeRepository) FindDueUnsent(ctx context.Context, now time.Time) ([]*Reminder, error) {
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	due := make([]*Reminder, 0)
	for _, r := range f.reminders {
		if r.IsDue(now) {
			out := *r
			due = append(due, &out)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ReminderTime.Before(due[j].ReminderTime) })
	return due, nil
}

func (f *FakeRepository) MarkNotified(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MarkNotifiedCalls = append(f.MarkNotifiedCalls, id)
	if f.MarkNotifiedErr != nil {
		return f.MarkNotifiedErr
	}
	r, ok := f.reminders[id]
	if !ok {
		return ErrReminderNotFound
	}
	r.Notified = true
	r.ClaimedAt.Valid = false
	return nil
}

func (f *FakeRepository) Claim(ctx context.Context, id uuid.UUID, now time.Time, lease time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClaimCalls = append(f.ClaimCalls, id)
	if f.ClaimErr != nil {
		return false, f.ClaimErr
	}
	r, ok := f.reminders[id]
	if !ok || r.Notified || r.IsClaimed(now, lease) {
		return false, nil
	}
	r.ClaimedAt.Time = now
	r.ClaimedAt.Valid = true
	return true, nil
}

func (f *FakeRepository) Release(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReleaseCalls = append(f.ReleaseCalls, id)
	if f.ReleaseErr != nil {
		return f.ReleaseErr
	}
	if r, ok := f.reminders[id]; ok {
		r.ClaimedAt.Valid = false
	}
	return nil
}
