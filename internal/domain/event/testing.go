package event

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type FakeRepository struct {
	mu     sync.Mutex
	events map[uuid.UUID]*Event
	Err    error
}

func NewFakeRepository(events ...*Event) *FakeRepository {
	repo := &FakeRepository{events: make(map[uuid.UUID]*Event)}
	for _, e := range events {
		repo.Put(e)
	}
	return repo
}

func (f *FakeRepository) Put(e *Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	stored := *e
	f.events[e.ID] = &stored
}

func (f *FakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	out := *e
	return &out, nil
}
