package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type FakeRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*User
	Err   error
}

func NewFakeRepository(users ...*User) *FakeRepository {
	repo := &FakeRepository{users: make(map[uuid.UUID]*User)}
	for _, u := range users {
		repo.Put(u)
	}
	return repo
}

func (f *FakeRepository) Put(u *User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	stored := *u
	f.users[u.ID] = &stored
}

func (f *FakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}
