package mail

import (
	"context"
	"sync"
)

// FakeSender records every message it is asked to send.
type FakeSender struct {
	mu   sync.Mutex
	Sent []Message

	// Err is returned for every send; ErrFor overrides it per recipient.
	Err    error
	ErrFor map[string]error
	// OnSend runs before the message is recorded, e.g. to block or panic in tests.
	OnSend func(ctx context.Context, msg Message)
}

func NewFakeSender() *FakeSender {
	return &FakeSender{ErrFor: make(map[string]error)}
}

func (f *FakeSender) Send(ctx context.Context, msg Message) error {
	if f.OnSend != nil {
		f.OnSend(ctx, msg)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.ErrFor[msg.To]; ok && err != nil {
		return err
	}
	if f.Err != nil {
		return f.Err
	}
	f.Sent = append(f.Sent, msg)
	return nil
}

func (f *FakeSender) SentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Sent)
}
