package notify

import (
	"context"
	"sync"
)

// Recorder is a Notifier that keeps every notification it receives.
// It backs tests and any caller that renders notifications inline.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

var _ Notifier = (*Recorder)(nil)

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}
