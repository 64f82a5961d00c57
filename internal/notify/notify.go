// Package notify queues transient toast notifications for a browser session
// and hands them to the next rendered page.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/redact"
)

// Level is the severity of a notification, mapped to its toast style.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// MaxPending caps how many undelivered notifications a session keeps.
// Older entries are dropped first.
const MaxPending = 20

// ErrNoSession is returned when a notification has no session to belong to.
var ErrNoSession = errors.New("notification session id is empty")

// Notification is a single toast message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Store persists pending notifications per session.
type Store interface {
	// Push appends n to the session queue.
	Push(ctx context.Context, sessionID string, n Notification) error

	// Drain returns and removes every pending notification of the session,
	// oldest first.
	Drain(ctx context.Context, sessionID string) ([]Notification, error)
}

// SessionNotifier queues notifications for one session in a Store.
// Store failures are logged, never returned.
type SessionNotifier struct {
	store     Store
	sessionID string
	logger    *slog.Logger
}

var _ Notifier = (*SessionNotifier)(nil)

// NewSessionNotifier creates a notifier bound to sessionID.
func NewSessionNotifier(store Store, sessionID string, logger *slog.Logger) *SessionNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionNotifier{
		store:     store,
		sessionID: sessionID,
		logger:    logger.With(slog.String("component", "notifier")),
	}
}

// Notify queues n for the session.
func (s *SessionNotifier) Notify(ctx context.Context, n Notification) {
	if err := s.store.Push(ctx, s.sessionID, n); err != nil {
		s.logger.WarnContext(ctx, "failed to queue notification",
			slog.String("level", string(n.Level)),
			slog.String("error", redact.Error(err)))
	}
}

// Success queues a success notification.
func Success(ctx context.Context, n Notifier, message string) {
	n.Notify(ctx, Notification{Level: LevelSuccess, Message: message})
}

// Warning queues a warning notification.
func Warning(ctx context.Context, n Notifier, message string) {
	n.Notify(ctx, Notification{Level: LevelWarning, Message: message})
}

// Error queues an error notification.
func Error(ctx context.Context, n Notifier, message string) {
	n.Notify(ctx, Notification{Level: LevelError, Message: message})
}
