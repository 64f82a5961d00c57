package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/platform/logger"
)

// SessionCookie names the cookie identifying a browser session.
const SessionCookie = "taskboard_session"

type contextKey string

const (
	sessionIDKey contextKey = "sessionID"
	traceIDKey   contextKey = "traceID"
)

// SessionID returns the session id stored by SessionMiddleware.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

// TraceID returns the trace id stored by TraceMiddleware.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// SessionMiddleware makes sure every request belongs to a session, issuing
// a new session cookie when none (or a malformed one) is presented.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TraceMiddleware adds a trace ID to the request context and a logger
// carrying it. It should be applied early in the middleware chain so that
// all subsequent handlers log with the trace ID.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := uuid.NewString()
			log := base.With(slog.String("trace_id", traceID))

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			ctx := context.WithValue(r.Context(), traceIDKey, traceID)
			ctx = logger.WithLogger(ctx, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
