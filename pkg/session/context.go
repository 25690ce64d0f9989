package session

import (
	"context"
	"net/http"
)

type sessionContextKey struct{}

// SetSession stores the session in the context.
func SetSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// GetSession returns the session from the context, or nil.
func GetSession(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}

// Middleware resolves the request's session, when present, into the
// context. Requests without a valid session pass through unauthenticated.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, err := m.Resolve(r.Context(), r); err == nil {
				r = r.WithContext(SetSession(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without an authenticated session.
func RequireAuth(m *Manager, onReject http.Handler) func(http.Handler) http.Handler {
	if onReject == nil {
		onReject = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := m.Resolve(r.Context(), r)
			if err != nil || !s.IsAuthenticated() {
				onReject.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSession(r.Context(), s)))
		})
	}
}
