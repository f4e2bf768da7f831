package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	h "confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/login"

// SessionLookup reconstructs the signed-in user from the id carried by the session.
type SessionLookup interface {
	CurrentUser(ctx context.Context, id int64) (*domain.User, error)
}

// SetUser returns a context carrying the authenticated user. Used by session middleware.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user from the context, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok && u != nil
}

// RequireSession returns a wrapper that verifies the session cookie and loads its user into the request context.
// Without a valid session it redirects to the login page and does not call next.
func RequireSession(verifier domain.TokenVerifier, lookup SessionLookup, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := h.SessionToken(r)
			if token == "" {
				h.RedirectSeeOther(w, r, LoginPath)
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				h.ClearSessionCookie(w)
				h.RedirectSeeOther(w, r, LoginPath)
				return
			}
			user, err := lookup.CurrentUser(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					logger.ErrorContext(r.Context(), "session lookup failed", "path", r.URL.Path, "user_id", userID, "err", err)
				}
				h.ClearSessionCookie(w)
				h.RedirectSeeOther(w, r, LoginPath)
				return
			}
			next(w, r.WithContext(SetUser(r.Context(), user)))
		}
	}
}
