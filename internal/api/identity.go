package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// userKey is the context key for the authenticated user.
const userKey ctxKey = "user"

// Identity header names set by the upstream auth proxy. Authentication
// itself happens before requests reach this server; we only read the result.
const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
)

// GetUser returns the authenticated user from context.
// Returns a 401 error if no identity headers were present.
func GetUser(ctx context.Context) (domain.UserRef, error) {
	user, ok := ctx.Value(userKey).(domain.UserRef)
	if !ok || user.ID == "" {
		return domain.UserRef{}, huma.Error401Unauthorized("Authentication required")
	}
	return user, nil
}

// GetUserID returns the authenticated user's ID from context.
func GetUserID(ctx context.Context) (string, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// setUser stores the user in context.
func setUser(ctx context.Context, user domain.UserRef) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// identityMiddleware reads the proxy-supplied identity headers and stores the
// user in context. Requests without identity continue anonymously; handlers
// reject them through GetUser when authentication is required.
func identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(headerUserID))
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		user := domain.UserRef{
			ID:   id,
			Name: strings.TrimSpace(r.Header.Get(headerUserName)),
		}
		next.ServeHTTP(w, r.WithContext(setUser(r.Context(), user)))
	})
}
