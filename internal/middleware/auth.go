package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"

// FixedUserID is the pseudo-user every request runs as. There is no
// authentication layer; the app serves a single owner.
const FixedUserID int64 = 1

// UserScope stamps the owning user id on every request context. Handlers
// read it back with GetUserID, so swapping in a real authentication
// middleware later only touches this package.
func UserScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userIDKey, FixedUserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(userIDKey).(int64)
	if !ok {
		return 0
	}
	return userID
}
