package http

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type contextKey string

const (
	profileIDKey contextKey = "profile_id"
	userIDKey    contextKey = "user_id"
	requestIDKey contextKey = "request_id"
)

// ProfileMiddleware picks up the browser-profile and user identifiers
// the frontend sends. Authentication itself is delegated to the
// managed auth provider; the API only needs the opaque ids for
// keying storage.
func ProfileMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if profileID := r.Header.Get("X-Profile-ID"); profileID != "" {
			ctx = context.WithValue(ctx, profileIDKey, profileID)
		}
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getProfileID(ctx context.Context) string {
	if profileID, ok := ctx.Value(profileIDKey).(string); ok {
		return profileID
	}
	return ""
}

func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}
