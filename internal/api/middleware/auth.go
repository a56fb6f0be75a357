package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/penalties-go/internal/api/apierr"
	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/services/auth"
)

type contextKey string

const (
	refereeContextKey contextKey = "referee"
	sessionContextKey contextKey = "session"
)

// Auth creates authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, refereeContextKey, &session.Referee)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetReferee returns the authenticated referee from the request context
func GetReferee(ctx context.Context) *model.Referee {
	referee, _ := ctx.Value(refereeContextKey).(*model.Referee)
	return referee
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// MustGetReferee returns the authenticated referee or panics
func MustGetReferee(ctx context.Context) *model.Referee {
	referee := GetReferee(ctx)
	if referee == nil {
		panic("no referee in context - auth middleware not applied?")
	}
	return referee
}
