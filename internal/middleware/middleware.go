package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/taskenda/taskenda-backend/internal/auth"
	"github.com/taskenda/taskenda-backend/internal/models"
)

type contextKey struct{}

var identityKey contextKey

// Identity is the authenticated caller attached to a request context
type Identity struct {
	UserID   int64
	Username string
	Role     models.Role
}

// IdentityFrom extracts the authenticated identity from a request context
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity returns a context carrying the given identity
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// UserResolver turns a token subject into a stored user
type UserResolver interface {
	FindUserByUsername(username string) (*models.User, error)
}

// AuthMiddleware validates the bearer token on every request and attaches the
// resolved identity to the request context. Requests without a valid token
// are rejected with 401.
func AuthMiddleware(tokens *auth.TokenService, users UserResolver, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					unauthorized(w, "token expired")
				} else {
					unauthorized(w, "invalid token")
				}
				return
			}

			user, err := users.FindUserByUsername(claims.Subject)
			if err != nil {
				log.Warnf("Token subject %q has no user record", claims.Subject)
				unauthorized(w, "invalid token")
				return
			}

			identity := Identity{UserID: user.ID, Username: user.Username, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Message: message,
		Status:  http.StatusUnauthorized,
	})
}
