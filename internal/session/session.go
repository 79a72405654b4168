package session // package session holds the authenticated user's token and profile for one browser tab

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/myfoodmap/webclient/internal/model"
)

// ErrNotFound is returned by stores when no session exists for an ID.
var ErrNotFound = errors.New("session not found")

// Session pairs the backend-issued bearer token with the user profile it
// was issued for. It exists from login until logout, expiry, or an
// authorization failure on any upstream call.
type Session struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	User      model.User `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
}

// New creates a session with a fresh identifier.
func New(token string, user model.User) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now(),
	}
}

// TokenExpired reports whether the bearer token carries an `exp` claim in
// the past. The token is parsed without verification: the client never
// holds the signing secret, and the upstream's 403 remains the authority.
// Tokens without an exp claim, or that are not JWTs at all, are not
// treated as expired.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
