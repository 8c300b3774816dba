// Package session replaces the panel's global mutable auth state with an
// explicit session object: initialized when a login token is presented,
// injected into screens through the request context, cleared on logout.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/angkringan-pos/admin-api/internal/auth"
	"github.com/angkringan-pos/admin-api/internal/enum"
)

// Actor is the authenticated identity the auth collaborator vouches for.
type Actor struct {
	ID        string
	Fullname  string
	Email     string
	IsAdmin   bool
	IsManager bool
}

// Role collapses the flags into the three-way role enum.
func (a Actor) Role() string {
	switch {
	case a.IsAdmin:
		return enum.RoleAdmin
	case a.IsManager:
		return enum.RoleManager
	default:
		return enum.RoleCustomer
	}
}

// Session carries one actor's identity for the duration of their work.
type Session struct {
	ID        uuid.UUID
	Actor     Actor
	Token     string
	StartedAt time.Time
	active    bool
}

// Begin initializes a session from validated login claims.
func Begin(token string, claims *auth.Claims) *Session {
	return &Session{
		ID: uuid.New(),
		Actor: Actor{
			ID:        claims.UserID,
			Fullname:  claims.Fullname,
			Email:     claims.Email,
			IsAdmin:   claims.IsAdmin,
			IsManager: claims.IsManager,
		},
		Token:     token,
		StartedAt: time.Now(),
		active:    true,
	}
}

// Active reports whether the session has not been ended.
func (s *Session) Active() bool {
	return s != nil && s.active
}

// End clears the session on logout. The actor and token are zeroed so no
// screen can keep reading ambient auth state.
func (s *Session) End() {
	if s == nil {
		return
	}
	s.Actor = Actor{}
	s.Token = ""
	s.active = false
}

type contextKey struct{}

// WithContext injects the session for downstream screens.
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the injected session, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
