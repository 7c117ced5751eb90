// Package auth signs admins in through an external identity provider and
// authorizes them against a static email allow-list.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnauthorized means the identity authenticated but is not an admin.
var ErrUnauthorized = errors.New("unauthorized")

// Status is the identity gate state machine:
// loading -> {anonymous, authenticated, admin}.
type Status string

const (
	StatusLoading       Status = "loading"
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
	StatusAdmin         Status = "admin"
)

// State is the current identity as seen by a request.
type State struct {
	Status   Status    `json:"status"`
	Identity *Identity `json:"identity"`
	IsAdmin  bool      `json:"isAdmin"`
	Loading  bool      `json:"loading"`
}

// LoadingState is reported by clients before the session check resolves.
func LoadingState() State {
	return State{Status: StatusLoading, Loading: true}
}

type Gate struct {
	provider Provider
	allow    AllowList
	sessions *Sessions
}

func NewGate(provider Provider, allow AllowList, sessions *Sessions) *Gate {
	return &Gate{provider: provider, allow: allow, sessions: sessions}
}

// Login signs in with credential. Identities outside the allow-list are
// signed back out and ErrUnauthorized is returned without a session.
func (g *Gate) Login(ctx context.Context, credential string) (string, Identity, error) {
	id, err := g.provider.SignIn(ctx, credential)
	if err != nil {
		return "", Identity{}, fmt.Errorf("sign in: %w", err)
	}

	if !g.allow.Contains(id.Email) {
		slog.Warn("Rejected sign-in outside allow-list", "email", id.Email)
		if err := g.provider.SignOut(ctx, id); err != nil {
			slog.Error("Failed to sign out unauthorized identity", "email", id.Email, "error", err)
		}
		return "", Identity{}, ErrUnauthorized
	}

	token, err := g.sessions.Issue(ctx, id)
	if err != nil {
		return "", Identity{}, err
	}
	slog.Info("Admin signed in", "email", id.Email)
	return token, id, nil
}

// Logout revokes the session behind token.
func (g *Gate) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return g.sessions.Revoke(ctx, token)
}

// Authenticate returns the identity behind a session token.
func (g *Gate) Authenticate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidSession
	}
	claims, err := g.sessions.Verify(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// CurrentState resolves token to a settled state. Admin status is checked
// against the allow-list on every call.
func (g *Gate) CurrentState(ctx context.Context, token string) State {
	id, err := g.Authenticate(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrInvalidSession) {
			slog.Error("Failed to resolve session", "error", err)
		}
		return State{Status: StatusAnonymous}
	}
	if g.IsAdmin(id) {
		return State{Status: StatusAdmin, Identity: &id, IsAdmin: true}
	}
	return State{Status: StatusAuthenticated, Identity: &id}
}

func (g *Gate) IsAdmin(id Identity) bool {
	return id.Email != "" && g.allow.Contains(id.Email)
}

// SessionTTL is how long an issued session token stays valid.
func (g *Gate) SessionTTL() int {
	return int(g.sessions.TTL().Seconds())
}
