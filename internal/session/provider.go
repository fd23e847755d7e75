package session

import (
	"context"
	"errors"
	"fmt"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
	ctxKeySessionID
)

// Provider reads and writes the active user for a session, falling back to a placeholder user
// the first time a session is seen.
type Provider struct {
	store       Store
	defaultUser string
}

func NewProvider(store Store, defaultUser string) *Provider {
	return &Provider{store: store, defaultUser: defaultUser}
}

// Resolve returns the user for sessionID, or the default user when the session has none. The
// default is not written back, so sessions that never switch user leave nothing in the store.
func (p *Provider) Resolve(ctx context.Context, sessionID string) (string, error) {
	userID, err := p.store.Get(ctx, sessionID)
	if err == nil {
		return userID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("get session: %w", err)
	}
	return p.defaultUser, nil
}

// SetCurrentUser overwrites the user slot for sessionID.
func (p *Provider) SetCurrentUser(ctx context.Context, sessionID, userID string) error {
	return p.store.Set(ctx, sessionID, userID)
}

// NewContext returns a copy of ctx carrying the session id and its user.
func NewContext(ctx context.Context, sessionID, userID string) context.Context {
	ctx = context.WithValue(ctx, ctxKeySessionID, sessionID)
	return context.WithValue(ctx, ctxKeyUser, userID)
}

// CurrentUser returns the active user id. ok is false when no identity is set.
func CurrentUser(ctx context.Context) (string, bool) {
	v, _ := ctx.Value(ctxKeyUser).(string)
	return v, v != ""
}

// IDFromContext returns the session id, or "" outside a session.
func IDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeySessionID).(string)
	return v
}
