// Package session resolves which user the storefront is acting for.
//
// Each browser carries an opaque session id in a cookie; a Store maps that id to the active user id.
// Middleware resolves the identity once per request and threads it through the context, so nothing
// downstream reads it from a global.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when the session has no user slot yet.
var ErrNotFound = errors.New("session not found")

// Store persists one user id per session id. Writes are last-write-wins.
type Store interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, userID string) error
}
