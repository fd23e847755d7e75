// Package requestid carries the per-request correlation id through a context.
package requestid

import "context"

// Header is the HTTP header used to propagate the id in both directions.
const Header = "X-Request-Id"

type ctxKey struct{}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored in ctx, or "" when there is none.
func FromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}
