package api

import (
	"context"
)

type keyType string

const visitorIDKey keyType = "visitorID"

// ctxWithVisitorID adds the visitor identifier to the context
func ctxWithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorIDKey, visitorID)
}

// ctxVisitorID retrieves the visitor identifier from the context, or ""
func ctxVisitorID(ctx context.Context) string {
	visitorID, _ := ctx.Value(visitorIDKey).(string)
	return visitorID
}
