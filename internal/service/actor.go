package service

import "context"

type actorKey struct{}

// ContextWithActor records the staff ID performing the current operation.
func ContextWithActor(ctx context.Context, staffID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, staffID)
}

// ActorFromContext returns the acting staff ID, if any.
func ActorFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok
}
