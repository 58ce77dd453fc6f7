package transport

import (
	"context"

	"tindahan-be/internal/user"
)

// Actor identifies the authenticated caller of a request. Core services
// take it as an explicit argument instead of digging it out of the context
// themselves.
type Actor struct {
	UserID   uint
	Username string
	Role     user.Role
}

type ctxKey string

const actorKey ctxKey = "actor"

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)
	return a, ok
}
