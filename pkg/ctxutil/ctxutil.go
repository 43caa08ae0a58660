package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const actorIDKey ctxKey = "actor_id"

// WithActorID stores the acting user's ID in the context. The course
// management layer authenticates the actor before invoking the pipeline.
func WithActorID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, actorIDKey, id)
}

// ActorIDFromCtx extracts the actor ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func ActorIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
