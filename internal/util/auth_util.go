package util

import (
	"context"

	"github.com/google/uuid"

	"community-feed-api/internal/domain"
)

type actorKey struct{}

// WithActor returns ctx carrying the authenticated actor
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor. The second result
// is false for anonymous requests.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	if !ok || actor.ID == uuid.Nil {
		return domain.Actor{}, false
	}
	return actor, true
}
