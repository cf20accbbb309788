package service

import (
	"context"

	"community-feed-api/internal/domain"
	"community-feed-api/internal/response"
	"community-feed-api/internal/util"
)

func actorFrom(ctx context.Context) (domain.Actor, bool) {
	return util.ActorFromContext(ctx)
}

// requireActor returns the authenticated actor or an UNAUTHORIZED AppError
func requireActor(ctx context.Context) (domain.Actor, error) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return domain.Actor{}, response.NewAppError(response.ErrCodeUnauthorized, "Authentication required", "")
	}
	return actor, nil
}
