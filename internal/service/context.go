package service

import (
	"context"

	"socialhub/internal/apperror"
	"socialhub/internal/models"
)

type actorKey struct{}

// WithActor stores the authenticated caller in ctx.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller, or the zero (anonymous) Actor.
func ActorFromContext(ctx context.Context) models.Actor {
	actor, _ := ctx.Value(actorKey{}).(models.Actor)
	return actor
}

func requireActor(ctx context.Context) (models.Actor, error) {
	actor := ActorFromContext(ctx)
	if !actor.Authenticated() {
		return actor, apperror.ErrUnauthorized
	}
	return actor, nil
}
