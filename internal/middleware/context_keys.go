package middleware

import (
	"context"
	"log/slog"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	// actorKey stores the authenticated domain.Actor in the request context.
	actorKey = contextKey("actor")
	// authMethodKey marks which middleware authenticated the request.
	authMethodKey = "authMethod"
)

// WithActor stores the actor in ctx and enriches the context logger with its identity.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	logger := GetLoggerFromCtx(ctx).With(
		slog.String("actor_id", actor.ID),
		slog.String("actor_role", string(actor.Role)),
	)
	ctx = context.WithValue(ctx, actorKey, actor)
	return WithLogger(ctx, logger)
}

// ActorFromCtx retrieves the authenticated actor from a standard context.
func ActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetActorFromContext retrieves the authenticated actor from the Gin request.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	return ActorFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated principal's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	actor, ok := GetActorFromContext(c)
	if !ok || actor.ID == "" {
		return "", false
	}
	return actor.ID, true
}
