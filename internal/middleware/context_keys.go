package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the acting user name in the Gin context.
const actorKey = contextKey("actor")

// ActorHeader names who performs a change. There is no authentication layer; the
// value is only recorded in audit fields and status stamps.
const ActorHeader = "X-Actor"

// DefaultActor is recorded when no actor header is sent.
const DefaultActor = "system"

// MaxActorLength is the width of the created_by/updated_by columns, in characters.
const MaxActorLength = 100

// ActorMiddleware stores the caller-declared actor in the Gin context.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actor == "" {
			actor = DefaultActor
		}
		if r := []rune(actor); len(r) > MaxActorLength {
			actor = string(r[:MaxActorLength])
		}
		c.Set(string(actorKey), actor)
		c.Next()
	}
}

// GetActorFromContext returns the actor stored by ActorMiddleware, DefaultActor otherwise.
func GetActorFromContext(c *gin.Context) string {
	if v, ok := c.Get(string(actorKey)); ok {
		if actor, ok := v.(string); ok && actor != "" {
			return actor
		}
	}
	return DefaultActor
}
