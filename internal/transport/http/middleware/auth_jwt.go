package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nemukerja/internal/core/auth"
	"nemukerja/internal/domain"
	resp "nemukerja/internal/transport/http/response"
)

const keyActor = "actor"

// AuthJWT authenticates the bearer token and stashes the resolved Actor.
// requireRole restricts the group to one role; empty allows any
// authenticated role.
func AuthJWT(j *auth.JWTer, requireRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil || claims.Purpose != auth.PurposeAccess {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		role, ok := domain.ParseRole(claims.Role)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(keyActor, domain.Actor{UserID: claims.UID, Role: role})
		c.Next()
	}
}

// Actor retrieves the authenticated identity set by AuthJWT.
func Actor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(keyActor)
	if !ok {
		return domain.Actor{}, false
	}
	a, ok := v.(domain.Actor)
	return a, ok
}
