package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"batdongsan-api/internal/core/auth"
	"batdongsan-api/internal/domain"
	resp "batdongsan-api/internal/transport/http/response"
)

// Context keys set by the guards.
const (
	KeyUser   = "user"
	KeyUserID = "userId"
	KeyRole   = "role"
)

// LoginRequired resolves the bearer token to a live (non-deleted) user and
// attaches it to the context.
func LoginRequired(j *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return authJWT(j, users, "")
}

// AdminRequired is LoginRequired plus a role check against the stored user,
// not the token claim, so demotions take effect immediately.
func AdminRequired(j *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return authJWT(j, users, domain.RoleAdmin)
}

func authJWT(j *auth.JWTer, users domain.UserRepository, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil || claims.Purpose != "" {
			abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		u, err := users.FindByID(c.Request.Context(), claims.UID)
		if err != nil {
			abort(c, resp.CodeServerError, "auth lookup failed")
			return
		}
		if u == nil {
			abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && u.Role != requireRole {
			abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Set(KeyUser, u)
		c.Set(KeyUserID, u.ID)
		c.Set(KeyRole, u.Role)
		c.Next()
	}
}

// CurrentUser returns the user resolved by a guard on this request.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(KeyUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

func abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(resp.HTTPStatus(code), resp.Error(code, msg))
}
