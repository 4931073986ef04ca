package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/askloop/askloop/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserRoleKey stores the user role inside Gin context.
	ContextUserRoleKey = "user_role"
	// ContextUserEmailKey stores the user email inside Gin context.
	ContextUserEmailKey = "user_email"

	// AuthCookieName is the HTTP-only session cookie set at login.
	AuthCookieName = "auth-token"
)

// TokenFromRequest extracts the session token from the auth cookie or, failing
// that, from a Bearer authorization header.
func TokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthRequired ensures the request is authenticated via the session cookie or a bearer JWT.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := TokenFromRequest(ctx)
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, "Authentication required")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(tokenString) {
			utils.Error(ctx, http.StatusUnauthorized, "Token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, "Invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUserRoleKey, claims.Role)
		ctx.Set(ContextUserEmailKey, claims.Email)
		ctx.Next()
	}
}
