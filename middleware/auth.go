package middleware

import (
	"net/http"
	"strings"

	"instashare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

func extractJwtClaims(c *gin.Context) (jwt.MapClaims, bool) {
	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		utils.AbortWithError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Authorization header missing")
		return nil, false
	}

	authHeader = strings.Trim(authHeader, "\"' ")

	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		authHeader = "Bearer " + authHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		utils.AbortWithError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid authorization format, expected: Bearer <token>")
		return nil, false
	}

	tokenString := strings.Trim(parts[1], "\"' ")

	claims, err := utils.DecodeJWT(tokenString)
	if err != nil {
		utils.AbortWithError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid or expired token: "+err.Error())
		return nil, false
	}

	return claims, true
}

// JWTAuth resolves the authenticated actor and stores its id in the context.
// Every mutating and viewer-dependent route goes through it.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := extractJwtClaims(c)
		if !ok {
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found in token")
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
