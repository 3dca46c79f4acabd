package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/field-scheduler/internal/config"
)

const (
	ContextUserID     = "userID"
	ContextFieldOwner = "fieldOwner"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}
		fieldOwner, _ := claims["fieldOwner"].(bool)

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextFieldOwner, fieldOwner)

		c.Next()
	}
}

// RequireFieldOwner must run after AuthMiddleware.
func RequireFieldOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextFieldOwner) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "field_owner_required"})
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}
