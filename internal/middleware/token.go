package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/field-scheduler/internal/config"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// IssueToken signs the claims AuthMiddleware reads back.
func IssueToken(cfg *config.Config, user *models.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"fieldOwner": user.FieldOwner,
		"exp":        now.Add(cfg.JWTTTL).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
