package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Cri010101/toelettatura-system/internal/auth"
	"github.com/Cri010101/toelettatura-system/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextClaims   = "claims"
)

const (
	MsgTokenRequired = "Token di accesso richiesto"
	MsgTokenInvalid  = "Token non valido"
)

type tokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// AuthMiddleware requires a bearer session token. No token is 401, a token
// that fails verification is 403.
func AuthMiddleware(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Write(c, httperr.Unauthorized(MsgTokenRequired))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Write(c, httperr.Unauthorized(MsgTokenRequired))
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Write(c, httperr.Forbidden(MsgTokenInvalid))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// ClaimsFrom returns the verified claims, or nil outside AuthMiddleware.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
