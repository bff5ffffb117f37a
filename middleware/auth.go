package middleware

import (
	"context"
	"log/slog"
	"strings"

	"notebook/apperror"
	"notebook/utils"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// Authenticator resolves a bearer token to an account id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// AuthMiddleware admits a request only with a valid "Bearer <token>" header and
// stores the caller's account id under "user_id".
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "No token, authorization denied")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			utils.Unauthorized(c, "Malformed authorization header")
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindInvalidToken {
				slog.WarnContext(c.Request.Context(), "token rejected",
					"reason", "invalid_token",
					"request_id", c.GetString("request_id"),
					"path", c.FullPath(),
					"error", err,
				)
				utils.Fail(c, apperror.New(apperror.KindInvalidToken, "Token is not valid"))
				return
			}
			utils.Fail(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the id set by AuthMiddleware, or "" outside it.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
