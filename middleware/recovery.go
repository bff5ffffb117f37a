package middleware

import (
	"fmt"
	"log/slog"

	"notebook/apperror"
	"notebook/utils"

	"github.com/gin-gonic/gin"
)

// EnhancedRecoveryMiddleware turns a panic into a logged, generic JSON 500.
func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					"request_id", c.GetString("request_id"),
					"path", c.Request.URL.Path,
					"panic", fmt.Sprint(rec),
				)
				utils.TrackError("panic")
				utils.Fail(c, apperror.Wrap(apperror.KindInternal, "panic", fmt.Errorf("%v", rec)))
			}
		}()
		c.Next()
	}
}
