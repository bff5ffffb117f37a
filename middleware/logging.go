package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mileusna/useragent"
)

// RequestLoggingMiddleware writes one structured line per request. Headers and
// bodies are never logged.
func RequestLoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ua := useragent.Parse(c.Request.UserAgent())
		device := "desktop"
		switch {
		case ua.Bot:
			device = "bot"
		case ua.Mobile:
			device = "mobile"
		case ua.Tablet:
			device = "tablet"
		}

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		logger.LogAttrs(c.Request.Context(), level, "request",
			slog.String("request_id", c.GetString("request_id")),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.String("browser", ua.Name),
			slog.String("os", ua.OS),
			slog.String("device", device),
			slog.String("user_id", CurrentUserID(c)),
		)
	}
}
