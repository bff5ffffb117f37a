package middleware

import (
	"net/http"

	"notebook/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter rejects declared oversize bodies up front and caps the
// rest; handlers see *http.MaxBytesError when a streamed body runs over.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.RequestTooLarge(c)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
