package handler

import (
	"errors"
	"net/http"

	"notebook/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes and validates the body into dst. On failure it writes the
// response and returns false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RequestTooLarge(c)
			return false
		}
		utils.BadRequest(c, utils.ValidationMessage(err))
		return false
	}
	return true
}
