package handler

import (
	"notebook/middleware"
	"notebook/utils"

	"github.com/gin-gonic/gin"
)

// Stats reports the caller's note totals.
func (h *NotesHandler) Stats(c *gin.Context) {
	stats, err := h.notes.Stats(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "", gin.H{"stats": stats})
}
