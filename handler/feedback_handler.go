package handler

import (
	"notebook/dto"
	"notebook/middleware"
	"notebook/usecase"
	"notebook/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedback *usecase.FeedbackService
}

func NewFeedbackHandler(feedback *usecase.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.feedback.Submit(c.Request.Context(), middleware.CurrentUserID(c), req.Rating, req.Comment)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Created(c, "Feedback submitted successfully", gin.H{"feedback": dto.ToFeedbackResponse(entry)})
}

func (h *FeedbackHandler) List(c *gin.Context) {
	entries, err := h.feedback.List(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "", gin.H{"feedback": dto.ToFeedbackResponses(entries)})
}
