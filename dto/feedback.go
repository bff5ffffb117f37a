package dto

import (
	"time"

	"notebook/model"
)

type CreateFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,notblank,max=2000"`
}

// FeedbackResponse is public, so it omits the author's account id.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToFeedbackResponse(entry *model.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        entry.ID,
		UserName:  entry.UserName,
		Rating:    entry.Rating,
		Comment:   entry.Comment,
		CreatedAt: entry.CreatedAt,
	}
}

func ToFeedbackResponses(entries []*model.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToFeedbackResponse(entry)
	}
	return responses
}
