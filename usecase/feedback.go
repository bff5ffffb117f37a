package usecase

import (
	"context"
	"errors"
	"strings"

	"notebook/apperror"
	"notebook/model"
	"notebook/repository"
)

const feedbackListLimit = 100

type FeedbackService struct {
	Feedback FeedbackStore
	Accounts AccountStore
}

// Submit records feedback under the caller's current display name.
func (s *FeedbackService) Submit(ctx context.Context, callerID string, rating int, comment string) (*model.Feedback, error) {
	if callerID == "" {
		return nil, apperror.ErrUnauthorized
	}
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 {
		return nil, apperror.Validation("rating must be between 1 and 5")
	}
	if comment == "" {
		return nil, apperror.Validation("comment is required")
	}

	account, err := s.Accounts.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Store(err)
	}

	feedback := &model.Feedback{
		UserID:   callerID,
		UserName: account.Name,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.Feedback.Create(ctx, feedback); err != nil {
		return nil, apperror.Store(err)
	}
	return feedback, nil
}

func (s *FeedbackService) List(ctx context.Context) ([]*model.Feedback, error) {
	entries, err := s.Feedback.List(ctx, feedbackListLimit)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if entries == nil {
		entries = []*model.Feedback{}
	}
	return entries, nil
}
