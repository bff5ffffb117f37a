package usecase

import (
	"context"

	"notebook/model"
)

// AccountStore persists accounts. Lookups return repository.ErrNotFound and
// Create returns repository.ErrDuplicateKey for a reused email.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (*model.Account, error)
}

// NoteStore persists notes. Mutations are scoped by owner and return
// repository.ErrNotFound when nothing matched.
type NoteStore interface {
	Create(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id string) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerID string, filter model.NoteFilter) ([]*model.Note, error)
	Update(ctx context.Context, id, ownerID string, patch model.NotePatch) (*model.Note, error)
	Toggle(ctx context.Context, id, ownerID string, flag model.NoteFlag) (*model.Note, error)
	Delete(ctx context.Context, id, ownerID string) error
	Stats(ctx context.Context, ownerID string) (model.NoteStats, error)
}

type FeedbackStore interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	List(ctx context.Context, limit int) ([]*model.Feedback, error)
}

// TokenVersionCache is an optional lookaside for account token versions.
type TokenVersionCache interface {
	Get(ctx context.Context, accountID string) (int, bool, error)
	Set(ctx context.Context, accountID string, version int) error
	Invalidate(ctx context.Context, accountID string) error
}
