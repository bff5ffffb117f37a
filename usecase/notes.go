package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"notebook/apperror"
	"notebook/model"
	"notebook/repository"
	"notebook/utils"
)

type CreateNoteInput struct {
	Title        string
	Description  string
	ScheduleDate *time.Time
}

// NotesService runs every note operation on behalf of an authenticated caller.
// Reads and writes of a single note go through assertOwner first.
type NotesService struct {
	Notes  NoteStore
	Logger *slog.Logger
}

func (s *NotesService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// assertOwner is the one ownership check for note access.
func assertOwner(note *model.Note, callerID string) error {
	if note.OwnerID != callerID {
		return apperror.Forbidden("Not authorized to access this note")
	}
	return nil
}

func noteStoreError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("Note not found")
	}
	return apperror.Store(err)
}

// load fetches a note and checks existence before ownership.
func (s *NotesService) load(ctx context.Context, callerID, noteID string) (*model.Note, error) {
	if callerID == "" {
		return nil, apperror.ErrUnauthorized
	}
	if strings.TrimSpace(noteID) == "" {
		return nil, apperror.NotFound("Note not found")
	}

	note, err := s.Notes.FindByID(ctx, noteID)
	if err != nil {
		return nil, noteStoreError(err)
	}
	if err := assertOwner(note, callerID); err != nil {
		s.logger().WarnContext(ctx, "note access denied", "note_id", noteID, "caller_id", callerID)
		return nil, err
	}
	return note, nil
}

func (s *NotesService) Create(ctx context.Context, callerID string, input CreateNoteInput) (*model.Note, error) {
	if callerID == "" {
		return nil, apperror.ErrUnauthorized
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperror.Validation("Title and description are required")
	}

	note := &model.Note{
		OwnerID:      callerID,
		Title:        title,
		Description:  description,
		ScheduleDate: input.ScheduleDate,
	}
	if err := s.Notes.Create(ctx, note); err != nil {
		return nil, apperror.Store(err)
	}

	utils.TrackNoteOperation("create")
	return note, nil
}

// List returns only the caller's notes, never nil.
func (s *NotesService) List(ctx context.Context, callerID string, filter model.NoteFilter) ([]*model.Note, error) {
	if callerID == "" {
		return nil, apperror.ErrUnauthorized
	}
	switch filter.Status {
	case "", model.NoteStatusCompleted, model.NoteStatusPending:
	default:
		return nil, apperror.Validation("status must be one of: completed pending")
	}
	switch filter.Sort {
	case "", model.NoteSortOldest, model.NoteSortNewest:
	default:
		return nil, apperror.Validation("sort must be one of: oldest newest")
	}

	notes, err := s.Notes.ListByOwner(ctx, callerID, filter)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	return notes, nil
}

func (s *NotesService) Get(ctx context.Context, callerID, noteID string) (*model.Note, error) {
	return s.load(ctx, callerID, noteID)
}

// Edit changes only the fields present in patch. An empty patch returns the
// note unchanged. Existence and ownership are checked before the fields.
func (s *NotesService) Edit(ctx context.Context, callerID, noteID string, patch model.NotePatch) (*model.Note, error) {
	note, err := s.load(ctx, callerID, noteID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperror.Validation("title cannot be empty")
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, apperror.Validation("description cannot be empty")
		}
		patch.Description = &description
	}
	if patch.Empty() {
		return note, nil
	}

	updated, err := s.Notes.Update(ctx, noteID, callerID, patch)
	if err != nil {
		return nil, noteStoreError(err)
	}

	utils.TrackNoteOperation("update")
	return updated, nil
}

func (s *NotesService) ToggleCompletion(ctx context.Context, callerID, noteID string) (*model.Note, error) {
	return s.toggle(ctx, callerID, noteID, model.FlagCompleted, "toggle_completion")
}

func (s *NotesService) ToggleFavorite(ctx context.Context, callerID, noteID string) (*model.Note, error) {
	return s.toggle(ctx, callerID, noteID, model.FlagFavorite, "toggle_favorite")
}

// toggle negates flag inside the store so concurrent toggles never lose an update.
func (s *NotesService) toggle(ctx context.Context, callerID, noteID string, flag model.NoteFlag, op string) (*model.Note, error) {
	if _, err := s.load(ctx, callerID, noteID); err != nil {
		return nil, err
	}

	updated, err := s.Notes.Toggle(ctx, noteID, callerID, flag)
	if err != nil {
		return nil, noteStoreError(err)
	}

	utils.TrackNoteOperation(op)
	return updated, nil
}

func (s *NotesService) Delete(ctx context.Context, callerID, noteID string) error {
	if _, err := s.load(ctx, callerID, noteID); err != nil {
		return err
	}

	if err := s.Notes.Delete(ctx, noteID, callerID); err != nil {
		return noteStoreError(err)
	}

	utils.TrackNoteOperation("delete")
	s.logger().InfoContext(ctx, "note deleted", "note_id", noteID, "owner_id", callerID)
	return nil
}

func (s *NotesService) Stats(ctx context.Context, callerID string) (model.NoteStats, error) {
	if callerID == "" {
		return model.NoteStats{}, apperror.ErrUnauthorized
	}
	stats, err := s.Notes.Stats(ctx, callerID)
	if err != nil {
		return model.NoteStats{}, apperror.Store(err)
	}
	return stats, nil
}
