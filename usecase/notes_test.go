package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook/apperror"
	"notebook/model"
)

func strPtr(s string) *string { return &s }

func TestCreateNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	note, err := f.Notes.Create(ctx, "owner-1", CreateNoteInput{Title: " t ", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "owner-1", note.OwnerID)
	assert.Equal(t, "t", note.Title)
	assert.False(t, note.Completed)
	assert.False(t, note.Favorite)
	assert.Nil(t, note.ScheduleDate)

	_, err = f.Notes.Create(ctx, "owner-1", CreateNoteInput{Title: "t", Description: "  "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.Notes.Create(ctx, "", CreateNoteInput{Title: "t", Description: "d"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestListIsScopedToCaller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i, owner := range []string{"a", "b", "a", "b", "a"} {
		_, err := f.Notes.Create(ctx, owner, CreateNoteInput{Title: string(rune('A' + i)), Description: "d"})
		require.NoError(t, err)
	}

	notes, err := f.Notes.List(ctx, "a", model.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	for _, n := range notes {
		assert.Equal(t, "a", n.OwnerID)
	}
	assert.Equal(t, []string{"A", "C", "E"}, []string{notes[0].Title, notes[1].Title, notes[2].Title})

	empty, err := f.Notes.List(ctx, "nobody", model.NoteFilter{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = f.Notes.List(ctx, "a", model.NoteFilter{Status: "archived"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestNonOwnerCannotTouchNote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	note, err := f.Notes.Create(ctx, "owner", CreateNoteInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	ops := map[string]func() error{
		"get": func() error { _, err := f.Notes.Get(ctx, "intruder", note.ID); return err },
		"edit": func() error {
			_, err := f.Notes.Edit(ctx, "intruder", note.ID, model.NotePatch{Title: strPtr("hijacked")})
			return err
		},
		"toggle completion": func() error { _, err := f.Notes.ToggleCompletion(ctx, "intruder", note.ID); return err },
		"toggle favorite":   func() error { _, err := f.Notes.ToggleFavorite(ctx, "intruder", note.ID); return err },
		"delete":            func() error { return f.Notes.Delete(ctx, "intruder", note.ID) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			assert.ErrorIs(t, err, apperror.ErrForbidden)

			stored, err := f.notes.FindByID(ctx, note.ID)
			require.NoError(t, err)
			assert.Equal(t, "t", stored.Title)
			assert.False(t, stored.Completed)
			assert.False(t, stored.Favorite)
		})
	}
}

func TestMissingNoteIsNotFoundBeforeForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.Notes.Get(ctx, "anyone", "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.Notes.ToggleFavorite(ctx, "anyone", "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	err = f.Notes.Delete(ctx, "anyone", "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	note, err := f.Notes.Create(ctx, "owner", CreateNoteInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	first, err := f.Notes.ToggleCompletion(ctx, "owner", note.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)
	assert.False(t, first.Favorite)

	second, err := f.Notes.ToggleCompletion(ctx, "owner", note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.Completed, second.Completed)
}

func TestConcurrentTogglesDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	note, err := f.Notes.Create(ctx, "owner", CreateNoteInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.Notes.ToggleFavorite(ctx, "owner", note.ID)
		}()
	}
	wg.Wait()

	stored, err := f.Notes.Get(ctx, "owner", note.ID)
	require.NoError(t, err)
	assert.False(t, stored.Favorite, "an even number of toggles ends where it started")
}

func TestEditIsPartial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	when := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	note, err := f.Notes.Create(ctx, "owner", CreateNoteInput{Title: "t", Description: "d", ScheduleDate: &when})
	require.NoError(t, err)

	edited, err := f.Notes.Edit(ctx, "owner", note.ID, model.NotePatch{Title: strPtr("new title")})
	require.NoError(t, err)
	assert.Equal(t, "new title", edited.Title)
	assert.Equal(t, "d", edited.Description)
	require.NotNil(t, edited.ScheduleDate)
	assert.True(t, when.Equal(*edited.ScheduleDate))

	cleared, err := f.Notes.Edit(ctx, "owner", note.ID, model.NotePatch{ClearSchedule: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.ScheduleDate)

	_, err = f.Notes.Edit(ctx, "owner", note.ID, model.NotePatch{Description: strPtr(" ")})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	unchanged, err := f.Notes.Edit(ctx, "owner", note.ID, model.NotePatch{})
	require.NoError(t, err)
	assert.Equal(t, "new title", unchanged.Title)
}

func TestEditCannotSetFlags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	note, err := f.Notes.Create(ctx, "owner", CreateNoteInput{Title: "t", Description: "d"})
	require.NoError(t, err)
	toggled, err := f.Notes.ToggleFavorite(ctx, "owner", note.ID)
	require.NoError(t, err)
	require.True(t, toggled.Favorite)

	edited, err := f.Notes.Edit(ctx, "owner", note.ID, model.NotePatch{Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", edited.Title)
	assert.False(t, edited.Completed)
	assert.True(t, edited.Favorite)

	// a second toggle still flips, so edits left the flag alone
	again, err := f.Notes.ToggleFavorite(ctx, "owner", note.ID)
	require.NoError(t, err)
	assert.False(t, again.Favorite)
}

func TestEditChecksOwnershipBeforeFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	note, err := f.Notes.Create(ctx, "owner", CreateNoteInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = f.Notes.Edit(ctx, "intruder", note.ID, model.NotePatch{Title: strPtr(" ")})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.Notes.Edit(ctx, "owner", "missing", model.NotePatch{Title: strPtr(" ")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteAndStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	keep, err := f.Notes.Create(ctx, "owner", CreateNoteInput{Title: "keep", Description: "d"})
	require.NoError(t, err)
	drop, err := f.Notes.Create(ctx, "owner", CreateNoteInput{Title: "drop", Description: "d"})
	require.NoError(t, err)
	_, err = f.Notes.ToggleCompletion(ctx, "owner", keep.ID)
	require.NoError(t, err)
	_, err = f.Notes.ToggleFavorite(ctx, "owner", keep.ID)
	require.NoError(t, err)

	require.NoError(t, f.Notes.Delete(ctx, "owner", drop.ID))
	assert.ErrorIs(t, f.Notes.Delete(ctx, "owner", drop.ID), apperror.ErrNotFound)

	stats, err := f.Notes.Stats(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, model.NoteStats{Total: 1, Completed: 1, Pending: 0, Favorite: 1}, stats)
}

func TestOwnershipScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.register(t, "A", "a@x.com")
	aID, err := f.Accounts.Authenticate(ctx, a.Token)
	require.NoError(t, err)

	n1, err := f.Notes.Create(ctx, aID, CreateNoteInput{Title: "t", Description: "d"})
	require.NoError(t, err)
	assert.False(t, n1.Completed)
	assert.False(t, n1.Favorite)

	favored, err := f.Notes.ToggleFavorite(ctx, aID, n1.ID)
	require.NoError(t, err)
	assert.True(t, favored.Favorite)

	b := f.register(t, "B", "b@x.com")
	bID, err := f.Accounts.Authenticate(ctx, b.Token)
	require.NoError(t, err)

	err = f.Notes.Delete(ctx, bID, n1.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	notes, err := f.Notes.List(ctx, aID, model.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, n1.ID, notes[0].ID)
	assert.True(t, notes[0].Favorite)
}
