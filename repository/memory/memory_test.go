package memory

import (
	"context"
	"testing"

	"notebook/model"
	"notebook/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountStore(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	account := &model.Account{Name: "A", Email: "a@x.com", PasswordHash: "h1"}
	require.NoError(t, store.Create(ctx, account))
	assert.NotEmpty(t, account.ID)
	assert.False(t, account.CreatedAt.IsZero())

	err := store.Create(ctx, &model.Account{Name: "A2", Email: "A@x.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	found, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", found.Name)
	assert.Equal(t, "h1", found.PasswordHash)

	updated, err := store.UpdatePassword(ctx, account.ID, "h3")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TokenVersion)
	assert.Equal(t, "h3", updated.PasswordHash)

	_, err = store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.UpdatePassword(ctx, "missing", "h")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNoteStoreOwnershipAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewNoteStore()

	first := &model.Note{OwnerID: "a", Title: "first", Description: "d"}
	second := &model.Note{OwnerID: "b", Title: "second", Description: "d"}
	third := &model.Note{OwnerID: "a", Title: "third", Description: "d", Favorite: true}
	for _, n := range []*model.Note{first, second, third} {
		require.NoError(t, store.Create(ctx, n))
	}

	notes, err := store.ListByOwner(ctx, "a", model.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "first", notes[0].Title)
	assert.Equal(t, "third", notes[1].Title)

	notes, err = store.ListByOwner(ctx, "a", model.NoteFilter{Sort: model.NoteSortNewest})
	require.NoError(t, err)
	assert.Equal(t, "third", notes[0].Title)

	notes, err = store.ListByOwner(ctx, "a", model.NoteFilter{FavoritesOnly: true})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, third.ID, notes[0].ID)

	_, err = store.Toggle(ctx, first.ID, "b", model.FlagCompleted)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, first.ID, "b"), repository.ErrNotFound)

	toggled, err := store.Toggle(ctx, first.ID, "a", model.FlagCompleted)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled.Title = "mutated outside"
	reloaded, err := store.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", reloaded.Title, "returned notes are copies")

	stats, err := store.Stats(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, model.NoteStats{Total: 2, Completed: 1, Pending: 1, Favorite: 1}, stats)

	require.NoError(t, store.Delete(ctx, first.ID, "a"))
	notes, err = store.ListByOwner(ctx, "a", model.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "third", notes[0].Title)
}

func TestFeedbackStoreNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewFeedbackStore()

	for _, comment := range []string{"one", "two", "three"} {
		require.NoError(t, store.Create(ctx, &model.Feedback{UserID: "a", Rating: 5, Comment: comment}))
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "three", entries[0].Comment)
	assert.Equal(t, "two", entries[1].Comment)
}
