package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotePatchApply(t *testing.T) {
	scheduled := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	note := Note{Title: "old", Description: "keep", ScheduleDate: &scheduled}

	title := "new"
	NotePatch{Title: &title}.Apply(&note)
	assert.Equal(t, "new", note.Title)
	assert.Equal(t, "keep", note.Description)
	assert.Equal(t, &scheduled, note.ScheduleDate)

	NotePatch{ClearSchedule: true}.Apply(&note)
	assert.Nil(t, note.ScheduleDate)
	assert.True(t, NotePatch{}.Empty())
	assert.False(t, NotePatch{ClearSchedule: true}.Empty())
}

func TestNoteFilterMatches(t *testing.T) {
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	note := &Note{
		Title:       "Groceries",
		Description: "Buy MILK",
		Completed:   true,
		CreatedAt:   day.Add(10 * time.Hour),
	}
	nextDay := day.Add(24 * time.Hour)

	tests := []struct {
		name   string
		filter NoteFilter
		want   bool
	}{
		{"zero filter", NoteFilter{}, true},
		{"query in description", NoteFilter{Query: "milk"}, true},
		{"query miss", NoteFilter{Query: "bread"}, false},
		{"completed", NoteFilter{Status: NoteStatusCompleted}, true},
		{"pending", NoteFilter{Status: NoteStatusPending}, false},
		{"favorites only", NoteFilter{FavoritesOnly: true}, false},
		{"created that day", NoteFilter{CreatedOn: &day}, true},
		{"created another day", NoteFilter{CreatedOn: &nextDay}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(note))
		})
	}
}
