package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), day)

	ts, err := ParseDate("2026-10-18T09:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 7, 30, 0, 0, time.UTC), ts)

	_, err = ParseDate("next tuesday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateNoteRequestToPatch(t *testing.T) {
	patch, err := UpdateNoteRequest{Title: strPtr("t")}.ToPatch()
	require.NoError(t, err)
	assert.Equal(t, "t", *patch.Title)
	assert.Nil(t, patch.Description)
	assert.False(t, patch.ClearSchedule)

	patch, err = UpdateNoteRequest{ScheduleDate: strPtr("")}.ToPatch()
	require.NoError(t, err)
	assert.True(t, patch.ClearSchedule)

	patch, err = UpdateNoteRequest{ScheduleDate: strPtr("2026-01-02")}.ToPatch()
	require.NoError(t, err)
	require.NotNil(t, patch.ScheduleDate)
	assert.Equal(t, 2, patch.ScheduleDate.Day())

	_, err = UpdateNoteRequest{ScheduleDate: strPtr("soon")}.ToPatch()
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateNoteRequestDropsFlags(t *testing.T) {
	var req UpdateNoteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"completed":true,"favorite":true}`), &req))

	patch, err := req.ToPatch()
	require.NoError(t, err)
	assert.True(t, patch.Empty())
}

func TestCreateNoteRequestScheduleTime(t *testing.T) {
	when, err := CreateNoteRequest{}.ScheduleTime()
	require.NoError(t, err)
	assert.Nil(t, when)

	when, err = CreateNoteRequest{ScheduleDate: strPtr("2026-02-03")}.ScheduleTime()
	require.NoError(t, err)
	require.NotNil(t, when)
	assert.Equal(t, time.February, when.Month())
}
