package dto

import (
	"errors"
	"notebook/model"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("scheduleDate must be RFC 3339 or YYYY-MM-DD")

type CreateNoteRequest struct {
	Title        string  `json:"title" binding:"required,notblank,max=200"`
	Description  string  `json:"description" binding:"required,notblank,max=50000"`
	ScheduleDate *string `json:"scheduleDate"`
}

// UpdateNoteRequest is a partial update; absent fields are left alone and an
// empty scheduleDate clears it. completed and favorite are not editable here,
// only toggled, so those keys are ignored.
type UpdateNoteRequest struct {
	Title        *string `json:"title" binding:"omitnil,notblank,max=200"`
	Description  *string `json:"description" binding:"omitnil,notblank,max=50000"`
	ScheduleDate *string `json:"scheduleDate"`
}

type NoteResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Completed    bool       `json:"completed"`
	Favorite     bool       `json:"favorite"`
	ScheduleDate *time.Time `json:"scheduleDate"`
	UserID       string     `json:"userId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ParseDate accepts a full timestamp or a calendar day (UTC midnight).
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

func (r CreateNoteRequest) ScheduleTime() (*time.Time, error) {
	if r.ScheduleDate == nil || strings.TrimSpace(*r.ScheduleDate) == "" {
		return nil, nil
	}
	t, err := ParseDate(*r.ScheduleDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r UpdateNoteRequest) ToPatch() (model.NotePatch, error) {
	patch := model.NotePatch{
		Title:       r.Title,
		Description: r.Description,
	}

	if r.ScheduleDate != nil {
		if strings.TrimSpace(*r.ScheduleDate) == "" {
			patch.ClearSchedule = true
		} else {
			t, err := ParseDate(*r.ScheduleDate)
			if err != nil {
				return model.NotePatch{}, err
			}
			patch.ScheduleDate = &t
		}
	}
	return patch, nil
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:           note.ID,
		Title:        note.Title,
		Description:  note.Description,
		Completed:    note.Completed,
		Favorite:     note.Favorite,
		ScheduleDate: note.ScheduleDate,
		UserID:       note.OwnerID,
		CreatedAt:    note.CreatedAt,
		UpdatedAt:    note.UpdatedAt,
	}
}

// Convert slice of notes to slice of NoteResponse
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
