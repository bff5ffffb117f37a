package model

import (
	"strings"
	"time"
)

type Note struct {
	ID           string     `bson:"_id" json:"id"`
	OwnerID      string     `bson:"user_id" json:"userId"`
	Title        string     `bson:"title" json:"title"`
	Description  string     `bson:"description" json:"description"`
	Completed    bool       `bson:"completed" json:"completed"`
	Favorite     bool       `bson:"favorite" json:"favorite"`
	ScheduleDate *time.Time `bson:"schedule_date" json:"scheduleDate"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updatedAt"`
}

// NoteFlag names a boolean that can only be flipped, never set.
type NoteFlag string

const (
	FlagCompleted NoteFlag = "completed"
	FlagFavorite  NoteFlag = "favorite"
)

// NotePatch lists the fields of an edit. Nil means "leave unchanged";
// ClearSchedule removes the schedule date. Flags are absent: they only change
// through a toggle.
type NotePatch struct {
	Title         *string
	Description   *string
	ScheduleDate  *time.Time
	ClearSchedule bool
}

func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.ScheduleDate == nil && !p.ClearSchedule
}

// Apply copies the supplied fields onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.ClearSchedule {
		n.ScheduleDate = nil
	} else if p.ScheduleDate != nil {
		d := *p.ScheduleDate
		n.ScheduleDate = &d
	}
}

const (
	NoteStatusCompleted = "completed"
	NoteStatusPending   = "pending"

	NoteSortOldest = "oldest"
	NoteSortNewest = "newest"
)

// NoteFilter narrows a listing. The zero value lists everything in insertion
// order.
type NoteFilter struct {
	Query         string
	Status        string
	FavoritesOnly bool
	CreatedOn     *time.Time
	Sort          string
}

// Matches reports whether n passes every predicate except ownership.
func (f NoteFilter) Matches(n *Note) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(n.Title), q) && !strings.Contains(strings.ToLower(n.Description), q) {
			return false
		}
	}
	switch f.Status {
	case NoteStatusCompleted:
		if !n.Completed {
			return false
		}
	case NoteStatusPending:
		if n.Completed {
			return false
		}
	}
	if f.FavoritesOnly && !n.Favorite {
		return false
	}
	if f.CreatedOn != nil {
		start := *f.CreatedOn
		if n.CreatedAt.Before(start) || !n.CreatedAt.Before(start.Add(24*time.Hour)) {
			return false
		}
	}
	return true
}
