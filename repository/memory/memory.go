// Package memory holds map-backed stores with the same contracts as the Mongo
// repositories. They back STORE_DRIVER=memory for local runs and the tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"notebook/model"
	"notebook/repository"
	"notebook/utils"
)

type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
	byEmail  map[string]string
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*model.Account),
		byEmail:  make(map[string]string),
	}
}

func (s *AccountStore) Create(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(account.Email)
	if _, exists := s.byEmail[key]; exists {
		return repository.ErrDuplicateKey
	}

	if account.ID == "" {
		account.ID = utils.NewID()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	s.accounts[account.ID] = &stored
	s.byEmail[key] = account.ID
	return nil
}

func (s *AccountStore) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	account := *s.accounts[id]
	return &account, nil
}

func (s *AccountStore) FindByID(_ context.Context, id string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	account := *stored
	return &account, nil
}

func (s *AccountStore) UpdatePassword(_ context.Context, id, passwordHash string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.PasswordHash = passwordHash
	stored.TokenVersion++
	stored.UpdatedAt = time.Now().UTC()

	account := *stored
	return &account, nil
}

// NoteStore keeps insertion order so an unfiltered listing is oldest first.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[string]*model.Note
	order []string
}

func NewNoteStore() *NoteStore {
	return &NoteStore{notes: make(map[string]*model.Note)}
}

func cloneNote(n *model.Note) *model.Note {
	c := *n
	if n.ScheduleDate != nil {
		d := *n.ScheduleDate
		c.ScheduleDate = &d
	}
	return &c
}

func (s *NoteStore) Create(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID == "" {
		note.ID = utils.NewID()
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	s.notes[note.ID] = cloneNote(note)
	s.order = append(s.order, note.ID)
	return nil
}

func (s *NoteStore) FindByID(_ context.Context, id string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneNote(note), nil
}

func (s *NoteStore) ListByOwner(_ context.Context, ownerID string, f model.NoteFilter) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := []*model.Note{}
	for _, id := range s.order {
		note := s.notes[id]
		if note.OwnerID != ownerID || !f.Matches(note) {
			continue
		}
		notes = append(notes, cloneNote(note))
	}

	if f.Sort == model.NoteSortNewest {
		// insertion order is creation order
		for i, j := 0, len(notes)-1; i < j; i, j = i+1, j-1 {
			notes[i], notes[j] = notes[j], notes[i]
		}
	}
	return notes, nil
}

// owned returns the stored note if it exists and belongs to ownerID. Callers
// hold the write lock.
func (s *NoteStore) owned(id, ownerID string) (*model.Note, error) {
	note, ok := s.notes[id]
	if !ok || note.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return note, nil
}

func (s *NoteStore) Update(_ context.Context, id, ownerID string, patch model.NotePatch) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	patch.Apply(note)
	note.UpdatedAt = time.Now().UTC()
	return cloneNote(note), nil
}

func (s *NoteStore) Toggle(_ context.Context, id, ownerID string, flag model.NoteFlag) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	switch flag {
	case model.FlagCompleted:
		note.Completed = !note.Completed
	case model.FlagFavorite:
		note.Favorite = !note.Favorite
	}
	note.UpdatedAt = time.Now().UTC()
	return cloneNote(note), nil
}

func (s *NoteStore) Delete(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.owned(id, ownerID); err != nil {
		return err
	}
	delete(s.notes, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *NoteStore) Stats(_ context.Context, ownerID string) (model.NoteStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats model.NoteStats
	for _, note := range s.notes {
		if note.OwnerID != ownerID {
			continue
		}
		stats.Total++
		if note.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if note.Favorite {
			stats.Favorite++
		}
		if note.ScheduleDate != nil {
			stats.Scheduled++
		}
	}
	return stats, nil
}

type FeedbackStore struct {
	mu      sync.RWMutex
	entries []*model.Feedback
}

func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{}
}

func (s *FeedbackStore) Create(_ context.Context, feedback *model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if feedback.ID == "" {
		feedback.ID = utils.NewID()
	}
	feedback.CreatedAt = time.Now().UTC()

	stored := *feedback
	s.entries = append(s.entries, &stored)
	return nil
}

func (s *FeedbackStore) List(_ context.Context, limit int) ([]*model.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []*model.Feedback{}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) == limit {
			break
		}
		entry := *s.entries[i]
		entries = append(entries, &entry)
	}
	return entries, nil
}
