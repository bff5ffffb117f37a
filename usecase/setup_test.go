package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notebook/repository/memory"
	"notebook/services"
)

type fixture struct {
	accounts *memory.AccountStore
	notes    *memory.NoteStore
	feedback *memory.FeedbackStore

	Accounts *AccountService
	Notes    *NotesService
	Feedback *FeedbackService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := services.NewTokenManager("test-secret", time.Hour, "notebook-test")
	require.NoError(t, err)

	f := &fixture{
		accounts: memory.NewAccountStore(),
		notes:    memory.NewNoteStore(),
		feedback: memory.NewFeedbackStore(),
	}
	f.Accounts = &AccountService{
		Accounts: f.accounts,
		Tokens:   tokens,
		Hasher:   &services.PasswordHasher{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
	}
	f.Notes = &NotesService{Notes: f.notes}
	f.Feedback = &FeedbackService{Feedback: f.feedback, Accounts: f.accounts}
	return f
}

func (f *fixture) register(t *testing.T, name, email string) *AuthResult {
	t.Helper()
	res, err := f.Accounts.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "p1"})
	require.NoError(t, err)
	return res
}

type mapVersionCache struct {
	mu       sync.Mutex
	versions map[string]int
}

func newMapVersionCache() *mapVersionCache {
	return &mapVersionCache{versions: make(map[string]int)}
}

func (c *mapVersionCache) Get(_ context.Context, id string) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.versions[id]
	return v, ok, nil
}

func (c *mapVersionCache) Set(_ context.Context, id string, version int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[id] = version
	return nil
}

func (c *mapVersionCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.versions, id)
	return nil
}
