package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/quill/pkg/domain"
)

// ErrEmptySessionID is returned when a checkpoint is addressed without an id.
var ErrEmptySessionID = errors.New("sessionID cannot be empty")

// Store keeps answer logs in process memory, e.g. for tests or for builds
// that only need undo across a single run. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	logs map[string]domain.Checkpoint
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{logs: map[string]domain.Checkpoint{}}
}

func (s *Store) Save(ctx context.Context, sessionID string, cp *domain.Checkpoint) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	c := cp.Clone()
	s.mu.Lock()
	s.logs[sessionID] = *c
	s.mu.Unlock()
	return nil
}

// Load returns a copy of the stored checkpoint.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Checkpoint, error) {
	s.mu.RLock()
	cp, ok := s.logs[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cp.Clone(), nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.logs, sessionID)
	s.mu.Unlock()
	return nil
}

// List returns the stored session ids in order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.logs)), nil
}
