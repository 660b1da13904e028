package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data     map[string]*domain.Checkpoint
	mu       sync.Mutex
	inFlight int
	maxSeen  int
}

func (s *SlowStore) enter() {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.maxSeen {
		s.maxSeen = s.inFlight
	}
	s.mu.Unlock()
	time.Sleep(5 * time.Millisecond)
}

func (s *SlowStore) leave() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, cp *domain.Checkpoint) error {
	s.enter()
	defer s.leave()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]*domain.Checkpoint)
	}
	s.data[sessionID] = cp.Clone()
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.Checkpoint, error) {
	s.enter()
	defer s.leave()
	s.mu.Lock()
	defer s.mu.Unlock()
	if cp, ok := s.data[sessionID]; ok {
		return cp.Clone(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, manager.Save(ctx, domain.NewCheckpoint(id, "Order", []string{"yes"})))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.maxSeen, "saves of one session must not overlap")
}

func TestManager_LoadOrStart(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cp, err := manager.LoadOrStart(ctx, id, "Order")
			assert.NoError(t, err)
			assert.NotNil(t, cp)
		}()
	}
	wg.Wait()

	cp, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Order", cp.TypeName)
	assert.Empty(t, cp.Answers)

	_, err = manager.LoadOrStart(ctx, id, "Invoice")
	assert.ErrorContains(t, err, "not a Invoice")
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := memory.NewLocker()
	store := memory.NewStore()
	ctx := context.Background()

	a := session.NewManager(store, session.WithLocker(locker))
	b := session.NewManager(store, session.WithLocker(locker), session.WithLockTTL(time.Minute))

	entered := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = a.WithLock(ctx, "shared", func(context.Context) error {
			close(entered)
			<-done
			return nil
		})
	}()
	<-entered

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := b.Save(short, domain.NewCheckpoint("shared", "", nil))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(done)
	require.Eventually(t, func() bool {
		return b.Save(ctx, domain.NewCheckpoint("shared", "", []string{"x"})) == nil
	}, time.Second, 10*time.Millisecond)

	ids, err := b.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, ids)
	assert.Same(t, store, b.Store())
}
