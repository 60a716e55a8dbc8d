package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/infobot/pkg/adapters/memory"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/ports"
	"github.com/aretw0/infobot/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// SlowStore simulates latency to provoke lost updates if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Load(ctx, sessionID)
}

func (s SlowStore) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Save(ctx, sessionID, sess)
}

func TestManager_TurnsAreSerialized(t *testing.T) {
	store := SlowStore{memory.NewStore()}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	var wg sync.WaitGroup
	turns := 20
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Turn(ctx, id, func(s *domain.Session) {
				s.Append("ping", "pong")
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, loaded.Transcript, turns, "read-modify-write must not lose turns")
}

func TestManager_LoadOrStart(t *testing.T) {
	store := SlowStore{memory.NewStore()}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	var created int
	var mu sync.Mutex
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, existed, err := manager.LoadOrStart(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, s)
			if !existed {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created, "exactly one caller creates the session")
	s, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeNormal, s.PendingMode)
	assert.False(t, s.HasFocus())
}

func TestManager_LoadMissing(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	_, err := manager.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	return nil, errors.New("boom")
}

type countingLocker struct {
	mu       sync.Mutex
	locked   int
	unlocked int
	ttl      time.Duration
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	l.locked++
	l.ttl = ttl
	l.mu.Unlock()
	return func(ctx context.Context) error {
		l.mu.Lock()
		l.unlocked++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("Lock and unlock around each turn", func(t *testing.T) {
		locker := &countingLocker{}
		manager := session.NewManager(memory.NewStore(),
			session.WithLocker(locker),
			session.WithLockTTL(5*time.Second),
		)

		_, err := manager.Turn(ctx, "s", func(s *domain.Session) {})
		require.NoError(t, err)
		assert.Equal(t, 1, locker.locked)
		assert.Equal(t, 1, locker.unlocked)
		assert.Equal(t, 5*time.Second, locker.ttl)
	})

	t.Run("Lock failure aborts the turn", func(t *testing.T) {
		store := memory.NewStore()
		manager := session.NewManager(store, session.WithLocker(failingLocker{}))

		called := false
		_, err := manager.Turn(ctx, "s", func(s *domain.Session) { called = true })
		assert.Error(t, err)
		assert.False(t, called)

		_, err = store.Load(ctx, "s")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
