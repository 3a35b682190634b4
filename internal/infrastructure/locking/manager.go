package locking

import (
	"context"
	"sync"
	"time"

	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/infrastructure/metrics"
)

// DefaultAcquireTimeout bounds the wait for a contended account lock.
const DefaultAcquireTimeout = 5 * time.Second

// Manager implements usecase.LockManager with one semaphore per account
// identifier. Pair locks are acquired in lexicographic id order regardless
// of transfer direction, so transfers over the same pair serialize and
// transfers over disjoint pairs run concurrently.
type Manager struct {
	mu             sync.Mutex
	sems           map[string]chan struct{}
	acquireTimeout time.Duration
}

// NewManager creates a new Manager. A non-positive timeout falls back to
// DefaultAcquireTimeout.
func NewManager(acquireTimeout time.Duration) *Manager {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}

	return &Manager{
		sems:           make(map[string]chan struct{}),
		acquireTimeout: acquireTimeout,
	}
}

// WithLockedPair runs fn while holding exclusive locks on both identifiers.
// Both locks are released on every exit path. A bounded wait that elapses
// returns domain.ErrLockTimeout; context cancellation during the wait
// returns ctx.Err() with nothing left held.
func (m *Manager) WithLockedPair(ctx context.Context, idA, idB string, fn func() error) error {
	if idA == idB {
		return m.WithLocked(ctx, idA, fn)
	}

	first, second := idA, idB
	if second < first {
		first, second = second, first
	}

	start := time.Now()

	if err := m.acquire(ctx, first); err != nil {
		return err
	}

	if err := m.acquire(ctx, second); err != nil {
		m.release(first)
		return err
	}

	metrics.LockWaitDuration.Observe(time.Since(start).Seconds())

	defer func() {
		m.release(second)
		m.release(first)
	}()

	return fn()
}

// WithLocked runs fn while holding an exclusive lock on a single identifier.
// Account deletion uses it to serialize against in-flight transfers.
func (m *Manager) WithLocked(ctx context.Context, id string, fn func() error) error {
	start := time.Now()

	if err := m.acquire(ctx, id); err != nil {
		return err
	}

	metrics.LockWaitDuration.Observe(time.Since(start).Seconds())

	defer m.release(id)

	return fn()
}

func (m *Manager) acquire(ctx context.Context, id string) error {
	sem := m.semFor(id)

	// Fast path: uncontended.
	select {
	case sem <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(m.acquireTimeout)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		return nil
	case <-timer.C:
		metrics.LockTimeouts.Inc()
		return domain.ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) release(id string) {
	<-m.semFor(id)
}

func (m *Manager) semFor(id string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	sem, ok := m.sems[id]
	if !ok {
		sem = make(chan struct{}, 1)
		m.sems[id] = sem
	}

	return sem
}
