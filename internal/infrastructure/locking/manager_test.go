package locking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestionbanque/bankcore/internal/domain"
)

func TestWithLockedPairMutualExclusion(t *testing.T) {
	m := NewManager(time.Second)

	var (
		wg      sync.WaitGroup
		counter int
	)

	// Without mutual exclusion the unsynchronized increment below would
	// race; with it, the final count is exact.
	const workers = 50

	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()

			err := m.WithLockedPair(context.Background(), "acc-a", "acc-b", func() error {
				counter++
				return nil
			})
			require.NoError(t, err)
		}()
	}

	wg.Wait()
	require.Equal(t, workers, counter)
}

func TestWithLockedPairOppositeDirectionsNoDeadlock(t *testing.T) {
	m := NewManager(5 * time.Second)

	var wg sync.WaitGroup

	const rounds = 100

	wg.Add(2)

	go func() {
		defer wg.Done()
		for range rounds {
			_ = m.WithLockedPair(context.Background(), "acc-a", "acc-b", func() error { return nil })
		}
	}()

	go func() {
		defer wg.Done()
		for range rounds {
			_ = m.WithLockedPair(context.Background(), "acc-b", "acc-a", func() error { return nil })
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("opposite-direction pair locking deadlocked")
	}
}

func TestWithLockedPairDisjointPairsRunConcurrently(t *testing.T) {
	m := NewManager(time.Second)

	inFirst := make(chan struct{})
	releaseFirst := make(chan struct{})

	go func() {
		_ = m.WithLockedPair(context.Background(), "acc-a", "acc-b", func() error {
			close(inFirst)
			<-releaseFirst
			return nil
		})
	}()

	<-inFirst

	// A disjoint pair must not wait on the held locks.
	done := make(chan error, 1)
	go func() {
		done <- m.WithLockedPair(context.Background(), "acc-c", "acc-d", func() error { return nil })
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("disjoint pair blocked behind unrelated locks")
	}

	close(releaseFirst)
}

func TestWithLockedPairTimeout(t *testing.T) {
	m := NewManager(50 * time.Millisecond)

	holding := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = m.WithLocked(context.Background(), "acc-a", func() error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding

	err := m.WithLockedPair(context.Background(), "acc-a", "acc-b", func() error { return nil })
	require.ErrorIs(t, err, domain.ErrLockTimeout)

	close(release)

	// After the holder releases, the same pair must be acquirable again,
	// proving the failed attempt left nothing held.
	require.Eventually(t, func() bool {
		return m.WithLockedPair(context.Background(), "acc-a", "acc-b", func() error { return nil }) == nil
	}, time.Second, 10*time.Millisecond)
}

func TestWithLockedPairSecondLockTimeoutReleasesFirst(t *testing.T) {
	m := NewManager(50 * time.Millisecond)

	holding := make(chan struct{})
	release := make(chan struct{})

	// Hold only the second lock in acquisition order.
	go func() {
		_ = m.WithLocked(context.Background(), "acc-b", func() error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding

	err := m.WithLockedPair(context.Background(), "acc-a", "acc-b", func() error { return nil })
	require.ErrorIs(t, err, domain.ErrLockTimeout)

	// acc-a must have been released on the failure path.
	err = m.WithLocked(context.Background(), "acc-a", func() error { return nil })
	require.NoError(t, err)

	close(release)
}

func TestWithLockedPairContextCancelled(t *testing.T) {
	m := NewManager(5 * time.Second)

	holding := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = m.WithLocked(context.Background(), "acc-a", func() error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := m.WithLockedPair(ctx, "acc-a", "acc-b", func() error { return nil })
	require.ErrorIs(t, err, context.Canceled)

	close(release)
}

func TestWithLockedPairReleasesOnError(t *testing.T) {
	m := NewManager(time.Second)

	wantErr := errors.New("operation failed")

	err := m.WithLockedPair(context.Background(), "acc-a", "acc-b", func() error { return wantErr })
	require.ErrorIs(t, err, wantErr)

	// Both locks must be free again.
	err = m.WithLockedPair(context.Background(), "acc-a", "acc-b", func() error { return nil })
	require.NoError(t, err)
}

func TestWithLockedPairSameID(t *testing.T) {
	m := NewManager(time.Second)

	err := m.WithLockedPair(context.Background(), "acc-a", "acc-a", func() error { return nil })
	require.NoError(t, err)
}
