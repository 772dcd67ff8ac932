package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardMutualExclusionPerSlot(t *testing.T) {
	g := NewGuard()
	key := SlotKey{EventID: 1, SlotIndex: 0}

	const workers = 16
	var inSection, maxInSection int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := g.Acquire(context.Background(), key)
			require.NoError(t, err)
			defer release()

			mu.Lock()
			inSection++
			if inSection > maxInSection {
				maxInSection = inSection
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inSection--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInSection, "at most one holder per slot at a time")
}

func TestGuardIndependentSlots(t *testing.T) {
	g := NewGuard()

	releaseA, err := g.Acquire(context.Background(), SlotKey{EventID: 1, SlotIndex: 0})
	require.NoError(t, err)
	defer releaseA()

	// A different slot of the same event must not block.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := g.Acquire(ctx, SlotKey{EventID: 1, SlotIndex: 1})
	require.NoError(t, err)
	releaseB()
}

func TestGuardWaiterAbortsOnContext(t *testing.T) {
	g := NewGuard()
	key := SlotKey{EventID: 2, SlotIndex: 0}

	release, err := g.Acquire(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = g.Acquire(ctx, key)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The holder is unaffected and can still release.
	release()

	// After the failed wait and the release, the slot is free again.
	release2, err := g.Acquire(context.Background(), key)
	require.NoError(t, err)
	release2()
}

func TestGuardReleaseIsIdempotent(t *testing.T) {
	g := NewGuard()
	key := SlotKey{EventID: 3, SlotIndex: 0}

	release, err := g.Acquire(context.Background(), key)
	require.NoError(t, err)
	release()
	release() // second call must be a no-op

	release2, err := g.Acquire(context.Background(), key)
	require.NoError(t, err)
	release2()
}

func TestGuardTableCleanup(t *testing.T) {
	g := NewGuard()
	key := SlotKey{EventID: 4, SlotIndex: 0}

	release, err := g.Acquire(context.Background(), key)
	require.NoError(t, err)
	release()

	g.mu.Lock()
	defer g.mu.Unlock()
	assert.Empty(t, g.slots, "entry removed once nobody holds or waits")
}
