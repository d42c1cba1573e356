package sitelock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameNameSerializes(t *testing.T) {
	reg := NewRegistry()
	var active, maxActive int32
	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := reg.Lock(context.Background(), "portfolio")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			defer unlock()
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, reg.Len(), "idle entries must be removed")
}

func TestDifferentNamesDoNotBlock(t *testing.T) {
	reg := NewRegistry()
	unlockA, err := reg.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := reg.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestLockHonorsContext(t *testing.T) {
	reg := NewRegistry()
	unlock, err := reg.Lock(context.Background(), "site")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = reg.Lock(ctx, "site")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.Equal(t, 0, reg.Len())
}

func TestTryLock(t *testing.T) {
	reg := NewRegistry()
	unlock, ok := reg.TryLock("site")
	require.True(t, ok)

	_, ok = reg.TryLock("site")
	assert.False(t, ok)

	unlock()
	unlock() // second call is a no-op
	again, ok := reg.TryLock("site")
	require.True(t, ok)
	again()
}
