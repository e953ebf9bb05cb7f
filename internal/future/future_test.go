package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture_ResolveOnce(t *testing.T) {
	f := New[string]()
	require.NotEmpty(t, f.ID)

	assert.True(t, f.Resolve("tok-1"))
	assert.False(t, f.Resolve("tok-2"))
	assert.False(t, f.Reject(errors.New("late")))

	value, err := f.Wait(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", value)
}

func TestFuture_ConcurrentResolve(t *testing.T) {
	f := New[int]()
	var wg sync.WaitGroup
	results := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			results <- f.Resolve(v)
		}(i)
	}
	wg.Wait()
	close(results)
	winners := 0
	for ok := range results {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestFuture_Cancel(t *testing.T) {
	f := New[string]()
	assert.True(t, f.Cancel())
	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.False(t, f.Resolve("tok"))
}

func TestFuture_WaitContext(t *testing.T) {
	f := New[string]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-f.Done():
		t.Fatal("future should still be pending")
	default:
	}
	assert.True(t, f.Resolve("tok"))
}
