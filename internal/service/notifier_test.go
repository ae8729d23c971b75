package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierRunsJobs(t *testing.T) {
	n := NewNotifier(4)
	n.Start(context.Background())

	var ran atomic.Int32
	done := make(chan struct{})
	id := n.Enqueue("test job", func() error {
		ran.Add(1)
		close(done)
		return nil
	})
	require.NotEmpty(t, id)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
	n.Stop()
	assert.Equal(t, int32(1), ran.Load())
}

func TestNotifierStopDrainsBacklog(t *testing.T) {
	n := NewNotifier(16)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		require.NotEmpty(t, n.Enqueue("backlog", func() error {
			ran.Add(1)
			return nil
		}))
	}

	// Start after enqueuing so Stop has a real backlog to drain.
	n.Start(context.Background())
	n.Stop()
	assert.Equal(t, int32(10), ran.Load())
}

func TestNotifierDropsWhenQueueFull(t *testing.T) {
	n := NewNotifier(1)
	// Not started: the single slot fills and the second job has nowhere to go.
	require.NotEmpty(t, n.Enqueue("first", func() error { return nil }))
	assert.Empty(t, n.Enqueue("second", func() error { return nil }))

	n.Start(context.Background())
	n.Stop()
}

func TestNotifierJobErrorDoesNotStopWorker(t *testing.T) {
	n := NewNotifier(4)
	n.Start(context.Background())

	var ran atomic.Int32
	n.Enqueue("failing", func() error { return errors.New("boom") })
	n.Enqueue("after failure", func() error {
		ran.Add(1)
		return nil
	})
	n.Stop()
	assert.Equal(t, int32(1), ran.Load())
}
