package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ezscan/internal/engine"
)

func TestTryAcquireWhileHeld(t *testing.T) {
	s, err := engine.TryAcquire()
	require.NoError(t, err)

	_, err = engine.TryAcquire()
	require.ErrorIs(t, err, engine.ErrBusy)

	s.Release()
	s.Release() // second release is a no-op

	s2, err := engine.TryAcquire()
	require.NoError(t, err)
	s2.Release()
}

func TestAcquireHonorsContext(t *testing.T) {
	s, err := engine.Acquire(context.Background())
	require.NoError(t, err)
	defer s.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = engine.Acquire(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestScanAllWaitsForSession(t *testing.T) {
	m := standardTree(t)
	s, err := engine.Acquire(context.Background())
	require.NoError(t, err)

	done := make(chan engine.Result, 1)
	go func() {
		done <- engine.ScanAll(context.Background(), engine.Config{FS: m, Source: "/src"}, engine.HookFuncs{})
	}()

	select {
	case <-done:
		t.Fatal("ScanAll ran while another session was held")
	case <-time.After(50 * time.Millisecond):
	}

	s.Release()
	select {
	case res := <-done:
		assert.NoError(t, res.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("ScanAll did not proceed after release")
	}
}

func TestScanAllCanceledWhileWaiting(t *testing.T) {
	s, err := engine.Acquire(context.Background())
	require.NoError(t, err)
	defer s.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := engine.ScanAll(ctx, engine.Config{Source: "/"}, engine.HookFuncs{})
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestSessionRunsSequentialScans(t *testing.T) {
	m := standardTree(t)
	s, err := engine.Acquire(context.Background())
	require.NoError(t, err)
	defer s.Release()

	for i := 0; i < 2; i++ {
		res := s.Run(context.Background(), engine.Config{FS: m, Source: "/src", Recurse: true}, engine.HookFuncs{})
		require.NoError(t, res.Err)
		assert.Equal(t, int64(4), res.Stats.FilesMatched)
	}
}

func TestReleasedSessionRefusesRun(t *testing.T) {
	s, err := engine.Acquire(context.Background())
	require.NoError(t, err)
	s.Release()

	res := s.Run(context.Background(), engine.Config{Source: "/"}, engine.HookFuncs{})
	assert.ErrorIs(t, res.Err, engine.ErrReleased)
}
