package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrBusy is returned by TryAcquire while another session is held.
	ErrBusy = errors.New("another scan session is active")

	// ErrReleased is returned when a released session is used.
	ErrReleased = errors.New("scan session already released")
)

// slot admits one session per process. The engine changes the working
// directory and keeps per-scan state, so scans must not overlap.
var slot = make(chan struct{}, 1)

// Session is the exclusive right to run scans. Obtain one with Acquire or
// TryAcquire and Release it when done.
type Session struct {
	mu       sync.Mutex
	released atomic.Bool
}

// Acquire blocks until no other session is held or ctx is done.
func Acquire(ctx context.Context) (*Session, error) {
	select {
	case slot <- struct{}{}:
		return &Session{}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryAcquire returns ErrBusy instead of waiting.
func TryAcquire() (*Session, error) {
	select {
	case slot <- struct{}{}:
		return &Session{}, nil
	default:
		return nil, ErrBusy
	}
}

// Release gives up the session. Calling it more than once is harmless.
func (s *Session) Release() {
	if s.released.CompareAndSwap(false, true) {
		<-slot
	}
}

// Run performs one scan, invoking hooks at each protocol point. Scans on
// one session run one after another.
func (s *Session) Run(ctx context.Context, cfg Config, hooks Hooks) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released.Load() {
		return Result{Err: ErrReleased}
	}
	return run(ctx, cfg, hooks)
}
