// Package frame provides the per-frame scheduling primitive used by the
// animation drivers. Callbacks are one-shot: a driver that wants to run on
// the next frame as well re-registers itself from inside its callback. This
// mirrors how the drivers cancel - a cancelled driver's already-scheduled
// callback fires once, sees its token is no longer live, and does not
// re-register.
package frame

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback for cancellation. The zero value is
// never issued.
type Handle uint64

// Scheduler registers callbacks to run on the next frame. Implementations
// must deliver a monotonically increasing timestamp to each callback.
type Scheduler interface {
	// Schedule registers fn to run once on the next frame.
	//
	// Parameters:
	//   - fn: callback receiving the frame timestamp (monotonic, measured
	//     from an arbitrary fixed origin)
	//
	// Returns:
	//   - Handle: cancellation handle for the registration
	Schedule(fn func(now time.Duration)) Handle

	// Cancel removes a pending registration. Cancelling an already-fired or
	// unknown handle is a no-op.
	//
	// Parameters:
	//   - handle: the registration to remove
	Cancel(handle Handle)
}

// TickScheduler is the production Scheduler, stepped once per engine tick.
// It is also stepped directly in tests to drive animations deterministically.
type TickScheduler struct {
	mu      sync.Mutex
	nextID  Handle
	pending map[Handle]func(now time.Duration)

	// firing is reused across Steps to avoid a per-frame allocation.
	firing []func(now time.Duration)
}

var _ Scheduler = &TickScheduler{}

// NewTickScheduler creates an empty TickScheduler.
//
// Returns:
//   - *TickScheduler: the newly created scheduler
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{
		pending: make(map[Handle]func(now time.Duration)),
	}
}

func (s *TickScheduler) Schedule(fn func(now time.Duration)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.pending[s.nextID] = fn
	return s.nextID
}

func (s *TickScheduler) Cancel(handle Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, handle)
}

// Pending returns the number of callbacks waiting for the next Step.
//
// Returns:
//   - int: count of pending registrations
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Step fires every callback registered before this call, passing now as the
// frame timestamp. Callbacks registered during Step (self-re-registration)
// run on the next Step, not this one. The timestamp must not decrease
// between calls.
//
// Parameters:
//   - now: the frame timestamp
func (s *TickScheduler) Step(now time.Duration) {
	s.mu.Lock()
	s.firing = s.firing[:0]
	for id, fn := range s.pending {
		s.firing = append(s.firing, fn)
		delete(s.pending, id)
	}
	s.mu.Unlock()

	for _, fn := range s.firing {
		fn(now)
	}
}
