package animation

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/splat-go/engine/frame"
)

// PauseListener is notified when discrete transitions take and release
// camera ownership. The immersive device-orientation driver registers one
// so it can pause its event handling while a transition is in flight and
// re-baseline when the camera comes to rest.
type PauseListener interface {
	// TransitionStarted fires when camera ownership goes from free to held.
	TransitionStarted()
	// TransitionFinished fires when camera ownership is released and no
	// successor took it synchronously.
	TransitionFinished()
}

// Coordinator enforces the single-writer rule over the shared camera state:
// it holds the one "current camera owner" slot, and any driver wishing to
// animate first requests ownership, which synchronously revokes the
// previous owner (running its finalizer) before the new driver reads its
// starting state. Cancellation is compare-and-null on the owner slot, so an
// already-scheduled tick of a revoked animation sees it is no longer the
// owner and becomes a no-op - no kill signal needs to reach it.
type Coordinator struct {
	mu sync.Mutex

	scheduler frame.Scheduler
	redraw    func()

	owner     *Token
	listeners []PauseListener
}

// NewCoordinator creates a coordinator over the given frame scheduler.
//
// Parameters:
//   - scheduler: the per-frame scheduling primitive (must not be nil)
//   - redraw: the redraw-request signal consumed by the renderer (may be
//     nil in tests)
//
// Returns:
//   - *Coordinator: the newly created coordinator
func NewCoordinator(scheduler frame.Scheduler, redraw func()) *Coordinator {
	return &Coordinator{
		scheduler: scheduler,
		redraw:    redraw,
	}
}

// Scheduler returns the frame scheduler the drivers run on.
//
// Returns:
//   - frame.Scheduler: the scheduler
func (c *Coordinator) Scheduler() frame.Scheduler {
	return c.scheduler
}

// AddPauseListener registers a listener for ownership changes.
//
// Parameters:
//   - l: the listener to register
func (c *Coordinator) AddPauseListener(l PauseListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Owner reports the kind of the animation currently holding the camera.
//
// Returns:
//   - Kind: the owner's kind (zero value when free)
//   - bool: false if no animation holds the camera
func (c *Coordinator) Owner() (Kind, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner == nil {
		return 0, false
	}
	return c.owner.kind, true
}

// CancelAll revokes whatever animation currently owns the camera. The
// camera holds at its last-written state.
func (c *Coordinator) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner == nil {
		return
	}
	c.revokeOwnerLocked()
	c.notifyFinishedLocked()
}

// requestRedraw signals the renderer that camera state changed this frame.
func (c *Coordinator) requestRedraw() {
	if c.redraw != nil {
		c.redraw()
	}
}

// own installs tok as the camera owner, synchronously revoking the previous
// owner first. Between the revocation and the first scheduled tick it runs
// capture (the driver's start-state read and endpoint computation), so the
// new animation starts exactly where the cancelled one left the camera.
// The tick is scheduled under the lock: no frame can fire in the gap.
//
// Returns false if capture aborted the start (degenerate geometry, missing
// collaborators); ownership is then left free.
func (c *Coordinator) own(tok *Token, capture func() bool, tick func(now time.Duration)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasOwned := c.owner != nil
	c.revokeOwnerLocked()

	if capture != nil && !capture() {
		if wasOwned {
			c.notifyFinishedLocked()
		}
		return false
	}

	tok.state = StateRunning
	c.owner = tok
	tok.handle = c.scheduler.Schedule(tick)

	if !wasOwned {
		for _, l := range c.listeners {
			l.TransitionStarted()
		}
	}
	return true
}

// cancel revokes tok if it is still the live owner. Safe to call with a
// stale or nil token; only the current owner is affected.
func (c *Coordinator) cancel(tok *Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tok == nil || c.owner != tok {
		return
	}
	c.revokeOwnerLocked()
	c.notifyFinishedLocked()
}

// isLiveLocked reports whether tok is still the running owner. Drivers call
// this at the top of every tick; false means the tick was orphaned by a
// cancellation and must return without re-registering.
// Caller must hold the mutex.
func (c *Coordinator) isLiveLocked(tok *Token) bool {
	return tok != nil && c.owner == tok && tok.state == StateRunning
}

// completeLocked marks tok naturally finished, releases ownership, runs its
// finalizer, and closes its done channel. Returns the completion callback
// for the driver to invoke after releasing the mutex (it may start a
// follow-up animation).
// Caller must hold the mutex.
func (c *Coordinator) completeLocked(tok *Token) func() {
	if c.owner != tok {
		return nil
	}
	tok.state = StateCompleted
	c.owner = nil
	if tok.onFinalize != nil {
		tok.onFinalize(false)
	}
	close(tok.done)
	c.notifyFinishedLocked()
	return tok.onComplete
}

// revokeOwnerLocked cancels the current owner: removes its pending frame
// callback, runs its finalizer, and closes its done channel. The camera is
// left exactly where the cancelled animation last wrote it.
// Caller must hold the mutex.
func (c *Coordinator) revokeOwnerLocked() {
	tok := c.owner
	if tok == nil {
		return
	}
	c.owner = nil
	c.scheduler.Cancel(tok.handle)
	tok.state = StateCancelled
	if tok.onFinalize != nil {
		tok.onFinalize(true)
	}
	close(tok.done)
}

// notifyFinishedLocked tells pause listeners the camera is at rest.
// Caller must hold the mutex.
func (c *Coordinator) notifyFinishedLocked() {
	for _, l := range c.listeners {
		l.TransitionFinished()
	}
}
