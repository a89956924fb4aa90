package animation

import (
	"time"

	"github.com/Carmen-Shannon/splat-go/engine/frame"
)

// Kind identifies an animation driver. At most one token per kind exists at
// a time, and all camera-owning kinds mutually exclude each other through
// the coordinator.
type Kind int

const (
	// KindLoadZoom is the zoom-sweep played when a new asset loads.
	KindLoadZoom Kind = iota
	// KindSlideOut is the first half of a gallery navigation.
	KindSlideOut
	// KindSlideIn is the second half of a gallery navigation.
	KindSlideIn
	// KindAnchor re-targets the orbit target to a new point.
	KindAnchor
	// KindReset restores a full saved camera state.
	KindReset
)

// TokenState is the lifecycle state of an animation token.
type TokenState int

const (
	// StateIdle means the token has been created but not yet started.
	StateIdle TokenState = iota
	// StateRunning means the token owns the camera and is ticking.
	StateRunning
	// StateCompleted means the animation reached t=1 naturally.
	StateCompleted
	// StateCancelled means the animation was revoked before completion.
	StateCancelled
)

// Token is the per-animation mutable record: the single source of truth for
// "is this animation running" and the cancellation handle. Created when a
// driver starts, detached on completion or cancellation. All fields are
// guarded by the coordinator's mutex.
type Token struct {
	kind  Kind
	state TokenState

	// started is the timestamp of the first tick, captured lazily so
	// scheduling jitter between Start() and the first frame does not bias
	// the animation clock. Negative until the first tick.
	started  time.Duration
	duration time.Duration

	handle frame.Handle

	// done is closed when the token leaves the Running state, whether by
	// completion or cancellation.
	done chan struct{}

	// onComplete runs only on natural completion, outside the coordinator
	// lock so it may start a follow-up animation.
	onComplete func()

	// onFinalize is the driver's cleanup (restore controller limits, stop
	// timers). Runs under the coordinator lock on both completion and
	// cancellation; it must not call back into the coordinator.
	onFinalize func(cancelled bool)
}

// newToken creates a token in the Idle state with the lazy-start sentinel.
func newToken(kind Kind, duration time.Duration) *Token {
	return &Token{
		kind:     kind,
		state:    StateIdle,
		started:  -1,
		duration: duration,
		done:     make(chan struct{}),
	}
}

// Kind returns the animation kind this token belongs to.
//
// Returns:
//   - Kind: the animation kind
func (t *Token) Kind() Kind {
	return t.kind
}

// Done returns a channel closed when the animation completes or is
// cancelled.
//
// Returns:
//   - <-chan struct{}: the completion channel
func (t *Token) Done() <-chan struct{} {
	return t.done
}
