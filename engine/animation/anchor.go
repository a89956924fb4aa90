package animation

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
)

const (
	defaultAnchorDuration = 500 * time.Millisecond
	// anchorSnapDistance is the threshold below which a re-target is applied
	// immediately instead of animated.
	anchorSnapDistance = 1e-5
)

// AnchorOptions configures an anchor re-target.
type AnchorOptions struct {
	// Duration of the glide. Defaults to 500ms.
	Duration time.Duration
	// Ease shapes progress; defaults to EaseInOutQuad.
	Ease Easing
	// OnComplete fires on natural completion (synchronously for snaps).
	OnComplete func()
}

// AnchorDriver glides the orbit target to a new anchor point. Only the
// target moves; the camera stays in place and re-aims each frame, so the
// orbit radius and angles land wherever the new offset puts them.
type AnchorDriver struct {
	coord *Coordinator
	ctrl  camera.OrbitController

	mu    sync.Mutex
	token *Token
}

// NewAnchorDriver creates an anchor re-target driver.
//
// Parameters:
//   - coord: the transition coordinator (must not be nil)
//   - ctrl: the orbit controller whose target is animated
//
// Returns:
//   - *AnchorDriver: the newly created driver
func NewAnchorDriver(coord *Coordinator, ctrl camera.OrbitController) *AnchorDriver {
	return &AnchorDriver{coord: coord, ctrl: ctrl}
}

// Start glides the orbit target to anchor. If the anchor is effectively the
// current target, it is applied immediately: no animation starts, no
// ownership is taken, and OnComplete runs synchronously.
//
// Parameters:
//   - anchor: the new world-space orbit target
//   - opts: animation options
//
// Returns:
//   - *Token: the running animation's token, or nil for the snap path
func (d *AnchorDriver) Start(anchor common.Vec3, opts AnchorOptions) *Token {
	if d.ctrl == nil {
		return nil
	}
	if opts.Duration <= 0 {
		opts.Duration = defaultAnchorDuration
	}
	ease := opts.Ease
	if ease == nil {
		ease = EaseInOutQuad
	}

	if common.Dist3(d.ctrl.Target(), anchor) < anchorSnapDistance {
		d.ctrl.SetTarget(anchor)
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return nil
	}

	tok := newToken(KindAnchor, opts.Duration)
	tok.onComplete = opts.OnComplete

	var from common.Vec3

	capture := func() bool {
		from = d.ctrl.Target()
		tok.onFinalize = func(bool) {
			d.mu.Lock()
			if d.token == tok {
				d.token = nil
			}
			d.mu.Unlock()
		}
		d.mu.Lock()
		d.token = tok
		d.mu.Unlock()
		return true
	}

	var tick func(now time.Duration)
	tick = func(now time.Duration) {
		c := d.coord
		c.mu.Lock()
		if !c.isLiveLocked(tok) {
			c.mu.Unlock()
			return
		}
		if tok.started < 0 {
			tok.started = now
		}
		t := float32(1)
		if tok.duration > 0 {
			t = common.Clamp01(float32(now-tok.started) / float32(tok.duration))
		}

		d.ctrl.SetTarget(common.Lerp3(from, anchor, ease(t)))

		if t >= 1 {
			onComplete := c.completeLocked(tok)
			c.mu.Unlock()
			c.requestRedraw()
			if onComplete != nil {
				onComplete()
			}
			return
		}
		tok.handle = c.scheduler.Schedule(tick)
		c.mu.Unlock()
		c.requestRedraw()
	}

	if !d.coord.own(tok, capture, tick) {
		return nil
	}
	return tok
}

// Cancel revokes the glide if it is still running. The target holds at its
// last interpolated position.
func (d *AnchorDriver) Cancel() {
	d.mu.Lock()
	tok := d.token
	d.mu.Unlock()
	d.coord.cancel(tok)
}
