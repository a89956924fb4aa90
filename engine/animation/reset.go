package animation

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
)

const defaultResetDuration = 700 * time.Millisecond

// SavedState is a full camera pose snapshot: everything the reset animation
// needs to return the viewer to a remembered framing.
type SavedState struct {
	Position    common.Vec3
	Target      common.Vec3
	Orientation common.Quat
	Fov         float32
	Near        float32
	Far         float32
	Zoom        float32
}

// CaptureState snapshots the current camera pose and orbit target.
//
// Parameters:
//   - ctrl: the orbit controller to snapshot
//
// Returns:
//   - SavedState: the captured pose
func CaptureState(ctrl camera.OrbitController) SavedState {
	cam := ctrl.Camera()
	return SavedState{
		Position:    cam.Position(),
		Target:      ctrl.Target(),
		Orientation: cam.Orientation(),
		Fov:         cam.Fov(),
		Near:        cam.Near(),
		Far:         cam.Far(),
		Zoom:        cam.Zoom(),
	}
}

// ResetOptions configures the smooth home reset.
type ResetOptions struct {
	// Duration of the glide. Defaults to 700ms.
	Duration time.Duration
	// Ease shapes progress; defaults to EaseInOutCubic.
	Ease Easing
	// OnComplete fires on natural completion only.
	OnComplete func()
}

// ResetDriver glides the camera from wherever the user has left it back to a
// saved pose: position and target interpolate linearly, orientation takes
// the shortest spherical arc, and the projection scalars (fov, clip planes,
// zoom) interpolate alongside so there is no projection pop at either end.
type ResetDriver struct {
	coord *Coordinator
	ctrl  camera.OrbitController

	mu    sync.Mutex
	token *Token
}

// NewResetDriver creates a home-reset driver.
//
// Parameters:
//   - coord: the transition coordinator (must not be nil)
//   - ctrl: the orbit controller whose camera is animated
//
// Returns:
//   - *ResetDriver: the newly created driver
func NewResetDriver(coord *Coordinator, ctrl camera.OrbitController) *ResetDriver {
	return &ResetDriver{coord: coord, ctrl: ctrl}
}

// Start glides the camera to the saved pose. The starting pose is captured
// after any in-flight animation is revoked, so the glide begins exactly
// where the camera currently sits.
//
// Parameters:
//   - saved: the pose to return to
//   - opts: animation options
//
// Returns:
//   - *Token: the running animation's token, or nil if it did not start
func (d *ResetDriver) Start(saved SavedState, opts ResetOptions) *Token {
	if d.ctrl == nil {
		return nil
	}
	if opts.Duration <= 0 {
		opts.Duration = defaultResetDuration
	}
	ease := opts.Ease
	if ease == nil {
		ease = EaseInOutCubic
	}

	tok := newToken(KindReset, opts.Duration)
	tok.onComplete = opts.OnComplete
	cam := d.ctrl.Camera()

	var from SavedState

	capture := func() bool {
		from = CaptureState(d.ctrl)
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
		p := ease(t)

		cam.SetPosition(common.Lerp3(from.Position, saved.Position, p))
		cam.SetOrientation(common.QuatSlerp(from.Orientation, saved.Orientation, p))
		cam.SetFov(common.Lerp(from.Fov, saved.Fov, p))
		cam.SetNear(common.Lerp(from.Near, saved.Near, p))
		cam.SetFar(common.Lerp(from.Far, saved.Far, p))
		cam.SetZoom(common.Lerp(from.Zoom, saved.Zoom, p))

		if t >= 1 {
			// Re-point the controller last: its look-at from the saved
			// position to the saved target reproduces the saved orientation.
			d.ctrl.SetTarget(saved.Target)
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

// Cancel revokes the glide if it is still running. The camera holds at its
// last interpolated pose.
func (d *ResetDriver) Cancel() {
	d.mu.Lock()
	tok := d.token
	d.mu.Unlock()
	d.coord.cancel(tok)
}
