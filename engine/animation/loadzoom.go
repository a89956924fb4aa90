package animation

import (
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
)

// SweepDirection picks the orbital axis of the load zoom-sweep.
type SweepDirection int

const (
	// SweepLeft orbits the camera leftward around the up axis.
	SweepLeft SweepDirection = iota
	// SweepRight orbits the camera rightward around the up axis.
	SweepRight
	// SweepUp orbits the camera upward around the right axis.
	SweepUp
	// SweepDown orbits the camera downward around the right axis.
	SweepDown
)

// minLoadZoomRadius is the camera-to-target distance below which the sweep
// geometry degenerates and the animation refuses to start.
const minLoadZoomRadius = 0.01

// LoadZoomOptions configures the zoom-sweep played when an asset finishes
// loading. Zero-value fields fall back to the "medium" preset.
type LoadZoomOptions struct {
	// SweepDegrees is the angular offset the camera starts from.
	SweepDegrees float32
	// ZoomFactor scales the starting orbit radius (1.05 starts 5% out).
	ZoomFactor float32
	// Duration is the total animation time.
	Duration time.Duration
	// Direction picks the sweep axis and sign.
	Direction SweepDirection
	// Ease shapes progress; defaults to EaseOutCubic.
	Ease Easing
	// OnComplete fires on natural completion only, never on cancellation.
	OnComplete func()
}

// LoadZoomPreset returns the named intro preset.
//
// Parameters:
//   - name: "subtle", "medium" or "dramatic"
//
// Returns:
//   - LoadZoomOptions: the preset values
//   - bool: false if the name is unknown
func LoadZoomPreset(name string) (LoadZoomOptions, bool) {
	switch name {
	case "subtle":
		return LoadZoomOptions{SweepDegrees: 4, ZoomFactor: 1.02, Duration: 1200 * time.Millisecond}, true
	case "medium":
		return LoadZoomOptions{SweepDegrees: 8, ZoomFactor: 1.05, Duration: 1800 * time.Millisecond}, true
	case "dramatic":
		return LoadZoomOptions{SweepDegrees: 14, ZoomFactor: 1.12, Duration: 2600 * time.Millisecond}, true
	default:
		return LoadZoomOptions{}, false
	}
}

// LoadZoomDriver plays the intro sweep: the camera starts angularly offset
// and slightly zoomed out, then converges on the asset's rest framing. User
// interaction is suppressed for the duration, but an interaction attempt
// still cancels the animation through the controller's interaction-start
// callback, leaving the camera wherever the sweep last put it.
type LoadZoomDriver struct {
	coord *Coordinator
	ctrl  camera.OrbitController

	mu    sync.Mutex
	token *Token
}

// NewLoadZoomDriver creates a load-zoom driver.
//
// Parameters:
//   - coord: the transition coordinator (must not be nil)
//   - ctrl: the orbit controller whose camera is animated
//
// Returns:
//   - *LoadZoomDriver: the newly created driver
func NewLoadZoomDriver(coord *Coordinator, ctrl camera.OrbitController) *LoadZoomDriver {
	return &LoadZoomDriver{coord: coord, ctrl: ctrl}
}

// Start begins the zoom-sweep from the camera's current rest framing. Any
// in-flight animation is revoked first. Returns nil without taking ownership
// when the geometry is degenerate (camera on top of the target).
//
// Parameters:
//   - opts: animation options (zero-value fields use the "medium" preset)
//
// Returns:
//   - *Token: the running animation's token, or nil if it did not start
func (d *LoadZoomDriver) Start(opts LoadZoomOptions) *Token {
	if d.ctrl == nil {
		return nil
	}
	def, _ := LoadZoomPreset("medium")
	opts.SweepDegrees = common.Coalesce(opts.SweepDegrees, def.SweepDegrees)
	opts.ZoomFactor = common.Coalesce(opts.ZoomFactor, def.ZoomFactor)
	if opts.Duration <= 0 {
		opts.Duration = def.Duration
	}
	ease := opts.Ease
	if ease == nil {
		ease = EaseOutCubic
	}

	tok := newToken(KindLoadZoom, opts.Duration)
	tok.onComplete = opts.OnComplete
	cam := d.ctrl.Camera()

	var (
		target     common.Vec3
		baseOffset common.Vec3
		axis       common.Vec3
		angle      float32
	)

	capture := func() bool {
		target = d.ctrl.Target()
		baseOffset = common.Sub3(cam.Position(), target)
		if common.Length3(baseOffset) <= minLoadZoomRadius {
			return false
		}

		forward := common.Normalize3(common.Scale3(baseOffset, -1))
		up := cam.Up()
		sign := float32(1)
		switch opts.Direction {
		case SweepRight:
			axis = common.Normalize3(up)
			sign = -1
		case SweepUp:
			axis = common.SafeRightAxis(forward, up)
		case SweepDown:
			axis = common.SafeRightAxis(forward, up)
			sign = -1
		default: // SweepLeft
			axis = common.Normalize3(up)
		}
		angle = opts.SweepDegrees * (math32.Pi / 180.0) * sign

		// Suppress interaction and relax the orbit limits so the sweep's
		// intermediate framings cannot be clamped mid-flight. Both are
		// restored whether the sweep completes or is cancelled.
		wasEnabled := d.ctrl.Enabled()
		minAz, maxAz := d.ctrl.AzimuthLimits()
		minPol, maxPol := d.ctrl.PolarLimits()
		d.ctrl.SetEnabled(false)
		d.ctrl.SetAzimuthLimits(math32.Inf(-1), math32.Inf(1))
		d.ctrl.SetPolarLimits(0, math32.Pi)

		tok.onFinalize = func(bool) {
			d.ctrl.SetEnabled(wasEnabled)
			d.ctrl.SetAzimuthLimits(minAz, maxAz)
			d.ctrl.SetPolarLimits(minPol, maxPol)
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

		// Remaining fraction of the sweep: the camera converges on the rest
		// framing as rem goes to zero.
		rem := 1 - ease(t)
		rotated := common.RotateAround(baseOffset, axis, angle*rem)
		scale := 1 + (opts.ZoomFactor-1)*rem
		cam.SetPosition(common.Add3(target, common.Scale3(rotated, scale)))
		cam.LookAt(target)

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

// Cancel revokes the sweep if it is still running. The camera holds at its
// last-written framing; interaction and orbit limits are restored.
func (d *LoadZoomDriver) Cancel() {
	d.mu.Lock()
	tok := d.token
	d.mu.Unlock()
	d.coord.cancel(tok)
}

// Running reports whether the sweep currently owns the camera.
//
// Returns:
//   - bool: true while the sweep is in flight
func (d *LoadZoomDriver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.token != nil
}
