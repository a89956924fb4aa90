// Package immersive maps device orientation (gyroscope) input onto the
// orbit camera so that physically tilting the device nudges the view around
// its current framing.
package immersive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
)

// ScreenOrientation is the display rotation the device events arrive in.
// Device axes are fixed to the hardware, so the handler remaps them per
// orientation to keep "tilt right" meaning "look right".
type ScreenOrientation int

const (
	PortraitPrimary ScreenOrientation = iota
	PortraitSecondary
	LandscapePrimary
	LandscapeSecondary
)

// Event is one device-orientation sample, in degrees.
type Event struct {
	// Alpha is rotation around the screen normal. Unused by the driver but
	// carried for sources that report it.
	Alpha float32
	// Beta is front-back tilt.
	Beta float32
	// Gamma is left-right tilt.
	Gamma float32
}

// Source abstracts the platform's device-orientation sensor: permission
// request, event delivery, and the current screen orientation.
type Source interface {
	// RequestPermission asks the platform for sensor access. Returns an
	// error when the user denies it or the sensor is unavailable.
	//
	// Parameters:
	//   - ctx: cancellation/timeout for the permission prompt
	//
	// Returns:
	//   - error: nil when access is granted
	RequestPermission(ctx context.Context) error

	// SetHandler installs the event callback (nil detaches).
	//
	// Parameters:
	//   - fn: callback invoked per orientation sample
	SetHandler(fn func(Event))

	// Orientation returns the current screen orientation.
	//
	// Returns:
	//   - ScreenOrientation: the display rotation
	Orientation() ScreenOrientation
}

// State is the driver's lifecycle state.
type State int

const (
	// StateInactive means the driver is off; events are not handled.
	StateInactive State = iota
	// StateActive means events steer the camera.
	StateActive
	// StatePaused means the driver is enabled but a discrete transition
	// owns the camera; events are dropped until it finishes.
	StatePaused
)

const (
	defaultSensitivity = 2.0
	minSensitivity     = 1.0
	maxSensitivity     = 5.0

	// defaultLimitDegrees is the soft excursion limit: tilt deltas are
	// squashed through tanh so the view never runs away from its framing.
	defaultLimitDegrees = 28.0
	// defaultSmoothing is the per-event exponential smoothing factor.
	defaultSmoothing = 0.18
	// tiltScale converts device degrees to view degrees before sensitivity.
	tiltScale = 0.6
)

// Driver steers the orbit camera from device-orientation events. The first
// event after (re)activation captures a fixed origin pose and the camera's
// spherical baseline; every later event is expressed as a wrapped delta from
// that origin, soft-clamped, smoothed, and reprojected around the baseline.
// Holding the device still therefore holds the view still, with no drift.
//
// The driver registers as a pause listener on the transition coordinator:
// while any discrete animation owns the camera it drops events, and when the
// camera comes to rest it re-baselines so the held device pose maps to the
// new framing.
type Driver struct {
	mu sync.Mutex

	ctrl   camera.OrbitController
	source Source

	state        State
	sensitivity  float32
	limitDegrees float32
	smoothing    float32

	hasOrigin         bool
	originBeta        float32
	originGamma       float32
	originOrientation ScreenOrientation
	baseline          common.Spherical
	smAzimuth         float32
	smPolar           float32
}

// NewDriver creates an immersive driver over the given controller and
// sensor source. It starts inactive.
//
// Parameters:
//   - ctrl: the orbit controller to steer (must not be nil)
//   - source: the platform sensor source (must not be nil)
//   - options: functional options to configure the driver
//
// Returns:
//   - *Driver: the newly created driver
func NewDriver(ctrl camera.OrbitController, source Source, options ...DriverOption) *Driver {
	d := &Driver{
		ctrl:         ctrl,
		source:       source,
		state:        StateInactive,
		sensitivity:  defaultSensitivity,
		limitDegrees: defaultLimitDegrees,
		smoothing:    defaultSmoothing,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// State returns the driver's lifecycle state.
//
// Returns:
//   - State: the current state
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Enabled reports whether the driver is on (active or paused).
//
// Returns:
//   - bool: true unless the driver is inactive
func (d *Driver) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state != StateInactive
}

// Enable requests sensor permission and, on success, attaches the event
// handler and activates the driver. A no-op when already enabled.
//
// Parameters:
//   - ctx: cancellation/timeout for the permission prompt
//
// Returns:
//   - error: non-nil when permission is denied or the sensor is unavailable
func (d *Driver) Enable(ctx context.Context) error {
	d.mu.Lock()
	if d.state != StateInactive {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	if err := d.source.RequestPermission(ctx); err != nil {
		return fmt.Errorf("device orientation permission: %w", err)
	}

	d.mu.Lock()
	d.state = StateActive
	d.hasOrigin = false
	d.mu.Unlock()

	d.source.SetHandler(d.handleEvent)
	return nil
}

// Disable detaches the event handler and deactivates the driver. The camera
// holds its current framing.
func (d *Driver) Disable() {
	d.source.SetHandler(nil)
	d.mu.Lock()
	d.state = StateInactive
	d.hasOrigin = false
	d.mu.Unlock()
}

// Toggle enables the driver if inactive, disables it otherwise.
//
// Parameters:
//   - ctx: cancellation/timeout for the permission prompt when enabling
//
// Returns:
//   - bool: the resulting enabled state
//   - error: non-nil when enabling failed (the driver stays inactive)
func (d *Driver) Toggle(ctx context.Context) (bool, error) {
	if d.Enabled() {
		d.Disable()
		return false, nil
	}
	if err := d.Enable(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// SetSensitivity updates the tilt-to-view gain at runtime. Clamped into
// [1, 5] when applied to events.
//
// Parameters:
//   - sensitivity: the gain multiplier
func (d *Driver) SetSensitivity(sensitivity float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sensitivity = sensitivity
}

// Recenter drops the captured origin so the next event re-baselines: the
// device's held pose becomes the new neutral, mapped to the camera's current
// framing.
func (d *Driver) Recenter() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hasOrigin = false
}

// RecenterWith pauses event handling, invokes fn (typically a camera
// transition back to a neutral framing), and resumes after duration with a
// fresh baseline so the device's held pose maps to the post-transition view.
// If fn starts a coordinator-owned transition, the pause listener may resume
// the driver earlier on its completion; the timer resume is then a no-op.
//
// Parameters:
//   - fn: the recenter transition to run while events are suppressed
//   - duration: how long to suppress events before resuming
func (d *Driver) RecenterWith(fn func(), duration time.Duration) {
	d.mu.Lock()
	if d.state != StateActive {
		d.mu.Unlock()
		return
	}
	d.state = StatePaused
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
	time.AfterFunc(duration, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.state == StatePaused {
			d.state = StateActive
			d.hasOrigin = false
		}
	})
}

// TransitionStarted implements the coordinator's pause listener: events are
// dropped while a discrete animation owns the camera.
func (d *Driver) TransitionStarted() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateActive {
		d.state = StatePaused
	}
}

// TransitionFinished resumes event handling and re-baselines against the
// camera's post-transition framing.
func (d *Driver) TransitionFinished() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StatePaused {
		d.state = StateActive
		d.hasOrigin = false
	}
}

// handleEvent processes one orientation sample.
func (d *Driver) handleEvent(e Event) {
	d.mu.Lock()
	if d.state != StateActive {
		d.mu.Unlock()
		return
	}

	o := d.source.Orientation()
	beta, gamma := remapAxes(e, o)

	// A display rotation invalidates the captured origin: the same physical
	// pose now remaps to different screen axes, so re-baseline instead of
	// interpreting the jump as a tilt.
	if d.hasOrigin && o != d.originOrientation {
		d.hasOrigin = false
	}

	if !d.hasOrigin {
		d.originBeta = beta
		d.originGamma = gamma
		d.originOrientation = o
		d.baseline = d.ctrl.Spherical()
		d.smAzimuth = 0
		d.smPolar = 0
		d.hasOrigin = true
		d.mu.Unlock()
		return
	}

	// Fixed-origin deltas, wrapped so a sensor crossing the +-180 seam does
	// not produce a view jump.
	dBeta := common.WrapDegrees180(beta - d.originBeta)
	dGamma := common.WrapDegrees180(gamma - d.originGamma)

	limit := d.limitDegrees
	dBeta = common.SoftClamp(dBeta, limit)
	dGamma = common.SoftClamp(dGamma, limit)

	gain := common.Clamp(d.sensitivity, minSensitivity, maxSensitivity) * tiltScale
	targetAz := dGamma * gain * (math32.Pi / 180.0)
	targetPol := -dBeta * gain * (math32.Pi / 180.0)

	d.smAzimuth += (targetAz - d.smAzimuth) * d.smoothing
	d.smPolar += (targetPol - d.smPolar) * d.smoothing

	s := common.Spherical{
		Radius:  d.baseline.Radius,
		Polar:   d.baseline.Polar + d.smPolar,
		Azimuth: d.baseline.Azimuth + d.smAzimuth,
	}
	d.mu.Unlock()

	// SetSpherical clamps to the controller's limits, which keep the polar
	// angle off the poles.
	d.ctrl.SetSpherical(s)
}

// remapAxes rotates the device axes into screen space.
func remapAxes(e Event, o ScreenOrientation) (beta, gamma float32) {
	switch o {
	case PortraitSecondary:
		return -e.Beta, -e.Gamma
	case LandscapePrimary:
		return e.Gamma, -e.Beta
	case LandscapeSecondary:
		return -e.Gamma, e.Beta
	default: // PortraitPrimary
		return e.Beta, e.Gamma
	}
}
