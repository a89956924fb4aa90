package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/splat-go/common"
)

// polarEpsilon keeps the polar angle away from the exact poles, where the
// azimuth becomes undefined and the look-at up reference degenerates.
const polarEpsilon = 0.01

// orbitControllerImpl is the single implementation of OrbitController.
// It owns the orbit target and the user-interaction limits/speeds; the
// camera position it writes is derived from spherical coordinates around
// the target.
type orbitControllerImpl struct {
	mu *sync.Mutex

	cam Camera

	target  common.Vec3
	enabled bool

	// Orbit constraints. Azimuth limits may be +-Inf (unrestricted).
	minAzimuth float32
	maxAzimuth float32
	minPolar   float32
	maxPolar   float32
	minRadius  float32
	maxRadius  float32

	// Interaction speeds.
	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32
	damping     float32

	// Residual interaction velocity, decayed by Update when damping is set.
	velAzimuth float32
	velPolar   float32

	onStart func()
}

// OrbitController owns the orbit target (the point the camera conceptually
// looks at) and turns user input into orbital camera motion. Like the
// camera, it is shared mutable state: animation drivers retarget it by
// reference and rely on the transition coordinator for writer exclusivity.
type OrbitController interface {
	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera this controller writes to
	Camera() Camera

	// Target returns the orbit target point.
	//
	// Returns:
	//   - common.Vec3: world-space target position
	Target() common.Vec3

	// SetTarget moves the orbit target. The camera position is unchanged;
	// the camera is re-aimed at the new target. Spherical coordinates are
	// re-derived from the new offset on demand.
	//
	// Parameters:
	//   - t: world-space target position
	SetTarget(t common.Vec3)

	// Enabled reports whether user interaction currently moves the camera.
	//
	// Returns:
	//   - bool: true if interaction is enabled
	Enabled() bool

	// SetEnabled enables or disables user interaction. Interaction-start
	// notifications still fire while disabled (they drive animation
	// cancellation); only the resulting motion is suppressed.
	//
	// Parameters:
	//   - enabled: the new enabled state
	SetEnabled(enabled bool)

	// AzimuthLimits returns the min/max azimuth angles in radians.
	// Either bound may be infinite (unrestricted).
	//
	// Returns:
	//   - min, max: azimuth bounds in radians
	AzimuthLimits() (min, max float32)

	// SetAzimuthLimits sets the azimuth bounds in radians.
	//
	// Parameters:
	//   - min, max: azimuth bounds (may be +-Inf)
	SetAzimuthLimits(min, max float32)

	// PolarLimits returns the min/max polar angles in radians.
	//
	// Returns:
	//   - min, max: polar bounds in radians, within [0, Pi]
	PolarLimits() (min, max float32)

	// SetPolarLimits sets the polar bounds in radians, clamped to [0, Pi].
	//
	// Parameters:
	//   - min, max: polar bounds
	SetPolarLimits(min, max float32)

	// RadiusLimits returns the min/max orbit radius.
	//
	// Returns:
	//   - min, max: radius bounds
	RadiusLimits() (min, max float32)

	// SetRadiusLimits sets the orbit radius bounds.
	//
	// Parameters:
	//   - min, max: radius bounds
	SetRadiusLimits(min, max float32)

	// RotateSpeed returns the rotate sensitivity multiplier.
	//
	// Returns:
	//   - float32: multiplier applied to rotate input
	RotateSpeed() float32

	// SetRotateSpeed sets the rotate sensitivity multiplier.
	//
	// Parameters:
	//   - speed: multiplier applied to rotate input
	SetRotateSpeed(speed float32)

	// ZoomSpeed returns the zoom sensitivity multiplier.
	//
	// Returns:
	//   - float32: multiplier applied to zoom input
	ZoomSpeed() float32

	// SetZoomSpeed sets the zoom sensitivity multiplier.
	//
	// Parameters:
	//   - speed: multiplier applied to zoom input
	SetZoomSpeed(speed float32)

	// PanSpeed returns the pan sensitivity multiplier.
	//
	// Returns:
	//   - float32: multiplier applied to pan input
	PanSpeed() float32

	// SetPanSpeed sets the pan sensitivity multiplier.
	//
	// Parameters:
	//   - speed: multiplier applied to pan input
	SetPanSpeed(speed float32)

	// Damping returns the interaction damping factor (0 = none).
	//
	// Returns:
	//   - float32: per-second velocity decay factor
	Damping() float32

	// SetDamping sets the interaction damping factor.
	//
	// Parameters:
	//   - damping: per-second velocity decay factor (0 disables inertia)
	SetDamping(damping float32)

	// Spherical returns the camera's current offset from the target in
	// spherical coordinates.
	//
	// Returns:
	//   - common.Spherical: radius/polar/azimuth of the camera offset
	Spherical() common.Spherical

	// SetSpherical repositions the camera from spherical coordinates around
	// the current target, clamped to the configured limits, and re-aims the
	// camera at the target.
	//
	// Parameters:
	//   - s: the desired spherical coordinates
	SetSpherical(s common.Spherical)

	// Rotate applies a user rotation delta. No-op while disabled.
	//
	// Parameters:
	//   - dAzimuth: azimuth delta, scaled by RotateSpeed
	//   - dPolar: polar delta, scaled by RotateSpeed
	Rotate(dAzimuth, dPolar float32)

	// Zoom applies a user zoom delta, moving the camera along the orbit
	// radius. Positive delta zooms in. No-op while disabled.
	//
	// Parameters:
	//   - delta: zoom amount, scaled by ZoomSpeed
	Zoom(delta float32)

	// Pan translates both camera and target along the camera's local
	// right/up axes, preserving the orbit relationship. No-op while
	// disabled.
	//
	// Parameters:
	//   - dx: pan amount along the local right axis, scaled by PanSpeed
	//   - dy: pan amount along the local up axis, scaled by PanSpeed
	Pan(dx, dy float32)

	// BeginInteraction signals that a user gesture (pointer down, wheel,
	// touch) is starting. Fires the interaction-start callback even while
	// disabled, which is how in-flight load animations get cancelled by
	// user input.
	BeginInteraction()

	// OnInteractionStart registers the callback fired by BeginInteraction.
	//
	// Parameters:
	//   - fn: callback to invoke (or nil to clear)
	OnInteractionStart(fn func())

	// Update advances damped interaction velocity. Called once per engine
	// tick; a no-op when there is no residual velocity.
	//
	// Parameters:
	//   - dt: seconds since the previous tick
	Update(dt float32)
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller bound to the given camera,
// with the viewer's default limits (full azimuth, near-full polar range).
//
// Parameters:
//   - cam: the camera to control (must not be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(cam Camera, options ...OrbitControllerOption) OrbitController {
	cc := &orbitControllerImpl{
		mu:      &sync.Mutex{},
		cam:     cam,
		target:  common.Vec3{0, 0, 0},
		enabled: true,

		minAzimuth: math32.Inf(-1),
		maxAzimuth: math32.Inf(1),
		minPolar:   polarEpsilon,
		maxPolar:   math32.Pi - polarEpsilon,
		minRadius:  0.05,
		maxRadius:  500.0,

		rotateSpeed: 1.0,
		zoomSpeed:   1.0,
		panSpeed:    1.0,
		damping:     0.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.cam.LookAt(cc.target)
	return cc
}

func (cc *orbitControllerImpl) Camera() Camera {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cam
}

func (cc *orbitControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *orbitControllerImpl) SetTarget(t common.Vec3) {
	cc.mu.Lock()
	cc.target = t
	cc.mu.Unlock()
	cc.cam.LookAt(t)
}

func (cc *orbitControllerImpl) Enabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enabled
}

func (cc *orbitControllerImpl) SetEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.enabled = enabled
	if !enabled {
		cc.velAzimuth = 0
		cc.velPolar = 0
	}
}

func (cc *orbitControllerImpl) AzimuthLimits() (min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minAzimuth, cc.maxAzimuth
}

func (cc *orbitControllerImpl) SetAzimuthLimits(min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.minAzimuth = min
	cc.maxAzimuth = max
}

func (cc *orbitControllerImpl) PolarLimits() (min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minPolar, cc.maxPolar
}

func (cc *orbitControllerImpl) SetPolarLimits(min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.minPolar = common.Clamp(min, 0, math32.Pi)
	cc.maxPolar = common.Clamp(max, 0, math32.Pi)
}

func (cc *orbitControllerImpl) RadiusLimits() (min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius, cc.maxRadius
}

func (cc *orbitControllerImpl) SetRadiusLimits(min, max float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.minRadius = min
	cc.maxRadius = max
}

func (cc *orbitControllerImpl) RotateSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rotateSpeed
}

func (cc *orbitControllerImpl) SetRotateSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotateSpeed = speed
}

func (cc *orbitControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *orbitControllerImpl) SetZoomSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoomSpeed = speed
}

func (cc *orbitControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *orbitControllerImpl) SetPanSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.panSpeed = speed
}

func (cc *orbitControllerImpl) Damping() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.damping
}

func (cc *orbitControllerImpl) SetDamping(damping float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.damping = damping
}

func (cc *orbitControllerImpl) Spherical() common.Spherical {
	cc.mu.Lock()
	target := cc.target
	cc.mu.Unlock()
	return common.ToSpherical(common.Sub3(cc.cam.Position(), target))
}

func (cc *orbitControllerImpl) SetSpherical(s common.Spherical) {
	cc.mu.Lock()
	s = cc.clampSpherical(s)
	target := cc.target
	cc.mu.Unlock()

	cc.cam.SetPosition(common.Add3(target, common.FromSpherical(s)))
	cc.cam.LookAt(target)
}

func (cc *orbitControllerImpl) Rotate(dAzimuth, dPolar float32) {
	cc.mu.Lock()
	if !cc.enabled {
		cc.mu.Unlock()
		return
	}
	dAzimuth *= cc.rotateSpeed
	dPolar *= cc.rotateSpeed
	if cc.damping > 0 {
		cc.velAzimuth += dAzimuth
		cc.velPolar += dPolar
		cc.mu.Unlock()
		return
	}
	cc.mu.Unlock()
	cc.applyRotation(dAzimuth, dPolar)
}

func (cc *orbitControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	if !cc.enabled {
		cc.mu.Unlock()
		return
	}
	speed := cc.zoomSpeed
	cc.mu.Unlock()

	s := cc.Spherical()
	s.Radius -= delta * speed
	cc.SetSpherical(s)
}

func (cc *orbitControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	if !cc.enabled {
		cc.mu.Unlock()
		return
	}
	speed := cc.panSpeed
	target := cc.target
	cc.mu.Unlock()

	pos := cc.cam.Position()
	up := cc.cam.Up()
	forward := common.Sub3(target, pos)
	right := common.SafeRightAxis(forward, up)
	localUp := common.Normalize3(common.Cross3(right, common.Normalize3(forward)))

	offset := common.Add3(
		common.Scale3(right, dx*speed),
		common.Scale3(localUp, dy*speed),
	)

	cc.mu.Lock()
	cc.target = common.Add3(cc.target, offset)
	target = cc.target
	cc.mu.Unlock()

	cc.cam.SetPosition(common.Add3(pos, offset))
	cc.cam.LookAt(target)
}

func (cc *orbitControllerImpl) BeginInteraction() {
	cc.mu.Lock()
	fn := cc.onStart
	cc.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (cc *orbitControllerImpl) OnInteractionStart(fn func()) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.onStart = fn
}

func (cc *orbitControllerImpl) Update(dt float32) {
	cc.mu.Lock()
	if !cc.enabled || cc.damping <= 0 || (cc.velAzimuth == 0 && cc.velPolar == 0) {
		cc.mu.Unlock()
		return
	}
	dAz := cc.velAzimuth * dt
	dPol := cc.velPolar * dt

	decay := 1 - common.Clamp01(cc.damping*dt)
	cc.velAzimuth *= decay
	cc.velPolar *= decay
	if math32.Abs(cc.velAzimuth) < 1e-5 {
		cc.velAzimuth = 0
	}
	if math32.Abs(cc.velPolar) < 1e-5 {
		cc.velPolar = 0
	}
	cc.mu.Unlock()

	cc.applyRotation(dAz, dPol)
}

// applyRotation rotates the camera's spherical offset by the given deltas,
// clamped to the configured limits.
func (cc *orbitControllerImpl) applyRotation(dAzimuth, dPolar float32) {
	s := cc.Spherical()
	s.Azimuth += dAzimuth
	s.Polar += dPolar
	cc.SetSpherical(s)
}

// clampSpherical applies the configured orbit limits.
// Caller must hold the mutex.
func (cc *orbitControllerImpl) clampSpherical(s common.Spherical) common.Spherical {
	if !math32.IsInf(cc.minAzimuth, -1) && s.Azimuth < cc.minAzimuth {
		s.Azimuth = cc.minAzimuth
	}
	if !math32.IsInf(cc.maxAzimuth, 1) && s.Azimuth > cc.maxAzimuth {
		s.Azimuth = cc.maxAzimuth
	}
	s.Polar = common.Clamp(s.Polar, cc.minPolar, cc.maxPolar)
	s.Radius = common.Clamp(s.Radius, cc.minRadius, cc.maxRadius)
	return s
}
