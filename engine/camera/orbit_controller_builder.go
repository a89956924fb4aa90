package camera

import (
	"github.com/Carmen-Shannon/splat-go/common"
)

// OrbitControllerOption is a functional option for configuring an
// OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithControllerTarget sets the initial orbit target point.
//
// Parameters:
//   - t: world-space target position
//
// Returns:
//   - OrbitControllerOption: functional option to set the target
func WithControllerTarget(t common.Vec3) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.target = t
	}
}

// WithAzimuthLimits sets the azimuth bounds in radians.
//
// Parameters:
//   - min, max: azimuth bounds (may be +-Inf for unrestricted)
//
// Returns:
//   - OrbitControllerOption: functional option to set azimuth limits
func WithAzimuthLimits(min, max float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.minAzimuth = min
		cc.maxAzimuth = max
	}
}

// WithPolarLimits sets the polar bounds in radians.
//
// Parameters:
//   - min: minimum polar angle (prevents flipping over the top)
//   - max: maximum polar angle (prevents looking from below)
//
// Returns:
//   - OrbitControllerOption: functional option to set polar limits
func WithPolarLimits(min, max float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.minPolar = min
		cc.maxPolar = max
	}
}

// WithRadiusLimits sets the orbit radius bounds.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusLimits(min, max float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithRotateSpeed sets the rotate sensitivity multiplier.
//
// Parameters:
//   - speed: multiplier applied to rotate input
//
// Returns:
//   - OrbitControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the zoom sensitivity multiplier.
//
// Parameters:
//   - speed: multiplier applied to zoom input
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pan sensitivity multiplier.
//
// Parameters:
//   - speed: multiplier applied to pan input
//
// Returns:
//   - OrbitControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithDamping sets the interaction damping factor.
//
// Parameters:
//   - damping: per-second velocity decay factor (0 disables inertia)
//
// Returns:
//   - OrbitControllerOption: functional option to set damping
func WithDamping(damping float32) OrbitControllerOption {
	return func(cc *orbitControllerImpl) {
		cc.damping = damping
	}
}
