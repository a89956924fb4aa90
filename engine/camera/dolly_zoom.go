package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/splat-go/common"
)

// DollyZoom keeps a subject's apparent size constant across field-of-view
// changes by moving the camera along the camera->target ray. It holds a
// baseline (distance, fov) pair captured on demand; compensation is relative
// to that baseline, so recomputing at the baseline fov reproduces the
// baseline distance exactly.
type DollyZoom struct {
	mu sync.Mutex

	enabled      bool
	hasBaseline  bool
	baseDistance float32
	baseFov      float32
}

// NewDollyZoom creates a disabled compensator with no baseline.
//
// Returns:
//   - *DollyZoom: the newly created compensator
func NewDollyZoom() *DollyZoom {
	return &DollyZoom{}
}

// Enabled reports whether Apply performs compensation.
//
// Returns:
//   - bool: true if enabled
func (dz *DollyZoom) Enabled() bool {
	dz.mu.Lock()
	defer dz.mu.Unlock()
	return dz.enabled
}

// SetEnabled enables or disables compensation. Enabling does not capture a
// baseline; callers capture one explicitly when the camera is at rest.
//
// Parameters:
//   - enabled: the new enabled state
func (dz *DollyZoom) SetEnabled(enabled bool) {
	dz.mu.Lock()
	defer dz.mu.Unlock()
	dz.enabled = enabled
}

// CaptureBaseline records the current camera-to-target distance and field
// of view as the compensation baseline. Called after transitions complete
// and after manual re-targeting, when the camera is at its resting framing.
//
// Parameters:
//   - ctrl: the controller whose camera/target pair to sample
func (dz *DollyZoom) CaptureBaseline(ctrl OrbitController) {
	if ctrl == nil || ctrl.Camera() == nil {
		return
	}
	cam := ctrl.Camera()
	dist := common.Dist3(cam.Position(), ctrl.Target())

	dz.mu.Lock()
	defer dz.mu.Unlock()
	dz.baseDistance = dist
	dz.baseFov = cam.Fov()
	dz.hasBaseline = true
}

// Baseline returns the captured baseline, if any.
//
// Returns:
//   - distance: baseline camera-to-target distance
//   - fov: baseline field of view in radians
//   - ok: false if no baseline has been captured
func (dz *DollyZoom) Baseline() (distance, fov float32, ok bool) {
	dz.mu.Lock()
	defer dz.mu.Unlock()
	return dz.baseDistance, dz.baseFov, dz.hasBaseline
}

// CompensatedDistance computes the camera distance that preserves the
// baseline's apparent subject size at the given field of view:
// d = baseDistance * tan(baseFov/2) / tan(newFov/2). At newFov == baseFov
// this returns baseDistance exactly.
//
// Parameters:
//   - newFov: the new field of view in radians
//
// Returns:
//   - float32: the compensated distance
//   - bool: false if no baseline has been captured
func (dz *DollyZoom) CompensatedDistance(newFov float32) (float32, bool) {
	dz.mu.Lock()
	defer dz.mu.Unlock()
	if !dz.hasBaseline || newFov <= 0 {
		return 0, false
	}
	if newFov == dz.baseFov {
		return dz.baseDistance, true
	}
	return dz.baseDistance * math32.Tan(dz.baseFov/2) / math32.Tan(newFov/2), true
}

// Apply moves the camera along the existing camera->target direction to the
// compensated distance for the given field of view. The target is
// unchanged. A no-op while disabled or without a baseline.
//
// Parameters:
//   - ctrl: the controller whose camera to reposition
//   - newFov: the new field of view in radians
func (dz *DollyZoom) Apply(ctrl OrbitController, newFov float32) {
	if ctrl == nil || ctrl.Camera() == nil {
		return
	}
	dz.mu.Lock()
	enabled := dz.enabled
	dz.mu.Unlock()
	if !enabled {
		return
	}

	dist, ok := dz.CompensatedDistance(newFov)
	if !ok {
		return
	}

	cam := ctrl.Camera()
	target := ctrl.Target()
	dir := common.Sub3(cam.Position(), target)
	if common.Length3(dir) < 1e-8 {
		return
	}
	cam.SetPosition(common.Add3(target, common.Scale3(common.Normalize3(dir), dist)))
	cam.LookAt(target)
}
