package camera

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/splat-go/common"
)

// The orbit-range control maps its 0-180 raw value through a piecewise
// linear re-parameterization so the first half of the control's travel
// covers only the first 10 degrees of range. Fine adjustments near "locked"
// get far more resolution than wide-open adjustments near 180.
//
// Breakpoints: input fraction [0, 0.5] -> 0-10 degrees,
// (0.5, 0.85] -> 10-30 degrees, (0.85, 1] -> 30-180 degrees.
const (
	rangeBreakIn1  = 0.5
	rangeBreakIn2  = 0.85
	rangeBreakOut1 = 10.0
	rangeBreakOut2 = 30.0

	// MinFovDegrees and MaxFovDegrees bound the raw field-of-view control.
	MinFovDegrees = 20.0
	MaxFovDegrees = 120.0
)

// SliderToDegrees converts a raw 0-180 orbit-range control value to the
// actual range in degrees via the piecewise re-parameterization.
//
// Parameters:
//   - slider: raw control value in [0, 180]
//
// Returns:
//   - float32: orbit range in degrees, in [0, 180]
func SliderToDegrees(slider float32) float32 {
	t := common.Clamp01(slider / 180.0)
	switch {
	case t <= rangeBreakIn1:
		return t / rangeBreakIn1 * rangeBreakOut1
	case t <= rangeBreakIn2:
		return rangeBreakOut1 + (t-rangeBreakIn1)/(rangeBreakIn2-rangeBreakIn1)*(rangeBreakOut2-rangeBreakOut1)
	default:
		return rangeBreakOut2 + (t-rangeBreakIn2)/(1-rangeBreakIn2)*(180.0-rangeBreakOut2)
	}
}

// DegreesToSlider is the exact inverse of SliderToDegrees. The UI
// initializes the control position from a stored degree value, so the
// round-trip DegreesToSlider(SliderToDegrees(x)) must reproduce x within
// floating tolerance.
//
// Parameters:
//   - degrees: orbit range in degrees, in [0, 180]
//
// Returns:
//   - float32: raw control value in [0, 180]
func DegreesToSlider(degrees float32) float32 {
	d := common.Clamp(degrees, 0, 180)
	var t float32
	switch {
	case d <= rangeBreakOut1:
		t = d / rangeBreakOut1 * rangeBreakIn1
	case d <= rangeBreakOut2:
		t = rangeBreakIn1 + (d-rangeBreakOut1)/(rangeBreakOut2-rangeBreakOut1)*(rangeBreakIn2-rangeBreakIn1)
	default:
		t = rangeBreakIn2 + (d-rangeBreakOut2)/(180.0-rangeBreakOut2)*(1-rangeBreakIn2)
	}
	return t * 180.0
}

// ApplyOrbitRange applies an orbit range (in degrees, as produced by
// SliderToDegrees) to a controller. Azimuth limits are symmetric
// +-(range/180 * 90 degrees); polar limits are centered at the horizon and
// widen from a tight +-(0.02*180 degrees) band to nearly the full
// hemisphere +-(0.45*180 degrees). Rotate sensitivity is re-derived from
// the resulting range so a tight range keeps fine control.
//
// Parameters:
//   - ctrl: the controller to configure
//   - degrees: orbit range in degrees, in [0, 180]
func ApplyOrbitRange(ctrl OrbitController, degrees float32) {
	if ctrl == nil {
		return
	}
	frac := common.Clamp01(degrees / 180.0)

	azimuthHalf := frac * (math32.Pi / 2)
	ctrl.SetAzimuthLimits(-azimuthHalf, azimuthHalf)

	polarHalf := common.Lerp(0.02, 0.45, frac) * math32.Pi
	ctrl.SetPolarLimits(math32.Pi/2-polarHalf, math32.Pi/2+polarHalf)

	// A locked-down range still needs some sensitivity to feel responsive.
	ctrl.SetRotateSpeed(common.Clamp(frac, 0.1, 1.0))
}

// ApplyFieldOfView applies a raw 20-120 field-of-view control value to the
// camera, re-deriving zoom sensitivity so wheel zoom covers the same
// apparent screen distance at any focal length. When a dolly-zoom
// compensator is supplied and enabled, camera distance is adjusted to keep
// the subject's apparent size constant.
//
// Parameters:
//   - ctrl: the controller whose camera and zoom sensitivity to update
//   - dz: optional dolly-zoom compensator (may be nil)
//   - degrees: raw control value, clamped to [20, 120]
func ApplyFieldOfView(ctrl OrbitController, dz *DollyZoom, degrees float32) {
	if ctrl == nil || ctrl.Camera() == nil {
		return
	}
	cam := ctrl.Camera()

	deg := common.Clamp(degrees, MinFovDegrees, MaxFovDegrees)
	fov := deg * (math32.Pi / 180.0)
	cam.SetFov(fov)

	if dz != nil {
		dz.Apply(ctrl, fov)
	}

	// Wheel zoom moves the camera a distance proportional to the visible
	// extent; tie sensitivity to tan(fov/2) so perceived zoom speed is
	// constant across focal lengths.
	base := math32.Tan(60.0 / 2 * (math32.Pi / 180.0))
	ctrl.SetZoomSpeed(math32.Tan(fov/2) / base)
}
