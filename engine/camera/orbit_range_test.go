package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/splat-go/common"
)

func TestSliderToDegreesBreakpoints(t *testing.T) {
	cases := []struct {
		slider, want float32
	}{
		{0, 0},
		{90, 10},   // half travel covers the first 10 degrees
		{153, 30},  // 0.85 of travel covers 30 degrees
		{180, 180}, // full travel opens the whole range
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, SliderToDegrees(c.slider), 1e-3, "slider %v", c.slider)
	}

	// Out-of-range inputs clamp.
	assert.InDelta(t, 0.0, SliderToDegrees(-20), 1e-3)
	assert.InDelta(t, 180.0, SliderToDegrees(400), 1e-3)
}

func TestOrbitRangeRoundTrip(t *testing.T) {
	for slider := float32(0); slider <= 180; slider += 1.5 {
		deg := SliderToDegrees(slider)
		back := DegreesToSlider(deg)
		assert.InDelta(t, slider, back, 0.01, "slider %v", slider)
	}
	for deg := float32(0); deg <= 180; deg += 1.5 {
		slider := DegreesToSlider(deg)
		back := SliderToDegrees(slider)
		assert.InDelta(t, deg, back, 0.01, "degrees %v", deg)
	}
}

func TestApplyOrbitRange(t *testing.T) {
	ctrl := newTestController()
	ApplyOrbitRange(ctrl, 90)

	minAz, maxAz := ctrl.AzimuthLimits()
	wantAz := float32(0.5) * (math32.Pi / 2)
	assert.InDelta(t, -wantAz, minAz, 1e-4)
	assert.InDelta(t, wantAz, maxAz, 1e-4)

	minPol, maxPol := ctrl.PolarLimits()
	half := common.Lerp(0.02, 0.45, 0.5) * math32.Pi
	assert.InDelta(t, math32.Pi/2-half, minPol, 1e-4)
	assert.InDelta(t, math32.Pi/2+half, maxPol, 1e-4)

	assert.InDelta(t, 0.5, ctrl.RotateSpeed(), 1e-4)
}

func TestApplyOrbitRangeLockedKeepsSensitivityFloor(t *testing.T) {
	ctrl := newTestController()
	ApplyOrbitRange(ctrl, 0)

	minAz, maxAz := ctrl.AzimuthLimits()
	assert.InDelta(t, 0.0, minAz, 1e-5)
	assert.InDelta(t, 0.0, maxAz, 1e-5)
	assert.InDelta(t, 0.1, ctrl.RotateSpeed(), 1e-4)

	// Nil controller is tolerated.
	ApplyOrbitRange(nil, 90)
}

func TestApplyFieldOfViewClampsAndSetsZoomSpeed(t *testing.T) {
	ctrl := newTestController()

	ApplyFieldOfView(ctrl, nil, 500)
	assert.InDelta(t, MaxFovDegrees*math32.Pi/180, ctrl.Camera().Fov(), 1e-4)

	ApplyFieldOfView(ctrl, nil, 5)
	assert.InDelta(t, MinFovDegrees*math32.Pi/180, ctrl.Camera().Fov(), 1e-4)

	// At the reference 60 degree focal length, zoom sensitivity is 1.
	ApplyFieldOfView(ctrl, nil, 60)
	assert.InDelta(t, 1.0, ctrl.ZoomSpeed(), 1e-4)

	// Wider field of view zooms proportionally faster.
	ApplyFieldOfView(ctrl, nil, 120)
	assert.Greater(t, ctrl.ZoomSpeed(), float32(2.0))
}

func TestApplyFieldOfViewDrivesDollyZoom(t *testing.T) {
	ctrl := newTestController()
	dz := NewDollyZoom()
	dz.SetEnabled(true)
	dz.CaptureBaseline(ctrl) // distance 5 at 60 degrees

	ApplyFieldOfView(ctrl, dz, 120)

	// Halved focal length: the camera pulls in to keep apparent size.
	want := 5 * math32.Tan(30*math32.Pi/180) / math32.Tan(60*math32.Pi/180)
	assert.InDelta(t, want, common.Dist3(ctrl.Camera().Position(), ctrl.Target()), 1e-3)
}
