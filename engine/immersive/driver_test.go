package immersive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
)

// fakeSource is an in-memory sensor: tests push events through whatever
// handler the driver installed.
type fakeSource struct {
	permissionErr error
	handler       func(Event)
	orientation   ScreenOrientation
}

func (s *fakeSource) RequestPermission(context.Context) error { return s.permissionErr }
func (s *fakeSource) SetHandler(fn func(Event))               { s.handler = fn }
func (s *fakeSource) Orientation() ScreenOrientation          { return s.orientation }

func (s *fakeSource) emit(e Event) {
	if s.handler != nil {
		s.handler(e)
	}
}

func newImmersiveRig() (*Driver, *fakeSource, camera.OrbitController) {
	cam := camera.NewCamera(camera.WithPosition(common.Vec3{0, 0, 5}))
	ctrl := camera.NewOrbitController(cam, camera.WithControllerTarget(common.Vec3{0, 0, 0}))
	src := &fakeSource{}
	return NewDriver(ctrl, src), src, ctrl
}

func TestEnableRequestsPermission(t *testing.T) {
	d, src, _ := newImmersiveRig()
	assert.Equal(t, StateInactive, d.State())

	assert.NoError(t, d.Enable(context.Background()))
	assert.Equal(t, StateActive, d.State())
	assert.NotNil(t, src.handler, "enabling attaches the event handler")

	// Already enabled: no-op.
	assert.NoError(t, d.Enable(context.Background()))
}

func TestEnablePermissionDenied(t *testing.T) {
	d, src, _ := newImmersiveRig()
	src.permissionErr = errors.New("denied")

	err := d.Enable(context.Background())
	assert.Error(t, err)
	assert.ErrorContains(t, err, "device orientation permission")
	assert.Equal(t, StateInactive, d.State())
	assert.Nil(t, src.handler)
}

func TestFirstEventBaselinesWithoutMoving(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	before := ctrl.Spherical()
	src.emit(Event{Beta: 40, Gamma: -10})
	after := ctrl.Spherical()

	assert.InDelta(t, before.Azimuth, after.Azimuth, 1e-5)
	assert.InDelta(t, before.Polar, after.Polar, 1e-5)
	assert.InDelta(t, before.Radius, after.Radius, 1e-5)
}

func TestTiltSteersView(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	base := ctrl.Spherical()
	src.emit(Event{Beta: 40, Gamma: 0}) // origin
	src.emit(Event{Beta: 40, Gamma: 15})

	s := ctrl.Spherical()
	assert.Greater(t, s.Azimuth, base.Azimuth, "tilting right looks right")
	assert.InDelta(t, base.Polar, s.Polar, 1e-4, "pure gamma tilt leaves polar alone")
	assert.InDelta(t, base.Radius, s.Radius, 1e-4, "tilt never changes the orbit radius")

	// Tilting forward (beta up) looks up: polar decreases.
	src.emit(Event{Beta: 55, Gamma: 15})
	assert.Less(t, ctrl.Spherical().Polar, s.Polar)
}

func TestExcursionStaysSoftClamped(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	base := ctrl.Spherical()
	src.emit(Event{}) // origin at rest

	// An extreme tilt, repeated until smoothing converges.
	for i := 0; i < 500; i++ {
		src.emit(Event{Gamma: 170})
	}

	// Max excursion is bounded by limit * gain: 28 degrees soft limit times
	// the default gain of 2.0*0.6.
	maxRad := float32(28.0*2.0*0.6) * (3.14159265 / 180.0)
	got := ctrl.Spherical().Azimuth - base.Azimuth
	assert.Less(t, got, maxRad*1.01)
	assert.Greater(t, got, maxRad*0.5, "a hard tilt still produces a strong excursion")
}

func TestStillDeviceHoldsView(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	src.emit(Event{Beta: 30, Gamma: 5}) // origin
	for i := 0; i < 200; i++ {
		src.emit(Event{Beta: 30, Gamma: 12})
	}
	settled := ctrl.Spherical()

	// Holding the device still holds the view: no drift.
	for i := 0; i < 200; i++ {
		src.emit(Event{Beta: 30, Gamma: 12})
	}
	now := ctrl.Spherical()
	assert.InDelta(t, settled.Azimuth, now.Azimuth, 1e-4)
	assert.InDelta(t, settled.Polar, now.Polar, 1e-4)
}

func TestSeamCrossingDoesNotJump(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	src.emit(Event{Beta: 178}) // origin near the seam
	src.emit(Event{Beta: -178})

	// A 4 degree physical motion across the +-180 seam reads as 4 degrees,
	// not 356.
	base := common.ToSpherical(common.Vec3{0, 0, 5})
	excursion := base.Polar - ctrl.Spherical().Polar
	assert.Less(t, common.Clamp(excursion, -10, 10), float32(0.2))
}

func TestPauseDropsEventsAndResumeRebaselines(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	src.emit(Event{}) // origin

	d.TransitionStarted()
	assert.Equal(t, StatePaused, d.State())

	before := ctrl.Spherical()
	src.emit(Event{Gamma: 30})
	after := ctrl.Spherical()
	assert.InDelta(t, before.Azimuth, after.Azimuth, 1e-6, "paused driver drops events")

	d.TransitionFinished()
	assert.Equal(t, StateActive, d.State())

	// First event after resume re-baselines instead of moving.
	before = ctrl.Spherical()
	src.emit(Event{Gamma: 30})
	assert.InDelta(t, before.Azimuth, ctrl.Spherical().Azimuth, 1e-6)

	// Subsequent events move relative to the new origin.
	src.emit(Event{Gamma: 45})
	assert.Greater(t, ctrl.Spherical().Azimuth, before.Azimuth)
}

func TestTransitionCallbacksIgnoredWhileInactive(t *testing.T) {
	d, _, _ := newImmersiveRig()
	d.TransitionStarted()
	assert.Equal(t, StateInactive, d.State())
	d.TransitionFinished()
	assert.Equal(t, StateInactive, d.State())
}

func TestToggle(t *testing.T) {
	d, src, _ := newImmersiveRig()

	on, err := d.Toggle(context.Background())
	assert.NoError(t, err)
	assert.True(t, on)

	on, err = d.Toggle(context.Background())
	assert.NoError(t, err)
	assert.False(t, on)
	assert.Nil(t, src.handler, "disabling detaches the handler")
}

func TestRecenter(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	src.emit(Event{}) // origin
	for i := 0; i < 100; i++ {
		src.emit(Event{Gamma: 20})
	}
	assert.Greater(t, ctrl.Spherical().Azimuth, float32(0.01))

	d.Recenter()
	held := ctrl.Spherical()

	// The held tilt becomes the new neutral: the next event re-baselines at
	// the current framing and does not move the camera.
	src.emit(Event{Gamma: 20})
	assert.InDelta(t, held.Azimuth, ctrl.Spherical().Azimuth, 1e-5)
}

func TestScreenOrientationChangeRebaselines(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	src.emit(Event{Beta: 30, Gamma: 10}) // origin in portrait-primary
	held := ctrl.Spherical()

	// Rotating the display remaps the axes; the identical physical pose must
	// become the new neutral instead of reading as a sudden tilt.
	src.orientation = LandscapePrimary
	src.emit(Event{Beta: 30, Gamma: 10})
	after := ctrl.Spherical()
	assert.InDelta(t, held.Azimuth, after.Azimuth, 1e-4)
	assert.InDelta(t, held.Polar, after.Polar, 1e-4)

	// Tilting past the new neutral steers from the re-captured baseline.
	src.emit(Event{Beta: 30, Gamma: 40})
	assert.Greater(t, math32.Abs(ctrl.Spherical().Polar-held.Polar), float32(0.001))
}

func TestRecenterWithPausesAndResumes(t *testing.T) {
	d, src, ctrl := newImmersiveRig()
	assert.NoError(t, d.Enable(context.Background()))

	src.emit(Event{}) // origin

	ran := false
	d.RecenterWith(func() { ran = true }, 40*time.Millisecond)
	assert.True(t, ran, "the recenter transition runs synchronously")
	assert.Equal(t, StatePaused, d.State())

	// Events are dropped while the transition is in flight.
	held := ctrl.Spherical()
	for i := 0; i < 50; i++ {
		src.emit(Event{Gamma: 25})
	}
	assert.InDelta(t, held.Azimuth, ctrl.Spherical().Azimuth, 1e-5)

	assert.Eventually(t, func() bool {
		return d.State() == StateActive
	}, time.Second, 5*time.Millisecond)

	// The first event after resuming re-baselines at the new framing.
	src.emit(Event{Gamma: 25})
	assert.InDelta(t, held.Azimuth, ctrl.Spherical().Azimuth, 1e-5)
	src.emit(Event{Gamma: 45})
	assert.Greater(t, ctrl.Spherical().Azimuth, held.Azimuth+0.001)
}

func TestRecenterWithRequiresActive(t *testing.T) {
	d, _, _ := newImmersiveRig()

	ran := false
	d.RecenterWith(func() { ran = true }, time.Millisecond)
	assert.False(t, ran, "inactive driver ignores recenter requests")
	assert.Equal(t, StateInactive, d.State())
}

func TestRemapAxes(t *testing.T) {
	e := Event{Beta: 10, Gamma: 4}

	cases := []struct {
		name        string
		orientation ScreenOrientation
		wantBeta    float32
		wantGamma   float32
	}{
		{"portrait-primary", PortraitPrimary, 10, 4},
		{"portrait-secondary", PortraitSecondary, -10, -4},
		{"landscape-primary", LandscapePrimary, 4, -10},
		{"landscape-secondary", LandscapeSecondary, -4, 10},
	}
	for _, c := range cases {
		beta, gamma := remapAxes(e, c.orientation)
		assert.Equal(t, c.wantBeta, beta, c.name)
		assert.Equal(t, c.wantGamma, gamma, c.name)
	}
}
