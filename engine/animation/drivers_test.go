package animation

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
	"github.com/Carmen-Shannon/splat-go/engine/frame"
)

type driverRig struct {
	sched *frame.TickScheduler
	coord *Coordinator
	ctrl  camera.OrbitController
	cam   camera.Camera
}

func newDriverRig() *driverRig {
	sched := frame.NewTickScheduler()
	cam := camera.NewCamera(camera.WithPosition(common.Vec3{0, 0, 5}))
	ctrl := camera.NewOrbitController(cam, camera.WithControllerTarget(common.Vec3{0, 0, 0}))
	return &driverRig{
		sched: sched,
		coord: NewCoordinator(sched, nil),
		ctrl:  ctrl,
		cam:   cam,
	}
}

func TestLoadZoomSweepRunsToCompletion(t *testing.T) {
	rig := newDriverRig()
	rig.ctrl.SetAzimuthLimits(-0.1, 0.1)
	d := NewLoadZoomDriver(rig.coord, rig.ctrl)

	var completed bool
	tok := d.Start(LoadZoomOptions{OnComplete: func() { completed = true }})
	assert.NotNil(t, tok)
	assert.True(t, d.Running())
	assert.False(t, rig.ctrl.Enabled(), "interaction is suppressed during the sweep")

	// The orbit limits are relaxed so intermediate framings cannot clamp.
	minAz, maxAz := rig.ctrl.AzimuthLimits()
	assert.True(t, math32.IsInf(minAz, -1))
	assert.True(t, math32.IsInf(maxAz, 1))

	// First tick at t=0: the camera jumps to the sweep's offset start, 8
	// degrees around the up axis and 5% zoomed out (medium preset).
	rig.sched.Step(0)
	s := common.ToSpherical(common.Sub3(rig.cam.Position(), common.Vec3{}))
	assert.InDelta(t, 5.0*1.05, s.Radius, 1e-3)
	assert.InDelta(t, 8.0*math32.Pi/180, s.Azimuth, 1e-3)

	// Final tick at the full duration lands exactly on the rest framing.
	rig.sched.Step(1800 * time.Millisecond)
	assertVecNear(t, common.Vec3{0, 0, 5}, rig.cam.Position(), 1e-3)

	assert.True(t, completed)
	assert.False(t, d.Running())
	assert.True(t, rig.ctrl.Enabled())
	minAz, maxAz = rig.ctrl.AzimuthLimits()
	assert.InDelta(t, -0.1, minAz, 1e-6)
	assert.InDelta(t, 0.1, maxAz, 1e-6)

	_, held := rig.coord.Owner()
	assert.False(t, held)
	assert.True(t, isClosed(tok.Done()))
	assert.Equal(t, 0, rig.sched.Pending())
}

func TestLoadZoomCancelHoldsCamera(t *testing.T) {
	rig := newDriverRig()
	d := NewLoadZoomDriver(rig.coord, rig.ctrl)

	var completed bool
	tok := d.Start(LoadZoomOptions{OnComplete: func() { completed = true }})
	assert.NotNil(t, tok)

	rig.sched.Step(0)
	rig.sched.Step(600 * time.Millisecond)
	midFlight := rig.cam.Position()

	d.Cancel()
	assert.False(t, d.Running())
	assert.True(t, rig.ctrl.Enabled(), "cancellation restores interaction")
	assert.False(t, completed, "OnComplete never fires on cancellation")
	assert.True(t, isClosed(tok.Done()))

	// The camera holds wherever the sweep last put it, and no orphaned
	// callback is left behind.
	assertVecNear(t, midFlight, rig.cam.Position(), 1e-6)
	assert.Equal(t, 0, rig.sched.Pending())
	rig.sched.Step(time.Second)
	assertVecNear(t, midFlight, rig.cam.Position(), 1e-6)
}

func TestLoadZoomDegenerateGeometryRefusesToStart(t *testing.T) {
	rig := newDriverRig()
	rig.cam.SetPosition(common.Vec3{0, 0, 0}) // on top of the target
	d := NewLoadZoomDriver(rig.coord, rig.ctrl)

	tok := d.Start(LoadZoomOptions{})
	assert.Nil(t, tok)
	assert.False(t, d.Running())
	assert.True(t, rig.ctrl.Enabled())
	_, held := rig.coord.Owner()
	assert.False(t, held)
	assert.Equal(t, 0, rig.sched.Pending())
}

func TestLoadZoomPresets(t *testing.T) {
	for _, name := range []string{"subtle", "medium", "dramatic"} {
		opts, ok := LoadZoomPreset(name)
		assert.True(t, ok, name)
		assert.Greater(t, opts.SweepDegrees, float32(0))
		assert.Greater(t, opts.ZoomFactor, float32(1))
		assert.Greater(t, opts.Duration, time.Duration(0))
	}
	_, ok := LoadZoomPreset("cinematic")
	assert.False(t, ok)
}

func TestSlideOutThenInReturnsToRest(t *testing.T) {
	rig := newDriverRig()
	d := NewSlideDriver(rig.coord, rig.ctrl)

	restPos := rig.cam.Position()
	restTarget := rig.ctrl.Target()

	done := d.SlideOut(DirectionNext, SlideOptions{})
	rig.sched.Step(0)
	rig.sched.Step(900 * time.Millisecond)
	assert.True(t, isClosed(done))

	// The camera is displaced sideways by the pan plus the orbit coupling.
	assert.Greater(t, common.Dist3(rig.cam.Position(), restPos), float32(1))

	// The host swaps assets at the fade trough and restores the rest pose;
	// slide-in then starts from the mirrored offset and settles on rest.
	rig.cam.SetPosition(restPos)
	rig.ctrl.SetTarget(restTarget)

	done = d.SlideIn(DirectionNext, SlideOptions{})
	rig.sched.Step(1000 * time.Millisecond)
	rig.sched.Step(1900 * time.Millisecond)
	assert.True(t, isClosed(done))

	assertVecNear(t, restPos, rig.cam.Position(), 1e-3)
	assertVecNear(t, restTarget, rig.ctrl.Target(), 1e-3)
	_, held := rig.coord.Owner()
	assert.False(t, held)
}

func TestSlideInStartsWhereSlideOutEnded(t *testing.T) {
	rig := newDriverRig()
	d := NewSlideDriver(rig.coord, rig.ctrl)

	d.SlideOut(DirectionNext, SlideOptions{})
	rig.sched.Step(0)
	rig.sched.Step(900 * time.Millisecond)
	outEndPos := rig.cam.Position()
	outEndTarget := rig.ctrl.Target()

	// Restore rest, then slide in: its first tick must jump the camera to
	// the same pose the slide-out ended on.
	rig.cam.SetPosition(common.Vec3{0, 0, 5})
	rig.ctrl.SetTarget(common.Vec3{0, 0, 0})

	d.SlideIn(DirectionNext, SlideOptions{})
	rig.sched.Step(1000 * time.Millisecond)

	assertVecNear(t, outEndPos, rig.cam.Position(), 1e-3)
	assertVecNear(t, outEndTarget, rig.ctrl.Target(), 1e-3)
}

func TestSlideFadeCallbackFiresPartwayThrough(t *testing.T) {
	rig := newDriverRig()
	d := NewSlideDriver(rig.coord, rig.ctrl)

	fadeCh := make(chan struct{})
	d.SlideOut(DirectionNext, SlideOptions{
		Duration:       30 * time.Millisecond,
		FadeDelayRatio: 0.5,
		OnFadeStart:    func() { close(fadeCh) },
	})
	rig.sched.Step(0)

	select {
	case <-fadeCh:
	case <-time.After(2 * time.Second):
		t.Fatal("fade callback never fired")
	}
}

func TestSlideFadeClockStartsAtFirstTick(t *testing.T) {
	rig := newDriverRig()
	d := NewSlideDriver(rig.coord, rig.ctrl)

	fadeCh := make(chan struct{})
	d.SlideOut(DirectionNext, SlideOptions{
		Duration:       30 * time.Millisecond,
		FadeDelayRatio: 0.5,
		OnFadeStart:    func() { close(fadeCh) },
	})

	// No frame has run, so the fade delay has not started counting.
	select {
	case <-fadeCh:
		t.Fatal("fade fired before the first frame")
	case <-time.After(100 * time.Millisecond):
	}

	rig.sched.Step(0)
	select {
	case <-fadeCh:
	case <-time.After(2 * time.Second):
		t.Fatal("fade callback never fired")
	}
}

func TestSlideCancelStopsFadeCallback(t *testing.T) {
	rig := newDriverRig()
	d := NewSlideDriver(rig.coord, rig.ctrl)

	var fired bool
	d.SlideOut(DirectionNext, SlideOptions{
		Duration:       50 * time.Millisecond,
		FadeDelayRatio: 0.5,
		OnFadeStart:    func() { fired = true },
	})
	rig.sched.Step(0)
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired, "cancelled slide must not fire the fade")
}

func TestSlideNilControllerReturnsClosedChannel(t *testing.T) {
	rig := newDriverRig()
	d := NewSlideDriver(rig.coord, nil)
	done := d.SlideOut(DirectionNext, SlideOptions{})
	assert.True(t, isClosed(done))
}

func TestAnchorSnapPath(t *testing.T) {
	rig := newDriverRig()
	d := NewAnchorDriver(rig.coord, rig.ctrl)

	var completed bool
	tok := d.Start(common.Vec3{0, 0, 0}, AnchorOptions{OnComplete: func() { completed = true }})
	assert.Nil(t, tok, "a re-target to the current anchor snaps without animating")
	assert.True(t, completed, "snap path completes synchronously")
	assert.Equal(t, 0, rig.sched.Pending())
	_, held := rig.coord.Owner()
	assert.False(t, held)
}

func TestAnchorGlideMovesOnlyTarget(t *testing.T) {
	rig := newDriverRig()
	d := NewAnchorDriver(rig.coord, rig.ctrl)

	camBefore := rig.cam.Position()
	anchor := common.Vec3{1, 0.5, 0}

	var completed bool
	tok := d.Start(anchor, AnchorOptions{OnComplete: func() { completed = true }})
	assert.NotNil(t, tok)

	rig.sched.Step(0)
	rig.sched.Step(250 * time.Millisecond)
	mid := rig.ctrl.Target()
	assert.Greater(t, common.Dist3(mid, common.Vec3{}), float32(0.01))
	assert.Less(t, common.Dist3(mid, common.Vec3{}), common.Dist3(anchor, common.Vec3{}))

	rig.sched.Step(500 * time.Millisecond)
	assertVecNear(t, anchor, rig.ctrl.Target(), 1e-4)
	assertVecNear(t, camBefore, rig.cam.Position(), 1e-5)
	assert.True(t, completed)
	_, held := rig.coord.Owner()
	assert.False(t, held)
}

func TestResetRestoresSavedState(t *testing.T) {
	rig := newDriverRig()
	d := NewResetDriver(rig.coord, rig.ctrl)

	home := CaptureState(rig.ctrl)

	// The user wanders off: orbit, zoom, and a fov change.
	rig.ctrl.Rotate(0.8, -0.3)
	rig.ctrl.Zoom(2.0)
	rig.cam.SetFov(100 * math32.Pi / 180)

	var completed bool
	tok := d.Start(home, ResetOptions{OnComplete: func() { completed = true }})
	assert.NotNil(t, tok)

	rig.sched.Step(0)
	rig.sched.Step(700 * time.Millisecond)

	assertVecNear(t, home.Position, rig.cam.Position(), 1e-3)
	assertVecNear(t, home.Target, rig.ctrl.Target(), 1e-4)
	assert.InDelta(t, home.Fov, rig.cam.Fov(), 1e-4)
	assert.InDelta(t, home.Zoom, rig.cam.Zoom(), 1e-4)
	assert.True(t, completed)
	_, held := rig.coord.Owner()
	assert.False(t, held)
}

func TestNewAnimationRevokesRunningOne(t *testing.T) {
	rig := newDriverRig()
	loadZoom := NewLoadZoomDriver(rig.coord, rig.ctrl)
	slide := NewSlideDriver(rig.coord, rig.ctrl)

	tok := loadZoom.Start(LoadZoomOptions{})
	assert.NotNil(t, tok)
	rig.sched.Step(0)

	// Starting a slide revokes the sweep and restores its controller state
	// before the slide captures its own starting pose.
	slide.SlideOut(DirectionNext, SlideOptions{})
	assert.True(t, isClosed(tok.Done()))
	assert.False(t, loadZoom.Running())
	assert.True(t, rig.ctrl.Enabled(), "revoking the sweep restored interaction")

	kind, held := rig.coord.Owner()
	assert.True(t, held)
	assert.Equal(t, KindSlideOut, kind)
	assert.Equal(t, 1, rig.sched.Pending())
}
