package viewer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/splat-go/common"
	"github.com/Carmen-Shannon/splat-go/engine/animation"
	"github.com/Carmen-Shannon/splat-go/engine/camera"
	"github.com/Carmen-Shannon/splat-go/engine/frame"
)

// fakeAssets records activations; prefetches run on pool goroutines, so both
// are guarded.
type fakeAssets struct {
	mu         sync.Mutex
	count      int
	activated  []int
	prefetched []int
}

func (a *fakeAssets) Count() int { return a.count }

func (a *fakeAssets) Prefetch(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prefetched = append(a.prefetched, index)
	return nil
}

func (a *fakeAssets) Activate(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.activated = append(a.activated, index)
	return nil
}

func (a *fakeAssets) activations() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.activated...)
}

type viewerRig struct {
	sched  *frame.TickScheduler
	ctrl   camera.OrbitController
	cam    camera.Camera
	assets *fakeAssets
	viewer *Viewer
}

func newViewerRig(assetCount int) *viewerRig {
	sched := frame.NewTickScheduler()
	cam := camera.NewCamera(camera.WithPosition(common.Vec3{0, 0, 5}))
	ctrl := camera.NewOrbitController(cam, camera.WithControllerTarget(common.Vec3{0, 0, 0}))
	coord := animation.NewCoordinator(sched, nil)
	assets := &fakeAssets{count: assetCount}

	v := NewViewer(coord,
		WithController(ctrl),
		WithAssetProvider(assets, 2),
	)
	return &viewerRig{sched: sched, ctrl: ctrl, cam: cam, assets: assets, viewer: v}
}

func assertVecNear(t *testing.T, want, got common.Vec3, tolerance float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], float64(tolerance), "component %d", i)
	}
}

func TestNavigateNextSwapsAssetAndReturnsToRest(t *testing.T) {
	rig := newViewerRig(3)
	restPos := rig.cam.Position()
	restTarget := rig.ctrl.Target()

	rig.viewer.Next()

	// Slide-out phase.
	rig.sched.Step(0)
	rig.sched.Step(900 * time.Millisecond)

	// The completion handler swapped the asset, restored the rest pose and
	// chained the slide-in.
	assert.Equal(t, []int{1}, rig.assets.activations())
	assert.Equal(t, 1, rig.sched.Pending(), "slide-in is scheduled")

	// Slide-in phase.
	rig.sched.Step(1000 * time.Millisecond)
	rig.sched.Step(1900 * time.Millisecond)

	assertVecNear(t, restPos, rig.cam.Position(), 1e-3)
	assertVecNear(t, restTarget, rig.ctrl.Target(), 1e-3)
	assert.Equal(t, 0, rig.sched.Pending())
}

func TestNavigateChainIsContinuous(t *testing.T) {
	rig := newViewerRig(2)
	restPos := rig.cam.Position()
	restTarget := rig.ctrl.Target()
	up := rig.cam.Up()

	// Where the slide-out ends: the pan endpoint plus the full orbit
	// coupling.
	tr := animation.Solve(restPos, restTarget, up, animation.ModeHorizontal,
		animation.DirectionNext, 0.45, animation.PhaseSlideOut)
	offset := common.Sub3(tr.EndPosition, tr.EndTarget)
	outEnd := common.Add3(tr.EndTarget, common.RotateAround(offset, tr.OrbitAxis, tr.OrbitAngle))

	rig.viewer.Next()
	rig.sched.Step(0)
	rig.sched.Step(900 * time.Millisecond)

	// The swap restored the rest pose; the slide-in's first tick must pick
	// up exactly where the slide-out ended so the sweep reads as continuous.
	rig.sched.Step(1000 * time.Millisecond)
	assertVecNear(t, outEnd, rig.cam.Position(), 1e-3)
	assertVecNear(t, tr.EndTarget, rig.ctrl.Target(), 1e-3)
}

func TestNavigatePrevWrapsIndex(t *testing.T) {
	rig := newViewerRig(3)

	rig.viewer.Prev()
	rig.sched.Step(0)
	rig.sched.Step(900 * time.Millisecond)

	assert.Equal(t, []int{2}, rig.assets.activations(), "prev from index 0 wraps to the last asset")
}

func TestNavigateRequiresGallery(t *testing.T) {
	rig := newViewerRig(1)
	rig.viewer.Next()
	assert.Equal(t, 0, rig.sched.Pending(), "single-asset gallery has nowhere to navigate")

	bare := NewViewer(animation.NewCoordinator(rig.sched, nil))
	bare.Next() // no controller, no assets: silent no-op
}

func TestResetRequiresCapturedHome(t *testing.T) {
	rig := newViewerRig(2)

	rig.viewer.StartSmoothResetAnimation()
	assert.Equal(t, 0, rig.sched.Pending(), "reset without a captured home is a no-op")

	rig.viewer.CaptureHome()
	rig.ctrl.Rotate(0.5, 0.1)

	rig.viewer.StartSmoothResetAnimation()
	rig.sched.Step(0)
	rig.sched.Step(700 * time.Millisecond)

	assertVecNear(t, common.Vec3{0, 0, 5}, rig.cam.Position(), 1e-3)
}

func TestApplySettingsValidates(t *testing.T) {
	rig := newViewerRig(2)

	bad := DefaultSettings()
	bad.SlideMode = "spiral"
	assert.Error(t, rig.viewer.ApplySettings(bad))
	assert.Equal(t, "horizontal", rig.viewer.Settings().SlideMode)

	good := DefaultSettings()
	good.SlideMode = "zoom"
	good.DollyZoom = true
	assert.NoError(t, rig.viewer.ApplySettings(good))
	assert.Equal(t, "zoom", rig.viewer.Settings().SlideMode)
}

func TestLoadZoomRespectsNoneDirection(t *testing.T) {
	rig := newViewerRig(2)

	s := DefaultSettings()
	s.SweepDirection = "none"
	assert.NoError(t, rig.viewer.ApplySettings(s))

	rig.viewer.StartLoadZoomAnimation()
	assert.Equal(t, 0, rig.sched.Pending())
	assert.True(t, rig.ctrl.Enabled())
}

func TestUserGestureCancelsLoadZoom(t *testing.T) {
	rig := newViewerRig(2)

	rig.viewer.StartLoadZoomAnimation()
	rig.sched.Step(0)
	assert.False(t, rig.ctrl.Enabled(), "sweep suppresses interaction")

	// A pointer-down gesture reaches the controller even while disabled and
	// revokes the sweep.
	rig.ctrl.BeginInteraction()
	assert.True(t, rig.ctrl.Enabled())
	assert.Equal(t, 0, rig.sched.Pending())
}

func TestCancelAllTransitions(t *testing.T) {
	rig := newViewerRig(2)

	rig.viewer.StartLoadZoomAnimation()
	rig.viewer.CancelAllTransitions()
	assert.Equal(t, 0, rig.sched.Pending())
	assert.True(t, rig.ctrl.Enabled())
}
