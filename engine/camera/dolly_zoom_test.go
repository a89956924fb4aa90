package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/splat-go/common"
)

func TestDollyZoomNoBaseline(t *testing.T) {
	dz := NewDollyZoom()
	assert.False(t, dz.Enabled())

	_, _, ok := dz.Baseline()
	assert.False(t, ok)

	_, ok = dz.CompensatedDistance(1.0)
	assert.False(t, ok)
}

func TestDollyZoomBaselineIdentity(t *testing.T) {
	ctrl := newTestController()
	dz := NewDollyZoom()
	dz.CaptureBaseline(ctrl)

	dist, fov, ok := dz.Baseline()
	assert.True(t, ok)
	assert.InDelta(t, 5.0, dist, 1e-4)
	assert.InDelta(t, ctrl.Camera().Fov(), fov, 1e-6)

	// Recomputing at the baseline fov reproduces the baseline distance
	// exactly, not just approximately.
	got, ok := dz.CompensatedDistance(fov)
	assert.True(t, ok)
	assert.Equal(t, dist, got)
}

func TestDollyZoomCompensationFormula(t *testing.T) {
	ctrl := newTestController()
	dz := NewDollyZoom()
	dz.CaptureBaseline(ctrl)
	_, baseFov, _ := dz.Baseline()

	for _, deg := range []float32{30, 45, 90, 110} {
		newFov := deg * math32.Pi / 180
		want := 5 * math32.Tan(baseFov/2) / math32.Tan(newFov/2)
		got, ok := dz.CompensatedDistance(newFov)
		assert.True(t, ok)
		assert.InDelta(t, want, got, 1e-3, "fov %v degrees", deg)
	}
}

func TestDollyZoomApplyDisabledIsNoOp(t *testing.T) {
	ctrl := newTestController()
	dz := NewDollyZoom()
	dz.CaptureBaseline(ctrl)

	before := ctrl.Camera().Position()
	dz.Apply(ctrl, 2.0)
	after := ctrl.Camera().Position()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, before[i], after[i], 1e-6)
	}
}

func TestDollyZoomApplyPreservesTarget(t *testing.T) {
	ctrl := newTestController()
	ctrl.SetTarget(common.Vec3{1, 0, 0})
	dz := NewDollyZoom()
	dz.SetEnabled(true)
	dz.CaptureBaseline(ctrl)
	baseDist := common.Dist3(ctrl.Camera().Position(), ctrl.Target())

	newFov := float32(100) * math32.Pi / 180
	dz.Apply(ctrl, newFov)

	assert.Equal(t, common.Vec3{1, 0, 0}, ctrl.Target())
	want, _ := dz.CompensatedDistance(newFov)
	assert.InDelta(t, want, common.Dist3(ctrl.Camera().Position(), ctrl.Target()), 1e-3)
	assert.Less(t, common.Dist3(ctrl.Camera().Position(), ctrl.Target()), baseDist)

	// The camera stays on the original camera->target ray.
	dir := common.Normalize3(common.Sub3(ctrl.Camera().Position(), ctrl.Target()))
	origDir := common.Normalize3(common.Sub3(common.Vec3{0, 0, 5}, common.Vec3{1, 0, 0}))
	assert.InDelta(t, 1.0, common.Dot3(dir, origDir), 1e-4)
}
