package animation

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/splat-go/common"
)

var (
	testPos = common.Vec3{0, 0.5, 5}
	testTgt = common.Vec3{0, 0, 0}
	testUp  = common.Vec3{0, 1, 0}
)

func assertVecNear(t *testing.T, want, got common.Vec3, tolerance float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], float64(tolerance), "component %d", i)
	}
}

func TestSolveOutEndEqualsInStart(t *testing.T) {
	// An out -> swap -> in sequence reads as one continuous sweep, so for
	// the same direction the out trajectory must end exactly where the in
	// trajectory begins.
	for _, mode := range []Mode{ModeHorizontal, ModeVertical} {
		for _, dir := range []Direction{DirectionNext, DirectionPrev} {
			out := Solve(testPos, testTgt, testUp, mode, dir, 0.45, PhaseSlideOut)
			in := Solve(testPos, testTgt, testUp, mode, dir, 0.45, PhaseSlideIn)

			assertVecNear(t, out.EndPosition, in.StartPosition, 1e-4)
			assertVecNear(t, out.EndTarget, in.StartTarget, 1e-4)

			// And both phases end/start at the resting pose on the other side.
			assertVecNear(t, testPos, out.StartPosition, 1e-6)
			assertVecNear(t, testTgt, out.StartTarget, 1e-6)
			assertVecNear(t, testPos, in.EndPosition, 1e-6)
			assertVecNear(t, testTgt, in.EndTarget, 1e-6)
		}
	}
}

func TestSolveHorizontalDirectionSign(t *testing.T) {
	next := Solve(testPos, testTgt, testUp, ModeHorizontal, DirectionNext, 0.45, PhaseSlideOut)
	prev := Solve(testPos, testTgt, testUp, ModeHorizontal, DirectionPrev, 0.45, PhaseSlideOut)

	// Opposite directions displace to opposite sides.
	nextOff := common.Sub3(next.EndPosition, next.StartPosition)
	prevOff := common.Sub3(prev.EndPosition, prev.StartPosition)
	assertVecNear(t, common.Scale3(nextOff, -1), prevOff, 1e-4)

	// Pan distance scales with camera-to-target distance.
	dist := common.Dist3(testPos, testTgt)
	assert.InDelta(t, dist*0.45, common.Length3(nextOff), 1e-3)

	// Orbit coupling is 8 degrees, signed by direction.
	wantAngle := float32(8.0) * math32.Pi / 180
	assert.InDelta(t, wantAngle, next.OrbitAngle, 1e-5)
	assert.InDelta(t, -wantAngle, prev.OrbitAngle, 1e-5)
}

func TestSolveVerticalUsesRightAxisOrbit(t *testing.T) {
	tr := Solve(testPos, testTgt, testUp, ModeVertical, DirectionNext, 0.45, PhaseSlideOut)

	// The pan displaces along up; the orbit axis is the right axis.
	off := common.Sub3(tr.EndPosition, tr.StartPosition)
	assert.InDelta(t, 1.0, math32.Abs(common.Dot3(common.Normalize3(off), testUp)), 1e-4)
	assert.InDelta(t, 0.0, common.Dot3(tr.OrbitAxis, testUp), 1e-4)
	assert.InDelta(t, 1.0, common.Length3(tr.OrbitAxis), 1e-4)
}

func TestSolveZoomFractions(t *testing.T) {
	dist := common.Dist3(testPos, testTgt)

	out := Solve(testPos, testTgt, testUp, ModeZoom, DirectionNext, 0.45, PhaseSlideOut)
	// Slide-out dollies 30% of the distance toward the target.
	assert.InDelta(t, dist*0.70, common.Dist3(out.EndPosition, testTgt), 1e-3)
	assertVecNear(t, testTgt, out.EndTarget, 1e-6)
	assert.InDelta(t, 0.0, out.OrbitAngle, 1e-6)

	in := Solve(testPos, testTgt, testUp, ModeZoom, DirectionNext, 0.45, PhaseSlideIn)
	// Slide-in starts 25% behind the resting distance.
	assert.InDelta(t, dist*1.25, common.Dist3(in.StartPosition, testTgt), 1e-3)
	assertVecNear(t, testPos, in.EndPosition, 1e-6)
}

func TestSolveFadeIsStationary(t *testing.T) {
	for _, phase := range []Phase{PhaseSlideOut, PhaseSlideIn} {
		tr := Solve(testPos, testTgt, testUp, ModeFade, DirectionNext, 0.45, phase)
		assertVecNear(t, testPos, tr.StartPosition, 1e-6)
		assertVecNear(t, testPos, tr.EndPosition, 1e-6)
		assertVecNear(t, testTgt, tr.StartTarget, 1e-6)
		assertVecNear(t, testTgt, tr.EndTarget, 1e-6)
		assert.InDelta(t, 0.0, tr.OrbitAngle, 1e-6)
	}
}
