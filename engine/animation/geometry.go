package animation

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/splat-go/common"
)

// Mode selects how a gallery slide moves the camera.
type Mode int

const (
	// ModeHorizontal pans camera and target sideways with a subtle orbit.
	ModeHorizontal Mode = iota
	// ModeVertical pans camera and target along the up axis with a subtle
	// orbit around the right axis.
	ModeVertical
	// ModeZoom dollies the camera along the view direction.
	ModeZoom
	// ModeFade keeps the camera still; only the cross-fade is visible.
	ModeFade
)

// Direction is the gallery navigation direction.
type Direction int

const (
	// DirectionNext advances to the following asset.
	DirectionNext Direction = iota
	// DirectionPrev returns to the preceding asset.
	DirectionPrev
)

// Phase distinguishes the two halves of a slide transition.
type Phase int

const (
	// PhaseSlideOut moves the camera away from the current framing.
	PhaseSlideOut Phase = iota
	// PhaseSlideIn brings the camera from an offset start back to rest.
	PhaseSlideIn
)

const (
	// slideOrbitDegrees couples slides with a subtle curved-camera feel.
	slideOrbitDegrees = 8.0
	// zoomOutFraction is how far slide-out dollies toward the target.
	zoomOutFraction = 0.30
	// zoomInFraction is how far behind rest slide-in starts.
	zoomInFraction = 0.25
)

// Trajectory holds the endpoints the drivers interpolate between, plus an
// optional orbit rotation composed on top of the interpolation.
type Trajectory struct {
	StartPosition common.Vec3
	EndPosition   common.Vec3
	StartTarget   common.Vec3
	EndTarget     common.Vec3

	// OrbitAxis is a unit axis; OrbitAngle is radians. Zero angle means no
	// orbit coupling.
	OrbitAxis  common.Vec3
	OrbitAngle float32
}

// Solve computes the camera/target trajectory for one slide phase. Pure
// function of the current camera state and the request - no side effects,
// no timing.
//
// The sign conventions guarantee continuity: for the same direction, the
// slide-out end state equals the slide-in start state (horizontal/vertical
// modes), so an out -> asset swap -> in sequence reads as one continuous
// sweep in the navigation direction.
//
// Parameters:
//   - position: current camera position
//   - target: current orbit target
//   - up: the camera's up reference
//   - mode: slide mode
//   - dir: navigation direction
//   - amount: pan distance as a fraction of the camera-to-target distance
//   - phase: slide-out or slide-in
//
// Returns:
//   - Trajectory: the computed endpoints and orbit coupling
func Solve(position, target, up common.Vec3, mode Mode, dir Direction, amount float32, phase Phase) Trajectory {
	forward := common.Normalize3(common.Sub3(target, position))
	dist := common.Dist3(position, target)
	right := common.SafeRightAxis(forward, up)
	upAxis := common.Normalize3(up)

	dirSign := float32(1)
	if dir == DirectionPrev {
		dirSign = -1
	}

	tr := Trajectory{
		StartPosition: position,
		EndPosition:   position,
		StartTarget:   target,
		EndTarget:     target,
		OrbitAxis:     upAxis,
	}

	switch mode {
	case ModeFade:
		// No camera motion; the cross-fade carries the transition.
		return tr

	case ModeZoom:
		if phase == PhaseSlideOut {
			tr.EndPosition = common.Add3(position, common.Scale3(forward, dist*zoomOutFraction))
		} else {
			tr.StartPosition = common.Sub3(position, common.Scale3(forward, dist*zoomInFraction))
		}
		return tr

	case ModeVertical:
		offset := common.Scale3(upAxis, dist*amount*dirSign)
		tr.OrbitAxis = right
		tr.OrbitAngle = slideOrbitDegrees * (math32.Pi / 180.0) * dirSign
		applyPan(&tr, offset, phase)
		return tr

	default: // ModeHorizontal
		offset := common.Scale3(right, dist*amount*dirSign)
		tr.OrbitAxis = upAxis
		tr.OrbitAngle = slideOrbitDegrees * (math32.Pi / 180.0) * dirSign
		applyPan(&tr, offset, phase)
		return tr
	}
}

// applyPan offsets the trajectory endpoints for panning modes. Slide-out
// displaces the end state; slide-in displaces the start state by the same
// signed offset, which is what makes out.end == in.start for a given
// direction.
func applyPan(tr *Trajectory, offset common.Vec3, phase Phase) {
	if phase == PhaseSlideOut {
		tr.EndPosition = common.Add3(tr.EndPosition, offset)
		tr.EndTarget = common.Add3(tr.EndTarget, offset)
	} else {
		tr.StartPosition = common.Add3(tr.StartPosition, offset)
		tr.StartTarget = common.Add3(tr.StartTarget, offset)
	}
}
