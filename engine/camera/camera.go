package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/splat-go/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	position    common.Vec3
	orientation common.Quat
	up          common.Vec3

	fov    float32 // vertical field of view in radians
	aspect float32
	near   float32
	far    float32
	zoom   float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera is the shared camera state mutated by the animation drivers and
// read by the renderer. There is a single authoritative instance per viewer;
// drivers mutate it by reference (never clone-and-swap) so the renderer
// always sees the latest value. Writer exclusivity is the transition
// coordinator's job, not the camera's.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: world-space camera position
	Position() common.Vec3

	// SetPosition sets the camera's world-space position and recomputes the
	// view matrix. Orientation is unchanged.
	//
	// Parameters:
	//   - p: world-space coordinates
	SetPosition(p common.Vec3)

	// Orientation returns the camera's orientation quaternion.
	//
	// Returns:
	//   - common.Quat: unit orientation quaternion (camera looks down -Z)
	Orientation() common.Quat

	// SetOrientation sets the orientation quaternion directly and recomputes
	// the view matrix. Used by the reset driver's slerp; orbit-style code
	// normally goes through LookAt instead.
	//
	// Parameters:
	//   - q: unit orientation quaternion
	SetOrientation(q common.Quat)

	// Up returns the camera's up reference vector.
	//
	// Returns:
	//   - common.Vec3: the up vector
	Up() common.Vec3

	// SetUp sets the camera's up reference vector.
	//
	// Parameters:
	//   - up: the new up vector
	SetUp(up common.Vec3)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// SetFov sets the vertical field of view in radians and recomputes the
	// projection matrix.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio and recomputes the projection matrix.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// SetNear sets the near clipping plane distance and recomputes the
	// projection matrix.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFar sets the far clipping plane distance and recomputes the
	// projection matrix.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// Zoom returns the zoom factor applied on top of the field of view.
	//
	// Returns:
	//   - float32: the zoom factor (1 = none)
	Zoom() float32

	// SetZoom sets the zoom factor and recomputes the projection matrix.
	//
	// Parameters:
	//   - zoom: the zoom factor (values <= 0 are treated as 1)
	SetZoom(zoom float32)

	// LookAt reorients the camera toward the given world-space point and
	// recomputes the view matrix. Position is unchanged.
	//
	// Parameters:
	//   - target: the point to look at
	LookAt(target common.Vec3)

	// ViewMatrix returns the current 4x4 view matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined view-projection matrix.
	//
	// Returns:
	//   - [16]float32: the combined matrix
	ViewProjectionMatrix() [16]float32

	// UpdateProjection recomputes the projection matrix from the current
	// fov/aspect/near/far/zoom values. The Set* methods call this
	// automatically; it is exposed for callers that mutate several values
	// through other paths and want a single recompute.
	UpdateProjection()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with splat-viewer defaults: fov 60 degrees,
// near 0.01 (splat scenes routinely put the camera close to dense geometry),
// far 1000, positioned on +Z looking at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		position:    common.Vec3{0, 0, 5},
		orientation: common.QuatIdentity(),
		up:          common.Vec3{0, 1, 0},
		fov:         60.0 * (math32.Pi / 180.0),
		aspect:      1.0,
		near:        0.01,
		far:         1000.0,
		zoom:        1.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateView()
}

func (c *cameraImpl) Orientation() common.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) SetOrientation(q common.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = common.QuatNormalize(q)
	c.updateView()
}

func (c *cameraImpl) Up() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateView()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateProjection()
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if zoom <= 0 {
		zoom = 1
	}
	c.zoom = zoom
	c.updateProjection()
}

func (c *cameraImpl) LookAt(target common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if common.Dist3(c.position, target) < 1e-8 {
		return
	}
	c.orientation = common.QuatLookAt(c.position, target, c.up)
	c.updateView()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) UpdateProjection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
}

// updateView rebuilds the view matrix from position and orientation.
// Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	common.ViewFromQuat(c.viewMatrix[:], c.position, c.orientation)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

// updateProjection rebuilds the projection matrix. The zoom factor narrows
// the effective field of view: effFov = 2*atan(tan(fov/2)/zoom).
// Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	effFov := c.fov
	if c.zoom != 1 {
		effFov = 2 * math32.Atan(math32.Tan(c.fov/2)/c.zoom)
	}
	common.Perspective(c.projectionMatrix[:], effFov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
