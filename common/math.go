package common

import (
	"github.com/chewxy/math32"
)

// Vec3 is a world-space vector or point. Stored as a plain array so camera
// and animation code can mutate shared state in place without wrapper types.
type Vec3 = [3]float32

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat = [4]float32

// Spherical expresses a camera offset from an orbit target as
// radius/polar/azimuth. Polar is measured from the +Y axis (0 = straight up,
// Pi = straight down), azimuth around the Y axis with 0 on +Z.
type Spherical struct {
	// Radius is the distance from the orbit target.
	Radius float32
	// Polar is the angle from the +Y axis in radians.
	Polar float32
	// Azimuth is the angle around the Y axis in radians.
	Azimuth float32
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order. Result: out = a * b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space convention with z in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up Vec3) {
	z := Normalize3(Sub3(eye, center))
	x := Normalize3(Cross3(up, z))
	y := Cross3(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -Dot3(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -Dot3(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -Dot3(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// --- scalar helpers ---

// Clamp limits v to the inclusive range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
//
// Parameters:
//   - v: the value to clamp
//
// Returns:
//   - float32: the clamped value
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates between a and b by t.
//
// Parameters:
//   - a: start value (t = 0)
//   - b: end value (t = 1)
//   - t: interpolation factor
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// SoftClamp bounds v smoothly inside (-limit, limit) using a tanh curve.
// Unlike a hard clamp the output approaches the limit asymptotically, so
// there is no visible snap when the input crosses the boundary.
//
// Parameters:
//   - v: the value to bound
//   - limit: the asymptotic bound (must be > 0)
//
// Returns:
//   - float32: the bounded value, |result| < limit for all finite v
func SoftClamp(v, limit float32) float32 {
	if limit <= 0 {
		return 0
	}
	return limit * math32.Tanh(v/limit)
}

// WrapDegrees180 wraps an angle in degrees to the range (-180, 180].
// Used for delta angles measured against a fixed origin, where raw sensor
// values can jump across the +-180 seam.
//
// Parameters:
//   - deg: the angle in degrees
//
// Returns:
//   - float32: the wrapped angle
func WrapDegrees180(deg float32) float32 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

// --- vector helpers ---

// Add3 returns a + b.
func Add3(a, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v scaled by s.
func Scale3(v Vec3, s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the Euclidean length of v.
func Length3(v Vec3) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Dist3 returns the Euclidean distance between a and b.
func Dist3(a, b Vec3) float32 {
	return Length3(Sub3(a, b))
}

// Normalize3 returns v scaled to unit length. A zero-length input is
// returned unchanged rather than producing NaN components.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - Vec3: the unit-length vector, or v itself when its length is ~0
func Normalize3(v Vec3) Vec3 {
	l := Length3(v)
	if l < 1e-8 {
		return v
	}
	return Scale3(v, 1/l)
}

// Lerp3 linearly interpolates between a and b by t, component-wise.
//
// Parameters:
//   - a: start vector (t = 0)
//   - b: end vector (t = 1)
//   - t: interpolation factor
//
// Returns:
//   - Vec3: the interpolated vector
func Lerp3(a, b Vec3, t float32) Vec3 {
	return Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// RotateAround rotates v around the given unit-length axis by angle radians
// using the Rodrigues rotation formula.
//
// Parameters:
//   - v: the vector to rotate
//   - axis: the rotation axis (must be unit length)
//   - angle: rotation angle in radians
//
// Returns:
//   - Vec3: the rotated vector
func RotateAround(v, axis Vec3, angle float32) Vec3 {
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)
	cross := Cross3(axis, v)
	dot := Dot3(axis, v)

	return Add3(
		Add3(Scale3(v, cos), Scale3(cross, sin)),
		Scale3(axis, dot*(1-cos)),
	)
}

// SafeRightAxis derives the camera's right axis from a forward vector.
// When forward is parallel to up (zero-length cross product) it falls back
// through two alternative reference vectors. The result is always unit
// length and never zero, so downstream normalization cannot produce NaN.
//
// Parameters:
//   - forward: the camera's forward direction (need not be unit length)
//   - up: the preferred up reference vector
//
// Returns:
//   - Vec3: a unit-length right axis
func SafeRightAxis(forward, up Vec3) Vec3 {
	right := Cross3(forward, up)
	if Length3(right) < 1e-6 {
		right = Cross3(forward, Vec3{1, 0, 0})
	}
	if Length3(right) < 1e-6 {
		right = Cross3(forward, Vec3{0, 0, 1})
	}
	if Length3(right) < 1e-6 {
		// Forward itself is degenerate; any fixed axis keeps the math finite.
		return Vec3{1, 0, 0}
	}
	return Normalize3(right)
}

// --- spherical helpers ---

// ToSpherical converts a camera offset (position - target) to spherical
// coordinates.
//
// Parameters:
//   - offset: the camera position relative to the orbit target
//
// Returns:
//   - Spherical: the radius/polar/azimuth representation
func ToSpherical(offset Vec3) Spherical {
	r := Length3(offset)
	if r < 1e-8 {
		return Spherical{}
	}
	return Spherical{
		Radius:  r,
		Polar:   math32.Acos(Clamp(offset[1]/r, -1, 1)),
		Azimuth: math32.Atan2(offset[0], offset[2]),
	}
}

// FromSpherical converts spherical coordinates back to a cartesian offset
// from the orbit target.
//
// Parameters:
//   - s: the spherical coordinates
//
// Returns:
//   - Vec3: the cartesian offset (position - target)
func FromSpherical(s Spherical) Vec3 {
	sinPolar := math32.Sin(s.Polar)
	return Vec3{
		s.Radius * sinPolar * math32.Sin(s.Azimuth),
		s.Radius * math32.Cos(s.Polar),
		s.Radius * sinPolar * math32.Cos(s.Azimuth),
	}
}

// --- quaternion helpers ---

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatNormalize returns q scaled to unit length. A zero quaternion yields
// the identity rotation.
//
// Parameters:
//   - q: the quaternion to normalize
//
// Returns:
//   - Quat: the unit-length quaternion
func QuatNormalize(q Quat) Quat {
	l := math32.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if l < 1e-8 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// QuatSlerp spherically interpolates between two rotations. Takes the
// shortest arc (negating b when the quaternions point into opposite
// hemispheres) and falls back to normalized lerp for nearly-parallel inputs.
//
// Parameters:
//   - a: start rotation (t = 0)
//   - b: end rotation (t = 1)
//   - t: interpolation factor in [0, 1]
//
// Returns:
//   - Quat: the interpolated unit rotation
func QuatSlerp(a, b Quat, t float32) Quat {
	cos := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
	if cos < 0 {
		cos = -cos
		b = Quat{-b[0], -b[1], -b[2], -b[3]}
	}

	var wa, wb float32
	if cos > 0.9995 {
		// Nearly parallel; the slerp denominator degenerates.
		wa = 1 - t
		wb = t
	} else {
		theta := math32.Acos(Clamp(cos, -1, 1))
		sin := math32.Sin(theta)
		wa = math32.Sin((1-t)*theta) / sin
		wb = math32.Sin(t*theta) / sin
	}

	return QuatNormalize(Quat{
		wa*a[0] + wb*b[0],
		wa*a[1] + wb*b[1],
		wa*a[2] + wb*b[2],
		wa*a[3] + wb*b[3],
	})
}

// QuatLookAt computes the rotation that orients the camera's local -Z axis
// from eye toward center with the given up reference, matching the LookAt
// view matrix.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation
//
// Returns:
//   - Quat: the unit orientation quaternion
func QuatLookAt(eye, center, up Vec3) Quat {
	z := Normalize3(Sub3(eye, center))
	x := Normalize3(Cross3(up, z))
	y := Cross3(z, x)

	// Rotation matrix (x|y|z columns) to quaternion, Shepperd's method.
	m00, m01, m02 := x[0], y[0], z[0]
	m10, m11, m12 := x[1], y[1], z[1]
	m20, m21, m22 := x[2], y[2], z[2]

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q = Quat{(m21 - m12) / s, (m02 - m20) / s, (m10 - m01) / s, s / 4}
	case m00 > m11 && m00 > m22:
		s := math32.Sqrt(1+m00-m11-m22) * 2
		q = Quat{s / 4, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := math32.Sqrt(1+m11-m00-m22) * 2
		q = Quat{(m01 + m10) / s, s / 4, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := math32.Sqrt(1+m22-m00-m11) * 2
		q = Quat{(m02 + m20) / s, (m12 + m21) / s, s / 4, (m10 - m01) / s}
	}
	return QuatNormalize(q)
}

// ViewFromQuat builds a view matrix from a camera position and orientation
// quaternion. The quaternion convention matches QuatLookAt: the camera looks
// down its local -Z axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - q: unit orientation quaternion
func ViewFromQuat(out []float32, eye Vec3, q Quat) {
	qx, qy, qz, qw := q[0], q[1], q[2], q[3]

	// World->view rotation is the transpose of the camera's world rotation.
	x := Vec3{1 - 2*(qy*qy+qz*qz), 2 * (qx*qy - qz*qw), 2 * (qx*qz + qy*qw)}
	y := Vec3{2 * (qx*qy + qz*qw), 1 - 2*(qx*qx+qz*qz), 2 * (qy*qz - qx*qw)}
	z := Vec3{2 * (qx*qz - qy*qw), 2 * (qy*qz + qx*qw), 1 - 2*(qx*qx+qy*qy)}

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -Dot3(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -Dot3(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -Dot3(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}
