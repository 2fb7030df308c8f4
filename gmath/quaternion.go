package gmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion is a unit quaternion used for rotations. It is backed by
// go-gl/mathgl (mgl64.Quat) for the algebra (multiplication, SLERP,
// vector rotation) so that NOVA-CAD does not re-derive quaternion
// arithmetic the ecosystem already provides.
type Quaternion struct {
	q mgl64.Quat
}

// IdentityQuaternion returns the identity rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{q: mgl64.QuatIdent()}
}

// QuaternionFromAxisAngle builds a unit quaternion representing a
// rotation of angle radians about axis. axis need not be normalized;
// ErrNotNormalizable is returned if it is zero-length.
func QuaternionFromAxisAngle(axis Vec3, angle float64) (Quaternion, error) {
	unit, err := axis.Normalize()
	if err != nil {
		return Quaternion{}, err
	}
	q := mgl64.QuatRotate(angle, mgl64.Vec3{unit.X, unit.Y, unit.Z})
	return Quaternion{q: q.Normalize()}, nil
}

// Mul returns q*r (applies r first, then q, to a rotated vector).
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{q: q.q.Mul(r.q)}
}

// Rotate applies q to the free vector v.
func (q Quaternion) Rotate(v Vec3) Vec3 {
	r := q.q.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vec3{r[0], r[1], r[2]}
}

// Inverse returns the inverse rotation of q.
func (q Quaternion) Inverse() Quaternion {
	return Quaternion{q: q.q.Inverse()}
}

// Mat4 returns the 4x4 rotation matrix equivalent to q (translation
// identity), converted into gmath's own Mat4 type.
func (q Quaternion) Mat4() Mat4 {
	m := q.q.Mat4()
	var out Mat4
	// mgl64.Mat4 is column-major [16]float64; gmath.Mat4 is row-major.
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out.M[row][col] = m[col*4+row]
		}
	}
	return out
}

// Slerp spherically interpolates between q and r at parameter t in
// [0,1], producing a smooth orientation blend.
func (q Quaternion) Slerp(r Quaternion, t float64) Quaternion {
	return Quaternion{q: mgl64.QuatSlerp(q.q, r.q, t)}
}

// Dot returns the 4D dot product of the underlying quaternion
// components, used by ApproxEqual.
func (q Quaternion) Dot(r Quaternion) float64 {
	return q.q.Dot(r.q)
}

// ApproxEqual reports whether q and r represent the same rotation to
// within tol (allows the double-cover sign ambiguity of quaternions).
func (q Quaternion) ApproxEqual(r Quaternion, tol float64) bool {
	d := math.Abs(q.Dot(r))
	return d >= 1-tol
}
