package gmath

// Transform is a rigid transform expressed as translation + rotation,
// in preference to a raw 4x4 matrix, so that composition stays
// numerically well-conditioned under repeated application (no creeping
// shear from matrix round-off).
type Transform struct {
	Translation Vec3
	Rotation    Quaternion
}

// IdentityTransform returns the identity rigid transform.
func IdentityTransform() Transform {
	return Transform{Rotation: IdentityQuaternion()}
}

// Apply transforms the point p by t (rotate, then translate).
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// ApplyDir transforms the free vector d by t (rotation only).
func (t Transform) ApplyDir(d Vec3) Vec3 {
	return t.Rotation.Rotate(d)
}

// Then composes t and u so that p.Then result equals u.Apply(t.Apply(p)):
// t is applied first, then u.
func (t Transform) Then(u Transform) Transform {
	return Transform{
		Translation: u.Rotation.Rotate(t.Translation).Add(u.Translation),
		Rotation:    u.Rotation.Mul(t.Rotation),
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Inverse()
	return Transform{
		Translation: inv.Rotate(t.Translation.Neg()),
		Rotation:    inv,
	}
}

// Mat4 returns the 4x4 affine matrix equivalent to t.
func (t Transform) Mat4() Mat4 {
	m := t.Rotation.Mat4()
	m.M[0][3] = t.Translation.X
	m.M[1][3] = t.Translation.Y
	m.M[2][3] = t.Translation.Z
	return m
}
