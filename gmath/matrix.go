package gmath

// Mat3 is a row-major 3x3 matrix, used for pure linear maps (normal
// transforms, rotation-only composition) where no translation is
// carried.
type Mat3 struct {
	M [3][3]float64
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	var m Mat3
	for i := 0; i < 3; i++ {
		m.M[i][i] = 1
	}
	return m
}

// MulVec3 applies m to v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// Mul returns m*n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m.M[i][k] * n.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[j][i] = m.M[i][j]
		}
	}
	return r
}

// Determinant returns det(m).
func (m Mat3) Determinant() float64 {
	return m.M[0][0]*(m.M[1][1]*m.M[2][2]-m.M[1][2]*m.M[2][1]) -
		m.M[0][1]*(m.M[1][0]*m.M[2][2]-m.M[1][2]*m.M[2][0]) +
		m.M[0][2]*(m.M[1][0]*m.M[2][1]-m.M[1][1]*m.M[2][0])
}

// Mat4 is a row-major 4x4 affine matrix (3x3 linear block plus a
// translation column).
type Mat4 struct {
	M [4][4]float64
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

// MulPoint applies m to the point p (implicit w=1, translation applied).
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*p.X + m.M[0][1]*p.Y + m.M[0][2]*p.Z + m.M[0][3],
		Y: m.M[1][0]*p.X + m.M[1][1]*p.Y + m.M[1][2]*p.Z + m.M[1][3],
		Z: m.M[2][0]*p.X + m.M[2][1]*p.Y + m.M[2][2]*p.Z + m.M[2][3],
	}
}

// MulDir applies the linear (rotation/scale) part of m to the free
// vector d; translation is not applied.
func (m Mat4) MulDir(d Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*d.X + m.M[0][1]*d.Y + m.M[0][2]*d.Z,
		Y: m.M[1][0]*d.X + m.M[1][1]*d.Y + m.M[1][2]*d.Z,
		Z: m.M[2][0]*d.X + m.M[2][1]*d.Y + m.M[2][2]*d.Z,
	}
}

// Mul returns m*n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.M[i][k] * n.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// Linear3 extracts the upper-left 3x3 linear block of m.
func (m Mat4) Linear3() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[i][j] = m.M[i][j]
		}
	}
	return r
}

// Translation returns the translation column of m.
func (m Mat4) Translation() Vec3 {
	return Vec3{m.M[0][3], m.M[1][3], m.M[2][3]}
}

// Translate4 returns an affine matrix translating by t.
func Translate4(t Vec3) Mat4 {
	m := Identity4()
	m.M[0][3], m.M[1][3], m.M[2][3] = t.X, t.Y, t.Z
	return m
}
