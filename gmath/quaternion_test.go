package gmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuaternionFromAxisAngle_RotatesCorrectly(t *testing.T) {
	q, err := QuaternionFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	require.NoError(t, err)

	rotated := q.Rotate(Vec3{1, 0, 0})
	assert.InDelta(t, 0, rotated.X, 1e-9)
	assert.InDelta(t, 1, rotated.Y, 1e-9)
	assert.InDelta(t, 0, rotated.Z, 1e-9)
}

func TestQuaternionFromAxisAngle_ZeroAxis(t *testing.T) {
	_, err := QuaternionFromAxisAngle(Vec3{}, math.Pi/2)
	assert.ErrorIs(t, err, ErrNotNormalizable)
}

func TestQuaternionSlerp_Endpoints(t *testing.T) {
	a := IdentityQuaternion()
	b, err := QuaternionFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)
	require.NoError(t, err)

	start := a.Slerp(b, 0)
	end := a.Slerp(b, 1)

	assert.True(t, start.ApproxEqual(a, 1e-9))
	assert.True(t, end.ApproxEqual(b, 1e-9))
}

func TestTransform_InverseRoundTrip(t *testing.T) {
	rot, err := QuaternionFromAxisAngle(Vec3{1, 1, 0}, 0.7)
	require.NoError(t, err)
	tr := Transform{Translation: Vec3{3, -2, 5}, Rotation: rot}

	p := Vec3{1, 2, 3}
	roundTripped := tr.Inverse().Apply(tr.Apply(p))

	assert.True(t, p.Equals(roundTripped, 1e-9))
}
