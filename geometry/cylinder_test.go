package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

func TestCylinder_EvaluateOnSurface(t *testing.T) {
	c, err := NewCylinder(gmath.Vec3{}, gmath.Vec3{X: 0, Y: 0, Z: 1}, 2, 0, 5)
	require.NoError(t, err)

	p := c.Evaluate(0, 3)
	assert.InDelta(t, 2, math.Hypot(p.X, p.Y), 1e-9)
	assert.InDelta(t, 3, p.Z, 1e-9)
}

func TestCylinder_ProjectOffAxis(t *testing.T) {
	c, err := NewCylinder(gmath.Vec3{}, gmath.Vec3{X: 0, Y: 0, Z: 1}, 1, 0, 5)
	require.NoError(t, err)

	_, v, foot, dist := c.Project(gmath.Vec3{X: 3, Y: 0, Z: 2}, c.UVDomain())
	assert.InDelta(t, 2, v, 1e-9)
	assert.True(t, foot.Equals(gmath.Vec3{X: 1, Y: 0, Z: 2}, 1e-9))
	assert.InDelta(t, 2, dist, 1e-9)
}

func TestNewCylinder_NonPositiveRadiusRejected(t *testing.T) {
	_, err := NewCylinder(gmath.Vec3{}, gmath.Vec3{X: 0, Y: 0, Z: 1}, 0, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}
