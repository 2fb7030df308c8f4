package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

func TestIntersectCurveCurve_CrossingLines(t *testing.T) {
	a, err := NewLine(gmath.Vec3{X: -5, Y: 0, Z: 0}, gmath.Vec3{X: 1, Y: 0, Z: 0}, -10, 10)
	require.NoError(t, err)
	b, err := NewLine(gmath.Vec3{X: 0, Y: -5, Z: 0}, gmath.Vec3{X: 0, Y: 1, Z: 0}, -10, 10)
	require.NoError(t, err)

	hits, err := IntersectCurveCurve(a, a.Domain(), b, b.Domain(), 1e-6)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.True(t, hits[0].Point.Equals(gmath.Vec3{}, 1e-6))
}

func TestIntersectCurveCurve_ParallelLinesNoHit(t *testing.T) {
	a, err := NewLine(gmath.Vec3{X: 0, Y: 0, Z: 0}, gmath.Vec3{X: 1, Y: 0, Z: 0}, -10, 10)
	require.NoError(t, err)
	b, err := NewLine(gmath.Vec3{X: 0, Y: 1, Z: 0}, gmath.Vec3{X: 1, Y: 0, Z: 0}, -10, 10)
	require.NoError(t, err)

	hits, err := IntersectCurveCurve(a, a.Domain(), b, b.Domain(), 1e-6)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIntersectCurveCurve_CoincidentLinesTangentialOnly(t *testing.T) {
	a, err := NewLine(gmath.Vec3{X: 0, Y: 0, Z: 0}, gmath.Vec3{X: 1, Y: 0, Z: 0}, -10, 10)
	require.NoError(t, err)
	b, err := NewLine(gmath.Vec3{X: 5, Y: 0, Z: 0}, gmath.Vec3{X: 1, Y: 0, Z: 0}, -10, 10)
	require.NoError(t, err)

	_, err = IntersectCurveCurve(a, a.Domain(), b, b.Domain(), 1e-6)
	assert.ErrorIs(t, err, ErrTangentialOnly)
}

func TestIntersectCurveCurve_LineAndArc(t *testing.T) {
	circle, err := NewArc(gmath.Vec3{}, gmath.Vec3{X: 1, Y: 0, Z: 0}, gmath.Vec3{X: 0, Y: 1, Z: 0}, 1, 1, 0, 2*math.Pi)
	require.NoError(t, err)
	line, err := NewLine(gmath.Vec3{X: -3, Y: 0, Z: 0}, gmath.Vec3{X: 1, Y: 0, Z: 0}, 0, 6)
	require.NoError(t, err)

	hits, err := IntersectCurveCurve(line, line.Domain(), circle, circle.Domain(), 1e-6)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.InDelta(t, 1, h.Point.Length(), 1e-4)
	}
}
