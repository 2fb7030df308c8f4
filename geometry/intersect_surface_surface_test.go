package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

func TestIntersectSurfaceSurface_PerpendicularPlanes(t *testing.T) {
	xy, err := NewPlane(gmath.Vec3{}, gmath.Vec3{X: 1, Y: 0, Z: 0}, gmath.Vec3{X: 0, Y: 1, Z: 0}, -5, 5, -5, 5)
	require.NoError(t, err)
	xz, err := NewPlane(gmath.Vec3{}, gmath.Vec3{X: 1, Y: 0, Z: 0}, gmath.Vec3{X: 0, Y: 0, Z: 1}, -5, 5, -5, 5)
	require.NoError(t, err)

	curves, err := IntersectSurfaceSurface(xy, xy.UVDomain(), xz, xz.UVDomain(), 1e-6)
	require.NoError(t, err)
	require.Len(t, curves, 1)
	for _, p := range curves[0].Points {
		assert.InDelta(t, 0, p.Y, 1e-6)
		assert.InDelta(t, 0, p.Z, 1e-6)
	}
}

func TestIntersectSurfaceSurface_ParallelPlanesNoHit(t *testing.T) {
	a, err := NewPlane(gmath.Vec3{}, gmath.Vec3{X: 1, Y: 0, Z: 0}, gmath.Vec3{X: 0, Y: 1, Z: 0}, -5, 5, -5, 5)
	require.NoError(t, err)
	b, err := NewPlane(gmath.Vec3{X: 0, Y: 0, Z: 3}, gmath.Vec3{X: 1, Y: 0, Z: 0}, gmath.Vec3{X: 0, Y: 1, Z: 0}, -5, 5, -5, 5)
	require.NoError(t, err)

	curves, err := IntersectSurfaceSurface(a, a.UVDomain(), b, b.UVDomain(), 1e-6)
	require.NoError(t, err)
	assert.Empty(t, curves)
}
