package step

import (
	"bytes"
	"testing"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/topology"
	"github.com/stretchr/testify/require"
)

func TestSphereRoundTrip(t *testing.T) {
	body, err := topology.NewSphereShell(nil, gmath.Vec3{}, 25)
	require.NoError(t, err)
	require.NoError(t, topology.CheckInvariants(body))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "sphere", body))

	back, err := Import(&buf, nil)
	require.NoError(t, err)
	require.NoError(t, topology.CheckInvariants(back))

	faces := back.FacesOfBody()
	require.Len(t, faces, 1)

	face, err := back.Face(faces[0])
	require.NoError(t, err)
	sph, ok := face.Surface.(*geometry.Sphere)
	require.True(t, ok, "expected *geometry.Sphere, got %T", face.Surface)
	require.InDelta(t, 25, sph.Radius, 1e-6)
	require.InDelta(t, 0, sph.Center.DistanceTo(gmath.Vec3{}), 1e-6)

	// Two pole vertices joined by one meridian seam edge, as
	// topology.NewSphereShell builds it.
	v, e, f, l := back.Counts()
	require.Equal(t, 2, v)
	require.Equal(t, 1, e)
	require.Equal(t, 1, f)
	require.Equal(t, 1, l)
}

func TestBoxRoundTrip(t *testing.T) {
	body, err := topology.NewBox(nil, gmath.Vec3{}, 2, 3, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "box", body))

	back, err := Import(&buf, nil)
	require.NoError(t, err)
	require.NoError(t, topology.CheckInvariants(back))

	v, e, f, l := back.Counts()
	require.Equal(t, 8, v)
	require.Equal(t, 12, e)
	require.Equal(t, 6, f)
	require.Equal(t, 6, l)

	for _, fid := range back.FacesOfBody() {
		face, err := back.Face(fid)
		require.NoError(t, err)
		_, ok := face.Surface.(*geometry.Plane)
		require.True(t, ok, "expected *geometry.Plane, got %T", face.Surface)
	}
}

func TestCylinderRoundTrip(t *testing.T) {
	body, err := topology.NewCylinderShell(nil, gmath.Vec3{}, 1.5, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "cylinder", body))

	back, err := Import(&buf, nil)
	require.NoError(t, err)
	require.NoError(t, topology.CheckInvariants(back))

	v, e, f, l := back.Counts()
	require.Equal(t, 2, v)
	require.Equal(t, 3, e)
	require.Equal(t, 3, f)
	require.Equal(t, 3, l)

	var sawCylinder, sawPlane int
	for _, fid := range back.FacesOfBody() {
		face, err := back.Face(fid)
		require.NoError(t, err)
		switch s := face.Surface.(type) {
		case *geometry.Cylinder:
			sawCylinder++
			require.InDelta(t, 1.5, s.Radius, 1e-6)
		case *geometry.Plane:
			sawPlane++
		default:
			t.Fatalf("unexpected surface type %T", s)
		}
	}
	require.Equal(t, 1, sawCylinder)
	require.Equal(t, 2, sawPlane)
}

func TestConeRoundTrip(t *testing.T) {
	body, err := topology.NewConeShell(nil, gmath.Vec3{}, 0.4, 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "cone", body))

	back, err := Import(&buf, nil)
	require.NoError(t, err)
	require.NoError(t, topology.CheckInvariants(back))

	var sawCone bool
	for _, fid := range back.FacesOfBody() {
		face, err := back.Face(fid)
		require.NoError(t, err)
		if c, ok := face.Surface.(*geometry.Cone); ok {
			sawCone = true
			require.InDelta(t, 0.4, c.HalfAngle, 1e-6)
		}
	}
	require.True(t, sawCone)
}

func TestTorusRoundTrip(t *testing.T) {
	body, err := topology.NewTorusShell(nil, gmath.Vec3{}, 10, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, "torus", body))

	back, err := Import(&buf, nil)
	require.NoError(t, err)
	require.NoError(t, topology.CheckInvariants(back))

	faces := back.FacesOfBody()
	require.Len(t, faces, 1)
	face, err := back.Face(faces[0])
	require.NoError(t, err)
	tor, ok := face.Surface.(*geometry.Torus)
	require.True(t, ok)
	require.InDelta(t, 10, tor.MajorRadius, 1e-6)
	require.InDelta(t, 2, tor.MinorRadius, 1e-6)
}

func TestExport_BoxWithoutEllipticalArcsSucceeds(t *testing.T) {
	body, err := topology.NewBox(nil, gmath.Vec3{}, 1, 1, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Export(&buf, "box", body)
	require.NoError(t, err, "a box has no elliptical arcs, so export must succeed")
}

func TestImport_RejectsUnknownSurfaceEntity(t *testing.T) {
	const doc = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('x'),'2;1');
FILE_NAME('x','2024',(''),(''),'x','x','');
FILE_SCHEMA(('AUTOMOTIVE_DESIGN'));
ENDSEC;
DATA;
#1=CARTESIAN_POINT('',(0.0,0.0,0.0));
#2=B_SPLINE_SURFACE_WITH_KNOTS('',3,3,(()),.UNSPECIFIED.,.F.,.F.,.F.);
#3=FACE_OUTER_BOUND('',#1,.T.);
#4=ADVANCED_FACE('',(#3),#2,.T.);
#5=CLOSED_SHELL('',(#4));
#6=MANIFOLD_SOLID_BREP('',#5);
ENDSEC;
END-ISO-10303-21;
`
	_, err := Import(bytes.NewBufferString(doc), nil)
	require.Error(t, err)
}
