package topology

import (
	"testing"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/stretchr/testify/require"
)

func TestNewBox_SatisfiesEulerPoincare(t *testing.T) {
	b, err := NewBox(nil, gmath.Vec3{}, 2, 3, 4)
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(b))

	v, e, f, l := b.counts()
	require.Equal(t, 8, v)
	require.Equal(t, 12, e)
	require.Equal(t, 6, f)
	require.Equal(t, 6, l)
	require.Len(t, b.Shells(), 1)
}

func TestNewBox_RejectsDegenerateExtent(t *testing.T) {
	_, err := NewBox(nil, gmath.Vec3{}, 0, 1, 1)
	require.ErrorIs(t, err, ErrPrecondition)
}

func TestNewCylinderShell_SatisfiesEulerPoincare(t *testing.T) {
	b, err := NewCylinderShell(nil, gmath.Vec3{}, 1.5, 3)
	require.NoError(t, err)
	require.NoError(t, CheckInvariants(b))

	v, e, f, l := b.counts()
	require.Equal(t, 2, v)
	require.Equal(t, 3, e)
	require.Equal(t, 3, f)
	require.Equal(t, 3, l)
}

func TestKFMRH_IncrementsGenusAndKeepsInvariantTrue(t *testing.T) {
	b, err := NewCylinderShell(nil, gmath.Vec3{}, 1, 2)
	require.NoError(t, err)

	faces := b.FacesOfBody()
	require.Len(t, faces, 3)

	err = b.KFMRH(faces[0])
	require.NoError(t, err)

	shellID := b.Shells()[0]
	sh, err := b.Shell(shellID)
	require.NoError(t, err)
	require.Equal(t, 1, sh.genus)
	require.NoError(t, CheckInvariants(b))
}

func TestKFMRH_RejectsInvalidFace(t *testing.T) {
	b, err := NewBox(nil, gmath.Vec3{}, 1, 1, 1)
	require.NoError(t, err)
	err = b.KFMRH(FaceID(999))
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestMEF_SplitsLoopIntoTwoFaces(t *testing.T) {
	b, err := NewBox(nil, gmath.Vec3{}, 1, 1, 1)
	require.NoError(t, err)
	beforeF, beforeL := len(b.faces), len(b.loops)

	face := b.FacesOfBody()[0]
	loops, err := b.LoopsOfFace(face)
	require.NoError(t, err)
	coedges, err := b.CoedgesAroundLoop(loops[0])
	require.NoError(t, err)
	require.Len(t, coedges, 4)

	v1 := b.coedges[coedges[0]].originOf(b.edges[b.coedges[coedges[0]].edge])
	v2 := b.coedges[coedges[2]].originOf(b.edges[b.coedges[coedges[2]].edge])
	p1, err := b.Vertex(v1)
	require.NoError(t, err)
	p2, err := b.Vertex(v2)
	require.NoError(t, err)
	diag := p2.Point.Sub(p1.Point)
	length := diag.Length()
	line, err := geometry.NewLine(p1.Point, diag.Scale(1/length), 0, length)
	require.NoError(t, err)

	f := b.faces[face]
	newFace, newLoop, _, err := b.MEF(coedges[0], coedges[2], f.Surface, f.UV, line, gmath.Interval{Lo: 0, Hi: length})
	require.NoError(t, err)
	require.NotEqual(t, NoFace, newFace)
	require.NotEqual(t, NoLoop, newLoop)
	require.Equal(t, beforeF+1, len(b.faces))
	require.Equal(t, beforeL+1, len(b.loops))
	require.NoError(t, CheckInvariants(b))
}

func TestMEF_RejectsCoedgesFromDifferentLoops(t *testing.T) {
	b, err := NewBox(nil, gmath.Vec3{}, 1, 1, 1)
	require.NoError(t, err)
	faces := b.FacesOfBody()
	loopsA, _ := b.LoopsOfFace(faces[0])
	loopsB, _ := b.LoopsOfFace(faces[1])
	coA, _ := b.CoedgesAroundLoop(loopsA[0])
	coB, _ := b.CoedgesAroundLoop(loopsB[0])

	_, _, _, err = b.MEF(coA[0], coB[0], b.faces[faces[0]].Surface, b.faces[faces[0]].UV, nil, gmath.Interval{})
	require.ErrorIs(t, err, ErrPrecondition)
}
