package kernel

import (
	"testing"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/topology"
	"github.com/stretchr/testify/require"
)

func TestEditSession_MoveFaceCommitsToNewHandle(t *testing.T) {
	k := Initialize()
	h, err := k.MakeBox(2, 3, 4)
	require.NoError(t, err)

	faces, err := k.Faces(h)
	require.NoError(t, err)
	require.Len(t, faces, 6)
	topFace := faces[1] // NewBox's faceRings[1] is the +Z top face

	sess, err := k.BeginEdit(h)
	require.NoError(t, err)

	tr := gmath.Transform{Translation: gmath.Vec3{Z: 2}, Rotation: gmath.IdentityQuaternion()}
	require.NoError(t, sess.MoveFace([]topology.FaceID{topFace}, tr))

	out, err := sess.EndEdit()
	require.NoError(t, err)
	require.NotEqual(t, h, out)

	orig, err := k.Body(h)
	require.NoError(t, err)
	edited, err := k.Body(out)
	require.NoError(t, err)
	require.NotSame(t, orig, edited)

	ov, oe, of, ol := orig.Counts()
	ev, ee, ef, el := edited.Counts()
	require.Equal(t, ov, ev)
	require.Equal(t, oe, ee)
	require.Equal(t, of, ef)
	require.Equal(t, ol, el)
}

func TestEditSession_ApplyDimensionAndSolve(t *testing.T) {
	k := Initialize()
	h, err := k.MakeBox(2, 3, 4)
	require.NoError(t, err)
	faces, err := k.Faces(h)
	require.NoError(t, err)
	topFace := faces[1]

	sess, err := k.BeginEdit(h)
	require.NoError(t, err)

	require.NoError(t, sess.ApplyDimension([]topology.FaceID{topFace}, 4, 6))

	rules, err := sess.Solve()
	require.NoError(t, err)
	require.NotEmpty(t, rules, "a box still has plenty of parallel/perpendicular face pairs after a dimension drag")

	out, err := sess.EndEdit()
	require.NoError(t, err)
	require.NotEqual(t, h, out)
}

func TestEditSession_LeavesOriginalHandleUntouched(t *testing.T) {
	k := Initialize()
	h, err := k.MakeBox(2, 3, 4)
	require.NoError(t, err)
	faces, err := k.Faces(h)
	require.NoError(t, err)
	topFace := faces[1]

	before, err := k.Body(h)
	require.NoError(t, err)
	bv, be, bf, bl := before.Counts()

	sess, err := k.BeginEdit(h)
	require.NoError(t, err)
	tr := gmath.Transform{Translation: gmath.Vec3{Z: 1}, Rotation: gmath.IdentityQuaternion()}
	require.NoError(t, sess.MoveFace([]topology.FaceID{topFace}, tr))
	_, err = sess.EndEdit()
	require.NoError(t, err)

	after, err := k.Body(h)
	require.NoError(t, err)
	av, ae, af, al := after.Counts()
	require.Equal(t, bv, av)
	require.Equal(t, be, ae)
	require.Equal(t, bf, af)
	require.Equal(t, bl, al)
}
