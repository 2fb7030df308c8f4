package topology

import (
	"testing"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/stretchr/testify/require"
)

func TestClone_PreservesIdentitiesAndIsIndependent(t *testing.T) {
	b, err := NewBox(nil, gmath.Vec3{}, 1, 1, 1)
	require.NoError(t, err)

	clone := b.Clone()
	require.NoError(t, CheckInvariants(clone))

	faces := b.FacesOfBody()
	cloneFaces := clone.FacesOfBody()
	require.ElementsMatch(t, faces, cloneFaces)

	err = b.KFMRH(faces[0])
	require.NoError(t, err)

	_, err = b.Face(faces[0])
	require.NoError(t, err)
	bFace, _ := b.Face(faces[0])
	require.True(t, bFace.dead)

	cloneFace, err := clone.Face(faces[0])
	require.NoError(t, err)
	require.False(t, cloneFace.dead, "mutating b must not affect the clone taken before it")
}
