package tessellate

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// Mesh is a welded indexed triangle mesh: Triangles[i] names three
// indices into Positions/Normals/UVs.
type Mesh struct {
	Positions []gmath.Vec3
	Normals   []gmath.Vec3
	UVs       [][2]float64
	Triangles [][3]int
}

// faceMesh is one face's un-welded fragment, indices local to itself.
type faceMesh struct {
	positions []gmath.Vec3
	normals   []gmath.Vec3
	uvs       [][2]float64
	triangles [][3]int
}

func newFaceMesh() *faceMesh { return &faceMesh{} }

func (fm *faceMesh) addVertex(p, n gmath.Vec3, u, v float64) int {
	idx := len(fm.positions)
	fm.positions = append(fm.positions, p)
	fm.normals = append(fm.normals, n)
	fm.uvs = append(fm.uvs, [2]float64{u, v})
	return idx
}

func (fm *faceMesh) addTriangle(a, b, c int) {
	fm.triangles = append(fm.triangles, [3]int{a, b, c})
}
