package operations

import (
	"github.com/dhconnelly/rtreego"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// faceBox is one face's world-space AABB, indexed in an R-tree so a
// Boolean can cheaply reject (or narrow) candidate face pairs before
// paying for tessellation and BSP clipping — the standard broad-phase/
// narrow-phase split any solid modeler's Boolean pipeline uses.
type faceBox struct {
	id     int
	bounds *rtreego.Rect
}

func (f faceBox) Bounds() *rtreego.Rect { return f.bounds }

const broadPhasePad = 1e-6

func aabbToRect(box gmath.AABB) (*rtreego.Rect, error) {
	pad := broadPhasePad
	lengths := []float64{
		(box.Max.X - box.Min.X) + pad,
		(box.Max.Y - box.Min.Y) + pad,
		(box.Max.Z - box.Min.Z) + pad,
	}
	origin := rtreego.Point{box.Min.X, box.Min.Y, box.Min.Z}
	return rtreego.NewRect(origin, lengths)
}

// overlapping reports whether any face AABB of the first box set
// intersects any face AABB of the second. A false result proves the
// two solids occupy disjoint space, letting a Boolean combinator skip
// the BSP clip entirely; a true result is only a hint — the BSP stage
// still performs the exact clip.
func overlapping(a, b []gmath.AABB) bool {
	tree := rtreego.NewTree(3, 5, 20)
	for i, box := range a {
		rect, err := aabbToRect(box)
		if err != nil {
			continue
		}
		tree.Insert(faceBox{id: i, bounds: rect})
	}
	for _, box := range b {
		rect, err := aabbToRect(box)
		if err != nil {
			continue
		}
		if len(tree.SearchIntersect(rect)) > 0 {
			return true
		}
	}
	return false
}
