package topology

import (
	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// BRepSpec is a fully explicit boundary representation: vertices,
// edges, loops, faces and shells referencing each other by slice
// index rather than by welding or inference. NewFromBRep is the
// analytic-surface counterpart to NewFromPolygonSoup: where that
// constructor derives edge sharing from position welding on a flat
// polygon soup, this one is for callers — interchange readers, chiefly
// — that already know the exact shared-edge graph and the surfaces and
// curves bounding each face, curved or not.
type BRepSpec struct {
	Vertices []gmath.Vec3
	Edges    []BRepEdge
	Loops    []BRepLoop
	Faces    []BRepFace
	Shells   []BRepShell
}

// BRepEdge carries the edge's curve, its parameter domain, and the
// indices (into BRepSpec.Vertices) of its two endpoints in the curve's
// own parameter order.
type BRepEdge struct {
	Curve  geometry.Curve
	Domain geometry.Domain
	Tail   [2]int
}

// BRepCoedge is one directed use of an edge (by index into
// BRepSpec.Edges) around a loop. Orientation true means the coedge
// traverses its edge's curve forward, tail[0] -> tail[1].
type BRepCoedge struct {
	Edge        int
	Orientation bool
}

// BRepLoop is a cyclic chain of coedges. Outer marks the single loop
// per face that bounds its outer boundary.
type BRepLoop struct {
	Coedges []BRepCoedge
	Outer   bool
}

// BRepFace carries the face's surface, its restricted (u, v) domain,
// and the indices (into BRepSpec.Loops) of its bounding loops —
// Loops[0] must be the outer loop.
type BRepFace struct {
	Surface   geometry.Surface
	UV        geometry.UVDomain
	Loops     []int
	SameSense bool
}

// BRepShell is one connected shell: the faces it owns (by index into
// BRepSpec.Faces), its genus, and whether it is a void (inner cavity)
// shell.
type BRepShell struct {
	Faces []int
	Genus int
	Void  bool
}

// NewFromBRep builds a Body exactly matching spec's graph: no weld
// quantization, no normal derivation, no genus inference — every edge
// sharing, every loop cycle and every shell's genus is taken as given.
// CheckInvariants still runs at the end, so a spec describing a
// non-manifold or Euler-inconsistent graph is rejected rather than
// silently accepted.
func NewFromBRep(tol *gmath.ToleranceContext, spec BRepSpec) (*Body, error) {
	b := NewEmptyBody(tol)

	verts := make([]VertexID, len(spec.Vertices))
	for i, p := range spec.Vertices {
		verts[i] = b.newVertex(p)
	}

	edges := make([]EdgeID, len(spec.Edges))
	for i, e := range spec.Edges {
		if e.Tail[0] < 0 || e.Tail[0] >= len(verts) || e.Tail[1] < 0 || e.Tail[1] >= len(verts) {
			return nil, ErrPrecondition
		}
		edges[i] = b.newEdge(Edge{
			Curve:  e.Curve,
			Domain: e.Domain,
			tail:   [2]VertexID{verts[e.Tail[0]], verts[e.Tail[1]]},
			coedge: [2]CoedgeID{NoCoedge, NoCoedge},
		})
	}

	loops := make([]LoopID, len(spec.Loops))
	for i, l := range spec.Loops {
		loop := b.newLoop(Loop{outer: l.Outer})
		loops[i] = loop
		for _, c := range l.Coedges {
			if c.Edge < 0 || c.Edge >= len(edges) {
				return nil, ErrPrecondition
			}
			b.linkRingCoedge(loop, edges[c.Edge], c.Orientation)
		}
	}

	// Two coedges landing on the same edge are partners regardless of
	// whether they share a loop (an ordinary shared edge between two
	// faces) or both belong to the same face's fundamental-polygon
	// loop (a periodic seam, as in NewSphereShell/NewTorusShell).
	for _, eid := range edges {
		e := &b.edges[eid]
		if e.coedge[0] != NoCoedge && e.coedge[1] != NoCoedge {
			b.coedges[e.coedge[0]].partner = e.coedge[1]
			b.coedges[e.coedge[1]].partner = e.coedge[0]
		}
	}

	faces := make([]FaceID, len(spec.Faces))
	for i, f := range spec.Faces {
		loopIDs := make([]LoopID, len(f.Loops))
		for j, li := range f.Loops {
			if li < 0 || li >= len(loops) {
				return nil, ErrPrecondition
			}
			loopIDs[j] = loops[li]
		}
		face := b.newFace(Face{Surface: f.Surface, UV: f.UV, loops: loopIDs, sameSense: f.SameSense})
		for _, lid := range loopIDs {
			b.loops[lid].face = face
		}
		faces[i] = face
	}

	for _, s := range spec.Shells {
		shellFaces := make([]FaceID, len(s.Faces))
		for j, fi := range s.Faces {
			if fi < 0 || fi >= len(faces) {
				return nil, ErrPrecondition
			}
			shellFaces[j] = faces[fi]
		}
		shell := b.newShell(Shell{faces: shellFaces, genus: s.Genus, void: s.Void})
		for _, fid := range shellFaces {
			b.faces[fid].shell = shell
		}
		b.shellList = append(b.shellList, shell)
	}

	if err := CheckInvariants(b); err != nil {
		return nil, err
	}
	return b, nil
}
