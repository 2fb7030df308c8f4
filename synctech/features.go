package synctech

import (
	"math"
	"strconv"

	"github.com/CarlosKeese/NOVA-CAD/algorithms"
	"github.com/CarlosKeese/NOVA-CAD/core"
	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// FeatureKind names one of the recognized feature families a body's
// faces can be grouped into.
type FeatureKind int

const (
	FeatureHole FeatureKind = iota
	FeatureFillet
	FeatureChamfer
)

func (k FeatureKind) String() string {
	switch k {
	case FeatureHole:
		return "hole"
	case FeatureFillet:
		return "fillet"
	case FeatureChamfer:
		return "chamfer"
	default:
		return "unknown"
	}
}

// Feature is one recognized region of a body's faces, with the
// draggable numeric handles that region exposes; dragging one is
// equivalent to a MoveFaces call on Faces.
type Feature struct {
	Kind    FeatureKind
	Faces   []topology.FaceID
	Handles map[string]float64
}

// RecognizeFeatures classifies regions of b's faces into Hole, Fillet
// and Chamfer features.
//
// A hole is detected directly: a cylindrical face both of whose
// circular rims are shared with a planar cap. A fillet or chamfer is
// detected by first marking "blend candidates" — planar quad faces
// with at least two neighbors that are neither coplanar nor
// perpendicular to them (a bevel strip bent against the faces on both
// of its sides) — then grouping adjacent candidates into
// connected regions with a core.Graph walked by algorithms.BFS, the
// same traversal operations/chain-walk style this kernel already
// uses elsewhere for adjacency problems. A region of exactly one face
// is reported as a chamfer (this kernel's Chamfer always fills with a
// single quad); two or more is a fillet (its Fillet fills with a fan
// of quads, one per segment). A single-segment fillet is
// geometrically indistinguishable from a chamfer and is reported as a
// chamfer — a scope limit shared with real feature-recognizers, which
// generally rely on creation history rather than pure geometry to
// break this tie.
//
// Pad, pocket and slot recognition (closed prismatic regions bounded
// by a cap and a perpendicular side wall) is not implemented: see the
// Open Question decision in this package's ledger entry.
func RecognizeFeatures(tol *gmath.ToleranceContext, b *topology.Body) ([]Feature, error) {
	if tol == nil {
		tol = b.Tolerance
	}
	faces := b.FacesOfBody()
	faceOf := make(map[topology.FaceID]topology.Face, len(faces))
	for _, fid := range faces {
		f, err := b.Face(fid)
		if err != nil {
			return nil, kerrors.Wrap("synctech.RecognizeFeatures", kerrors.ErrTopologyError, err)
		}
		faceOf[fid] = f
	}

	edgeFaces := make(map[topology.EdgeID]map[topology.FaceID]bool)
	faceEdges := make(map[topology.FaceID][]topology.EdgeID, len(faces))
	for _, fid := range faces {
		edges, err := b.EdgesOfFace(fid)
		if err != nil {
			return nil, kerrors.Wrap("synctech.RecognizeFeatures", kerrors.ErrTopologyError, err)
		}
		faceEdges[fid] = edges
		for _, eid := range edges {
			if edgeFaces[eid] == nil {
				edgeFaces[eid] = map[topology.FaceID]bool{}
			}
			edgeFaces[eid][fid] = true
		}
	}

	var out []Feature
	consumed := map[topology.FaceID]bool{}

	for _, fid := range faces {
		cyl, ok := faceOf[fid].Surface.(*geometry.Cylinder)
		if !ok {
			continue
		}
		var caps []topology.FaceID
		for _, eid := range faceEdges[fid] {
			e, err := b.Edge(eid)
			if err != nil {
				return nil, kerrors.Wrap("synctech.RecognizeFeatures", kerrors.ErrTopologyError, err)
			}
			if _, isArc := e.Curve.(*geometry.Arc); !isArc {
				continue
			}
			for nfid := range edgeFaces[eid] {
				if nfid == fid {
					continue
				}
				if _, isPlane := faceOf[nfid].Surface.(*geometry.Plane); isPlane {
					caps = append(caps, nfid)
				}
			}
		}
		if len(caps) == 2 {
			uv := cyl.UVDomain()
			group := append([]topology.FaceID{fid}, caps...)
			out = append(out, Feature{
				Kind:  FeatureHole,
				Faces: group,
				Handles: map[string]float64{
					"radius": cyl.Radius,
					"depth":  uv.V.Hi - uv.V.Lo,
				},
			})
			consumed[fid] = true
		}
	}

	candidate := map[topology.FaceID]bool{}
	for _, fid := range faces {
		if consumed[fid] {
			continue
		}
		pl, ok := faceOf[fid].Surface.(*geometry.Plane)
		if !ok {
			continue
		}
		edges := faceEdges[fid]
		if len(edges) != 4 {
			continue
		}
		n := pl.U.Cross(pl.V)
		bent := map[topology.FaceID]bool{}
		for _, eid := range edges {
			for nfid := range edgeFaces[eid] {
				if nfid == fid {
					continue
				}
				npl, ok := faceOf[nfid].Surface.(*geometry.Plane)
				if !ok {
					continue
				}
				cos := n.Dot(npl.U.Cross(npl.V))
				if math.Abs(cos) < 1-tol.Angular() && math.Abs(cos) > tol.Angular() {
					bent[nfid] = true
				}
			}
		}
		if len(bent) >= 2 {
			candidate[fid] = true
		}
	}

	if len(candidate) > 0 {
		g := core.NewGraph(core.WithDirected(false))
		seen := map[[2]topology.FaceID]bool{}
		for fid := range candidate {
			if err := g.AddVertex(strconv.Itoa(int(fid))); err != nil {
				return nil, kerrors.Wrap("synctech.RecognizeFeatures", kerrors.ErrTopologyError, err)
			}
		}
		for fid := range candidate {
			for _, eid := range faceEdges[fid] {
				for nfid := range edgeFaces[eid] {
					if nfid == fid || !candidate[nfid] {
						continue
					}
					key := [2]topology.FaceID{fid, nfid}
					if key[0] > key[1] {
						key[0], key[1] = key[1], key[0]
					}
					if seen[key] {
						continue
					}
					seen[key] = true
					if _, err := g.AddEdge(strconv.Itoa(int(key[0])), strconv.Itoa(int(key[1])), 0); err != nil {
						return nil, kerrors.Wrap("synctech.RecognizeFeatures", kerrors.ErrTopologyError, err)
					}
				}
			}
		}

		visited := map[topology.FaceID]bool{}
		for fid := range candidate {
			if visited[fid] {
				continue
			}
			res, err := algorithms.BFS(g, strconv.Itoa(int(fid)), nil)
			if err != nil {
				return nil, kerrors.Wrap("synctech.RecognizeFeatures", kerrors.ErrTopologyError, err)
			}
			var group []topology.FaceID
			var widthSum float64
			var widthCount int
			for idStr := range res.Visited {
				id, err := strconv.Atoi(idStr)
				if err != nil {
					return nil, kerrors.Wrap("synctech.RecognizeFeatures", kerrors.ErrTopologyError, err)
				}
				gf := topology.FaceID(id)
				visited[gf] = true
				group = append(group, gf)
				for _, eid := range faceEdges[gf] {
					e, err := b.Edge(eid)
					if err != nil {
						return nil, kerrors.Wrap("synctech.RecognizeFeatures", kerrors.ErrTopologyError, err)
					}
					widthSum += e.Domain.Hi - e.Domain.Lo
					widthCount++
				}
			}
			kind := FeatureChamfer
			if len(group) >= 2 {
				kind = FeatureFillet
			}
			handles := map[string]float64{}
			if widthCount > 0 {
				handles["size"] = widthSum / float64(widthCount)
			}
			out = append(out, Feature{Kind: kind, Faces: group, Handles: handles})
		}
	}

	return out, nil
}
