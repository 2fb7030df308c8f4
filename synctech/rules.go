package synctech

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// RelationKind names one of the geometric relations a face edit's
// live-rule pass can detect and, while enabled, preserve.
type RelationKind int

const (
	RelationParallel RelationKind = iota
	RelationPerpendicular
	RelationConcentric
	RelationCoplanar
	RelationSymmetric
	RelationTangent
)

func (k RelationKind) String() string {
	switch k {
	case RelationParallel:
		return "parallel"
	case RelationPerpendicular:
		return "perpendicular"
	case RelationConcentric:
		return "concentric"
	case RelationCoplanar:
		return "coplanar"
	case RelationSymmetric:
		return "symmetric"
	case RelationTangent:
		return "tangent"
	default:
		return "unknown"
	}
}

// Relation is one detected geometric pairing between two faces of a
// body, with a priority (higher survives a conflicting lower-priority
// rule when an edit can only satisfy one). Coplanar and concentric
// relations are ranked above the weaker directional ones, matching the
// informal ordering "faces that must stay exactly coincident outrank
// faces that must merely stay aligned" used throughout 4.S.2.
type Relation struct {
	Kind     RelationKind
	A, B     topology.FaceID
	Priority int
}

var relationPriority = map[RelationKind]int{
	RelationCoplanar:      40,
	RelationConcentric:    40,
	RelationTangent:       30,
	RelationSymmetric:     25,
	RelationPerpendicular: 15,
	RelationParallel:      10,
}

// DetectRules scans every pair of faces in b and reports the
// geometric relations among them, ranked by priority. A nil tol falls
// back to gmath's default resolutions, the same nil-handling topology
// itself uses.
func DetectRules(tol *gmath.ToleranceContext, b *topology.Body) ([]Relation, error) {
	if tol == nil {
		tol = gmath.NewToleranceContext()
	}
	faces := b.FacesOfBody()
	var out []Relation
	for i := 0; i < len(faces); i++ {
		fi, err := b.Face(faces[i])
		if err != nil {
			return nil, err
		}
		for j := i + 1; j < len(faces); j++ {
			fj, err := b.Face(faces[j])
			if err != nil {
				return nil, err
			}
			for _, kind := range classifyPair(tol, fi.Surface, fj.Surface) {
				out = append(out, Relation{Kind: kind, A: faces[i], B: faces[j], Priority: relationPriority[kind]})
			}
		}
	}
	return out, nil
}

// classifyPair returns every relation kind that holds between two
// surfaces, since a pair can be e.g. both coplanar and symmetric (a
// degenerate, coincident symmetric pair) — each test is independent.
func classifyPair(tol *gmath.ToleranceContext, a, b geometry.Surface) []RelationKind {
	var kinds []RelationKind

	pa, aPlane := a.(*geometry.Plane)
	pb, bPlane := b.(*geometry.Plane)
	if aPlane && bPlane {
		na := pa.U.Cross(pa.V)
		nb := pb.U.Cross(pb.V)
		cos := na.Dot(nb)
		if math.Abs(math.Abs(cos)-1) < tol.Angular() {
			kinds = append(kinds, RelationParallel)
			offA := pa.Origin.Dot(na)
			offB := pb.Origin.Dot(na)
			if math.Abs(offA-offB) < tol.Linear() {
				kinds = append(kinds, RelationCoplanar)
			}
			if cos < 0 && isSymmetricPlanarPair(pa, pb, na, nb, tol) {
				kinds = append(kinds, RelationSymmetric)
			}
		} else if math.Abs(cos) < tol.Angular() {
			kinds = append(kinds, RelationPerpendicular)
		}
		return kinds
	}

	ca, aCyl := a.(*geometry.Cylinder)
	cb, bCyl := b.(*geometry.Cylinder)
	if aCyl && bCyl {
		if sameAxis(ca.Origin, ca.Axis, cb.Origin, cb.Axis, tol) {
			kinds = append(kinds, RelationConcentric)
		}
		return kinds
	}

	sa, aSph := a.(*geometry.Sphere)
	sb, bSph := b.(*geometry.Sphere)
	if aSph && bSph {
		if sa.Center.DistanceTo(sb.Center) < tol.Linear() {
			kinds = append(kinds, RelationConcentric)
		}
		return kinds
	}

	if aCyl && bPlane {
		if tangentCylinderPlane(ca, pb, tol) {
			kinds = append(kinds, RelationTangent)
		}
		return kinds
	}
	if bCyl && aPlane {
		if tangentCylinderPlane(cb, pa, tol) {
			kinds = append(kinds, RelationTangent)
		}
		return kinds
	}

	if aSph && bPlane {
		if math.Abs(math.Abs(sa.Center.Sub(pb.Origin).Dot(pb.U.Cross(pb.V)))-sa.Radius) < tol.Linear() {
			kinds = append(kinds, RelationTangent)
		}
		return kinds
	}
	if bSph && aPlane {
		if math.Abs(math.Abs(sb.Center.Sub(pa.Origin).Dot(pa.U.Cross(pa.V)))-sb.Radius) < tol.Linear() {
			kinds = append(kinds, RelationTangent)
		}
		return kinds
	}

	return kinds
}

// sameAxis reports whether two lines (origin, unit direction) coincide
// as sets, regardless of where each origin sits along its own line.
func sameAxis(oa, da, ob, db gmath.Vec3, tol *gmath.ToleranceContext) bool {
	cos := da.Dot(db)
	if math.Abs(math.Abs(cos)-1) > tol.Angular() {
		return false
	}
	rel := ob.Sub(oa)
	perp := rel.Sub(da.Scale(rel.Dot(da)))
	return perp.Length() < tol.Linear()
}

// tangentCylinderPlane reports whether a cylinder's lateral surface
// just touches a plane: the cylinder's axis must run parallel to the
// plane, and the axis-to-plane distance must equal the radius.
func tangentCylinderPlane(c *geometry.Cylinder, p *geometry.Plane, tol *gmath.ToleranceContext) bool {
	n := p.U.Cross(p.V)
	if math.Abs(c.Axis.Dot(n)) > tol.Angular() {
		return false
	}
	dist := math.Abs(c.Origin.Sub(p.Origin).Dot(n))
	return math.Abs(dist-c.Radius) < tol.Linear()
}

// isSymmetricPlanarPair treats two anti-parallel planar faces of equal
// extent as a mirror pair about their shared midplane: reflecting a's
// centroid through the midplane normal to (centroidB - centroidA) must
// land on b's centroid, within linear tolerance.
func isSymmetricPlanarPair(pa, pb *geometry.Plane, na, nb gmath.Vec3, tol *gmath.ToleranceContext) bool {
	uv := pa.UVDomain()
	ca := pa.Evaluate((uv.U.Lo+uv.U.Hi)/2, (uv.V.Lo+uv.V.Hi)/2)
	uvb := pb.UVDomain()
	cb := pb.Evaluate((uvb.U.Lo+uvb.U.Hi)/2, (uvb.V.Lo+uvb.V.Hi)/2)

	wa1, wa2 := uv.U.Width(), uv.V.Width()
	wb1, wb2 := uvb.U.Width(), uvb.V.Width()
	if wa1 > wa2 {
		wa1, wa2 = wa2, wa1
	}
	if wb1 > wb2 {
		wb1, wb2 = wb2, wb1
	}
	if math.Abs(wa1-wb1) > tol.Linear() || math.Abs(wa2-wb2) > tol.Linear() {
		return false
	}

	mirrorAxis, err := cb.Sub(ca).Normalize()
	if err != nil {
		return false
	}
	reflected := ca.Add(mirrorAxis.Scale(2 * cb.Sub(ca).Dot(mirrorAxis)))
	return reflected.DistanceTo(cb) < tol.Linear()
}
