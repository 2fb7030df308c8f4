package step

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

var entityLine = regexp.MustCompile(`^#(\d+)\s*=\s*([A-Za-z0-9_]+)\s*\((.*)\)\s*;$`)

// Import parses the ISO-10303-21 clear-text STEP text from r back into
// a Body. It recognizes exactly the AP214/AP242 entity subset Export
// emits (PLANE/CYLINDRICAL_SURFACE/SPHERICAL_SURFACE/CONICAL_SURFACE/
// TOROIDAL_SURFACE faces bounded by LINE/CIRCLE edges); any other
// surface or curve entity reports kerrors.ErrUnsupportedGeometry. It
// is not a general EXPRESS parser — header and context boilerplate
// (PRODUCT, FILE_DESCRIPTION, GEOMETRIC_REPRESENTATION_CONTEXT, and
// the like) is skipped rather than interpreted.
func Import(r io.Reader, tol *gmath.ToleranceContext) (*topology.Body, error) {
	ents, order, err := parseEntities(r)
	if err != nil {
		return nil, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}

	rd := &reader{
		ents:     ents,
		vertexOf: make(map[int]int),
		edgeOf:   make(map[int]edgeCacheEntry),
		faceOf:   make(map[int]int),
	}

	var spec topology.BRepSpec
	rd.spec = &spec
	for _, id := range order {
		if ents[id].kind != "MANIFOLD_SOLID_BREP" {
			continue
		}
		if err := rd.readManifoldSolid(id); err != nil {
			return nil, err
		}
	}

	body, err := topology.NewFromBRep(tol, spec)
	if err != nil {
		return nil, kerrors.Wrap("step.Import", kerrors.ErrTopologyError, err)
	}
	return body, nil
}

func parseEntities(r io.Reader) (map[int]rawEntity, []int, error) {
	ents := make(map[int]rawEntity)
	var order []int
	inData := false
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "DATA;":
			inData = true
			continue
		case line == "ENDSEC;":
			inData = false
			continue
		case !inData:
			continue
		}
		m := entityLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var id int
		fmt.Sscanf(m[1], "%d", &id)
		ents[id] = rawEntity{kind: m[2], fields: splitTopLevel(m[3])}
		order = append(order, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return ents, order, nil
}

type edgeCacheEntry struct {
	idx    int
	p0, p1 gmath.Vec3
}

type reader struct {
	ents     map[int]rawEntity
	spec     *topology.BRepSpec
	vertexOf map[int]int
	edgeOf   map[int]edgeCacheEntry
	faceOf   map[int]int
}

func (rd *reader) entity(ref int) (rawEntity, error) {
	e, ok := rd.ents[ref]
	if !ok {
		return rawEntity{}, fmt.Errorf("step: no entity #%d", ref)
	}
	return e, nil
}

func (rd *reader) readManifoldSolid(ref int) error {
	e, err := rd.entity(ref)
	if err != nil {
		return kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	outerRef, err := parseRef(e.fields[1])
	if err != nil {
		return kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	shell, err := rd.entity(outerRef)
	if err != nil || shell.kind != "CLOSED_SHELL" {
		return kerrors.Wrap("step.Import", kerrors.ErrUnsupportedGeometry, fmt.Errorf("MANIFOLD_SOLID_BREP outer ref is not a CLOSED_SHELL"))
	}
	faceRefs, err := parseRefList(shell.fields[1])
	if err != nil {
		return kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}

	var faceIdxs []int
	for _, fref := range faceRefs {
		idx, err := rd.readFace(fref)
		if err != nil {
			return err
		}
		faceIdxs = append(faceIdxs, idx)
	}

	v, e2, f, l := rd.shellEulerCounts(faceIdxs)
	genus := 1 - (v-e2+2*f-l)/2
	if genus < 0 {
		genus = 0
	}
	rd.spec.Shells = append(rd.spec.Shells, topology.BRepShell{Faces: faceIdxs, Genus: genus})
	return nil
}

// shellEulerCounts walks faceIdxs' loops/coedges/edges to the distinct
// vertex, edge and loop indices they touch, mirroring the post-hoc
// genus derivation NewFromPolygonSoup performs on a welded soup: a
// STEP file carries no explicit genus field, so it is recovered from
// the Euler-Poincare relation instead.
func (rd *reader) shellEulerCounts(faceIdxs []int) (v, e, f, l int) {
	vertices := make(map[int]bool)
	edges := make(map[int]bool)
	loops := make(map[int]bool)
	for _, fi := range faceIdxs {
		face := rd.spec.Faces[fi]
		for _, li := range face.Loops {
			loops[li] = true
			loop := rd.spec.Loops[li]
			for _, c := range loop.Coedges {
				edges[c.Edge] = true
				edge := rd.spec.Edges[c.Edge]
				vertices[edge.Tail[0]] = true
				vertices[edge.Tail[1]] = true
			}
		}
	}
	return len(vertices), len(edges), len(faceIdxs), len(loops)
}

func (rd *reader) readFace(ref int) (int, error) {
	if idx, ok := rd.faceOf[ref]; ok {
		return idx, nil
	}
	e, err := rd.entity(ref)
	if err != nil {
		return 0, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	boundsRefs, err := parseRefList(e.fields[1])
	if err != nil {
		return 0, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}

	var loopIdxs []int
	var facePoints []gmath.Vec3
	for i, bref := range boundsRefs {
		loopIdx, pts, err := rd.readBound(bref, i == 0)
		if err != nil {
			return 0, err
		}
		loopIdxs = append(loopIdxs, loopIdx)
		facePoints = append(facePoints, pts...)
	}

	geomRef, err := parseRef(e.fields[2])
	if err != nil {
		return 0, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	surface, uv, err := rd.buildSurface(geomRef, facePoints)
	if err != nil {
		return 0, err
	}

	idx := len(rd.spec.Faces)
	rd.spec.Faces = append(rd.spec.Faces, topology.BRepFace{Surface: surface, UV: uv, Loops: loopIdxs, SameSense: true})
	rd.faceOf[ref] = idx
	return idx, nil
}

func (rd *reader) readBound(ref int, outer bool) (int, []gmath.Vec3, error) {
	e, err := rd.entity(ref)
	if err != nil {
		return 0, nil, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	loopRef, err := parseRef(e.fields[1])
	if err != nil {
		return 0, nil, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	return rd.readLoop(loopRef, outer)
}

func (rd *reader) readLoop(ref int, outer bool) (int, []gmath.Vec3, error) {
	e, err := rd.entity(ref)
	if err != nil {
		return 0, nil, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	edgeRefs, err := parseRefList(e.fields[1])
	if err != nil {
		return 0, nil, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}

	var coedges []topology.BRepCoedge
	var pts []gmath.Vec3
	for _, oeRef := range edgeRefs {
		edgeIdx, orientation, p0, p1, err := rd.readOrientedEdge(oeRef)
		if err != nil {
			return 0, nil, err
		}
		coedges = append(coedges, topology.BRepCoedge{Edge: edgeIdx, Orientation: orientation})
		pts = append(pts, p0, p1)
	}

	idx := len(rd.spec.Loops)
	rd.spec.Loops = append(rd.spec.Loops, topology.BRepLoop{Coedges: coedges, Outer: outer})
	return idx, pts, nil
}

func (rd *reader) readOrientedEdge(ref int) (int, bool, gmath.Vec3, gmath.Vec3, error) {
	e, err := rd.entity(ref)
	if err != nil {
		return 0, false, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	curveRef, err := parseRef(e.fields[3])
	if err != nil {
		return 0, false, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	orientation := parseBool(e.fields[4])
	idx, p0, p1, err := rd.readEdgeCurve(curveRef)
	if err != nil {
		return 0, false, gmath.Vec3{}, gmath.Vec3{}, err
	}
	return idx, orientation, p0, p1, nil
}

func (rd *reader) readEdgeCurve(ref int) (int, gmath.Vec3, gmath.Vec3, error) {
	if c, ok := rd.edgeOf[ref]; ok {
		return c.idx, c.p0, c.p1, nil
	}
	e, err := rd.entity(ref)
	if err != nil {
		return 0, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	startRef, err := parseRef(e.fields[1])
	if err != nil {
		return 0, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	endRef, err := parseRef(e.fields[2])
	if err != nil {
		return 0, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	v0idx, p0, err := rd.readVertexPoint(startRef)
	if err != nil {
		return 0, gmath.Vec3{}, gmath.Vec3{}, err
	}
	v1idx, p1, err := rd.readVertexPoint(endRef)
	if err != nil {
		return 0, gmath.Vec3{}, gmath.Vec3{}, err
	}
	geomRef, err := parseRef(e.fields[3])
	if err != nil {
		return 0, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}

	curve, domain, err := rd.buildCurve(geomRef, startRef == endRef, p0, p1)
	if err != nil {
		return 0, gmath.Vec3{}, gmath.Vec3{}, err
	}

	idx := len(rd.spec.Edges)
	rd.spec.Edges = append(rd.spec.Edges, topology.BRepEdge{Curve: curve, Domain: domain, Tail: [2]int{v0idx, v1idx}})
	rd.edgeOf[ref] = edgeCacheEntry{idx: idx, p0: p0, p1: p1}
	return idx, p0, p1, nil
}

func (rd *reader) readVertexPoint(ref int) (int, gmath.Vec3, error) {
	if idx, ok := rd.vertexOf[ref]; ok {
		return idx, rd.spec.Vertices[idx], nil
	}
	e, err := rd.entity(ref)
	if err != nil {
		return 0, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	pointRef, err := parseRef(e.fields[1])
	if err != nil {
		return 0, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	p, err := rd.readCartesianPoint(pointRef)
	if err != nil {
		return 0, gmath.Vec3{}, err
	}
	idx := len(rd.spec.Vertices)
	rd.spec.Vertices = append(rd.spec.Vertices, p)
	rd.vertexOf[ref] = idx
	return idx, p, nil
}

func (rd *reader) readCartesianPoint(ref int) (gmath.Vec3, error) {
	e, err := rd.entity(ref)
	if err != nil {
		return gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	xyz, err := parseFloatList(e.fields[1])
	if err != nil || len(xyz) != 3 {
		return gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, fmt.Errorf("CARTESIAN_POINT #%d: bad coordinates", ref))
	}
	return gmath.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func (rd *reader) readDirection(ref int) (gmath.Vec3, error) {
	e, err := rd.entity(ref)
	if err != nil {
		return gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	xyz, err := parseFloatList(e.fields[1])
	if err != nil || len(xyz) != 3 {
		return gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, fmt.Errorf("DIRECTION #%d: bad ratios", ref))
	}
	return gmath.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func (rd *reader) readVector(ref int) (gmath.Vec3, error) {
	e, err := rd.entity(ref)
	if err != nil {
		return gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	dirRef, err := parseRef(e.fields[1])
	if err != nil {
		return gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	return rd.readDirection(dirRef)
}

// placement reads an AXIS2_PLACEMENT_3D as (origin, main axis, x
// reference direction); the orthogonal in-plane/in-surface second axis
// a caller needs is always axis.Cross(refDir), matching how Export
// derives refDir from U and axis from U.Cross(V).
func (rd *reader) readPlacement(ref int) (origin, axis, refDir gmath.Vec3, err error) {
	e, err := rd.entity(ref)
	if err != nil {
		return gmath.Vec3{}, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	locRef, err := parseRef(e.fields[1])
	if err != nil {
		return gmath.Vec3{}, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	axisRef, err := parseRef(e.fields[2])
	if err != nil {
		return gmath.Vec3{}, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	refRef, err := parseRef(e.fields[3])
	if err != nil {
		return gmath.Vec3{}, gmath.Vec3{}, gmath.Vec3{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	origin, err = rd.readCartesianPoint(locRef)
	if err != nil {
		return
	}
	axis, err = rd.readDirection(axisRef)
	if err != nil {
		return
	}
	refDir, err = rd.readDirection(refRef)
	return
}

func (rd *reader) buildCurve(ref int, closedLoop bool, p0, p1 gmath.Vec3) (geometry.Curve, geometry.Domain, error) {
	e, err := rd.entity(ref)
	if err != nil {
		return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	switch e.kind {
	case "LINE":
		ptRef, err := parseRef(e.fields[1])
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		origin, err := rd.readCartesianPoint(ptRef)
		if err != nil {
			return nil, geometry.Domain{}, err
		}
		vecRef, err := parseRef(e.fields[2])
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		dir, err := rd.readVector(vecRef)
		if err != nil {
			return nil, geometry.Domain{}, err
		}
		unit, err := dir.Normalize()
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		t0 := p0.Sub(origin).Dot(unit)
		t1 := p1.Sub(origin).Dot(unit)
		lo, hi := t0, t1
		if lo > hi {
			lo, hi = hi, lo
		}
		line, err := geometry.NewLine(origin, unit, lo, hi)
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		return line, line.Domain(), nil

	case "CIRCLE":
		posRef, err := parseRef(e.fields[1])
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		radius, err := parseFloat(e.fields[2])
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		center, axis, refDir, err := rd.readPlacement(posRef)
		if err != nil {
			return nil, geometry.Domain{}, err
		}
		u, err := refDir.Normalize()
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		n, err := axis.Normalize()
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		v := n.Cross(u)

		lo, hi := 0.0, 2*math.Pi
		if !closedLoop {
			a0 := angleOn(p0, center, u, v)
			a1 := angleOn(p1, center, u, v)
			if a1 < a0 {
				a1 += 2 * math.Pi
			}
			lo, hi = a0, a1
		}
		arc, err := geometry.NewArc(center, u, v, radius, radius, lo, hi)
		if err != nil {
			return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		return arc, arc.Domain(), nil

	default:
		return nil, geometry.Domain{}, kerrors.Wrap("step.Import", kerrors.ErrUnsupportedGeometry, fmt.Errorf("curve entity %s has no importer", e.kind))
	}
}

// angleOn returns the angular parameter of p in the (u, v) frame
// centered at center — the exact inverse of Arc.Evaluate's
// Center + u*cos(t)*Rx + v*sin(t)*Ry for Rx==Ry, used instead of the
// generic Curve.Project search since the closed form is both exact and
// unambiguous here.
func angleOn(p, center, u, v gmath.Vec3) float64 {
	rel := p.Sub(center)
	return math.Atan2(rel.Dot(v), rel.Dot(u))
}

func (rd *reader) buildSurface(ref int, facePoints []gmath.Vec3) (geometry.Surface, geometry.UVDomain, error) {
	e, err := rd.entity(ref)
	if err != nil {
		return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
	}
	switch e.kind {
	case "PLANE":
		posRef, err := parseRef(e.fields[1])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		origin, axis, refDir, err := rd.readPlacement(posRef)
		if err != nil {
			return nil, geometry.UVDomain{}, err
		}
		u, _ := refDir.Normalize()
		n, _ := axis.Normalize()
		v := n.Cross(u)
		uLo, uHi, vLo, vHi := planarBounds(facePoints, origin, u, v)
		plane, err := geometry.NewPlane(origin, u, v, uLo, uHi, vLo, vHi)
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		return plane, plane.UVDomain(), nil

	case "CYLINDRICAL_SURFACE":
		posRef, err := parseRef(e.fields[1])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		radius, err := parseFloat(e.fields[2])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		origin, axis, _, err := rd.readPlacement(posRef)
		if err != nil {
			return nil, geometry.UVDomain{}, err
		}
		n, _ := axis.Normalize()
		vLo, vHi := axialBounds(facePoints, origin, n)
		cyl, err := geometry.NewCylinder(origin, n, radius, vLo, vHi)
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		return cyl, cyl.UVDomain(), nil

	case "CONICAL_SURFACE":
		posRef, err := parseRef(e.fields[1])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		semiAngle, err := parseFloat(e.fields[3])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		apex, axis, _, err := rd.readPlacement(posRef)
		if err != nil {
			return nil, geometry.UVDomain{}, err
		}
		n, _ := axis.Normalize()
		vLo, vHi := axialBounds(facePoints, apex, n)
		if vLo < 0 {
			vLo = 0
		}
		cone, err := geometry.NewCone(apex, n, semiAngle, vLo, vHi)
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		return cone, cone.UVDomain(), nil

	case "SPHERICAL_SURFACE":
		posRef, err := parseRef(e.fields[1])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		radius, err := parseFloat(e.fields[2])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		center, axis, _, err := rd.readPlacement(posRef)
		if err != nil {
			return nil, geometry.UVDomain{}, err
		}
		n, _ := axis.Normalize()
		sph, err := geometry.NewSphere(center, n, radius)
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		return sph, sph.UVDomain(), nil

	case "TOROIDAL_SURFACE":
		posRef, err := parseRef(e.fields[1])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		majorR, err := parseFloat(e.fields[2])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		minorR, err := parseFloat(e.fields[3])
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		center, axis, _, err := rd.readPlacement(posRef)
		if err != nil {
			return nil, geometry.UVDomain{}, err
		}
		n, _ := axis.Normalize()
		tor, err := geometry.NewTorus(center, n, majorR, minorR)
		if err != nil {
			return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrGeometryError, err)
		}
		return tor, tor.UVDomain(), nil

	default:
		return nil, geometry.UVDomain{}, kerrors.Wrap("step.Import", kerrors.ErrUnsupportedGeometry, fmt.Errorf("surface entity %s has no importer", e.kind))
	}
}

func planarBounds(points []gmath.Vec3, origin, u, v gmath.Vec3) (uLo, uHi, vLo, vHi float64) {
	first := true
	for _, p := range points {
		rel := p.Sub(origin)
		pu, pv := rel.Dot(u), rel.Dot(v)
		if first {
			uLo, uHi, vLo, vHi = pu, pu, pv, pv
			first = false
			continue
		}
		uLo, uHi = math.Min(uLo, pu), math.Max(uHi, pu)
		vLo, vHi = math.Min(vLo, pv), math.Max(vHi, pv)
	}
	return
}

func axialBounds(points []gmath.Vec3, origin, axis gmath.Vec3) (lo, hi float64) {
	first := true
	for _, p := range points {
		t := p.Sub(origin).Dot(axis)
		if first {
			lo, hi = t, t
			first = false
			continue
		}
		lo, hi = math.Min(lo, t), math.Max(hi, t)
	}
	return
}
