package step

import (
	"fmt"
	"io"
	"time"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// Export writes b to w as an ISO-10303-21 clear-text STEP file using
// the AP214/AP242 entity subset this package models: one
// MANIFOLD_SOLID_BREP per shell, each face an ADVANCED_FACE over a
// PLANE/CYLINDRICAL_SURFACE/SPHERICAL_SURFACE/CONICAL_SURFACE/
// TOROIDAL_SURFACE, each edge a LINE or CIRCLE. A face or edge resting
// on any other surface or curve family (NURBS, elliptical arcs with
// unequal radii) is outside this writer's scope and reports
// kerrors.ErrUnsupportedGeometry.
func Export(w io.Writer, name string, b *topology.Body) error {
	t := newTable()
	w1 := &writer{t: t, b: b, edgeID: make(map[topology.EdgeID]edgeEntry), vertID: make(map[topology.VertexID]int)}

	var solidIDs []int
	for _, sid := range b.Shells() {
		faces, err := b.FacesOfShell(sid)
		if err != nil {
			return kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
		}
		var faceIDs []int
		for _, fid := range faces {
			id, err := w1.writeFace(fid)
			if err != nil {
				return err
			}
			faceIDs = append(faceIDs, id)
		}
		shellEntity := t.add("CLOSED_SHELL", fmt.Sprintf("'',(%s)", formatRefs(faceIDs)))
		solidIDs = append(solidIDs, t.add("MANIFOLD_SOLID_BREP", fmt.Sprintf("'',#%d", shellEntity)))
	}

	ctx := t.add("GEOMETRIC_REPRESENTATION_CONTEXT", "3")
	t.add("ADVANCED_BREP_SHAPE_REPRESENTATION", fmt.Sprintf("'%s',(%s),#%d", name, formatRefs(solidIDs), ctx))

	if err := writeHeader(w, name); err != nil {
		return kerrors.Wrap("step.Export", kerrors.ErrGeometryError, err)
	}
	if err := writeData(w, t.entities); err != nil {
		return kerrors.Wrap("step.Export", kerrors.ErrGeometryError, err)
	}
	if err := writeFooter(w); err != nil {
		return kerrors.Wrap("step.Export", kerrors.ErrGeometryError, err)
	}
	return nil
}

func writeHeader(w io.Writer, name string) error {
	lines := []string{
		"ISO-10303-21;",
		"HEADER;",
		"FILE_DESCRIPTION(('NOVA-CAD AP214 export'),'2;1');",
		fmt.Sprintf("FILE_NAME('%s','%s',(''),(''),'NOVA-CAD','NOVA-CAD',''); ", name, time.Now().UTC().Format("2006-01-02T15:04:05")),
		"FILE_SCHEMA(('AUTOMOTIVE_DESIGN'));",
		"ENDSEC;",
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func writeData(w io.Writer, entities []entity) error {
	if _, err := fmt.Fprintln(w, "DATA;"); err != nil {
		return err
	}
	for _, e := range entities {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "ENDSEC;")
	return err
}

func writeFooter(w io.Writer) error {
	_, err := fmt.Fprintln(w, "END-ISO-10303-21;")
	return err
}

// edgeEntry caches the EDGE_CURVE id and oriented-endpoint vertex ids
// (tail order) built for a given EdgeID, so an edge shared by two
// faces is only written once.
type edgeEntry struct {
	curveEntity int
	tail        [2]int // VERTEX_POINT entity ids, in Edge.tail order
}

type writer struct {
	t      *table
	b      *topology.Body
	edgeID map[topology.EdgeID]edgeEntry
	vertID map[topology.VertexID]int
}

func (w *writer) writeFace(fid topology.FaceID) (int, error) {
	face, err := w.b.Face(fid)
	if err != nil {
		return 0, kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
	}
	surfaceID, err := w.writeSurface(face.Surface)
	if err != nil {
		return 0, err
	}

	loops, err := w.b.LoopsOfFace(fid)
	if err != nil {
		return 0, kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
	}
	var bounds []int
	for i, lid := range loops {
		loopEntity, err := w.writeLoop(lid)
		if err != nil {
			return 0, err
		}
		kind := "FACE_BOUND"
		if i == 0 {
			kind = "FACE_OUTER_BOUND"
		}
		bounds = append(bounds, w.t.add(kind, fmt.Sprintf("'',#%d,%s", loopEntity, formatBool(true))))
	}

	// Every face this kernel builds keeps its surface's natural normal
	// as its outward normal (sameSense is never set false by any
	// constructor or operator), so SAME_SENSE is always true.
	return w.t.add("ADVANCED_FACE", fmt.Sprintf("'',(%s),#%d,%s", formatRefs(bounds), surfaceID, formatBool(true))), nil
}

func (w *writer) writeLoop(lid topology.LoopID) (int, error) {
	coedges, err := w.b.CoedgesAroundLoop(lid)
	if err != nil {
		return 0, kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
	}
	var oriented []int
	for _, cid := range coedges {
		eid, err := w.b.CoedgeEdge(cid)
		if err != nil {
			return 0, kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
		}
		orient, err := w.b.CoedgeOrientation(cid)
		if err != nil {
			return 0, kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
		}
		curveEntity, err := w.writeEdge(eid)
		if err != nil {
			return 0, err
		}
		oriented = append(oriented, w.t.add("ORIENTED_EDGE", fmt.Sprintf("'',*,*,#%d,%s", curveEntity, formatBool(orient))))
	}
	return w.t.add("EDGE_LOOP", fmt.Sprintf("'',(%s)", formatRefs(oriented))), nil
}

func (w *writer) writeEdge(eid topology.EdgeID) (int, error) {
	if entry, ok := w.edgeID[eid]; ok {
		return entry.curveEntity, nil
	}
	edge, err := w.b.Edge(eid)
	if err != nil {
		return 0, kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
	}
	tail, err := w.b.VerticesOfEdge(eid)
	if err != nil {
		return 0, kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
	}
	v0, err := w.writeVertex(tail[0])
	if err != nil {
		return 0, err
	}
	v1, err := w.writeVertex(tail[1])
	if err != nil {
		return 0, err
	}

	curveEntity, err := w.writeCurve(edge.Curve)
	if err != nil {
		return 0, err
	}
	entity := w.t.add("EDGE_CURVE", fmt.Sprintf("'',#%d,#%d,#%d,%s", v0, v1, curveEntity, formatBool(true)))
	w.edgeID[eid] = edgeEntry{curveEntity: entity, tail: [2]int{v0, v1}}
	return entity, nil
}

func (w *writer) writeVertex(vid topology.VertexID) (int, error) {
	if id, ok := w.vertID[vid]; ok {
		return id, nil
	}
	v, err := w.b.Vertex(vid)
	if err != nil {
		return 0, kerrors.Wrap("step.Export", kerrors.ErrTopologyError, err)
	}
	pt := w.t.cartesianPoint(v.Point.X, v.Point.Y, v.Point.Z)
	id := w.t.add("VERTEX_POINT", fmt.Sprintf("'',#%d", pt))
	w.vertID[vid] = id
	return id, nil
}

func (w *writer) writeCurve(c geometry.Curve) (int, error) {
	switch cv := c.(type) {
	case *geometry.Line:
		pt := w.t.cartesianPoint(cv.Origin.X, cv.Origin.Y, cv.Origin.Z)
		dir := w.t.direction(cv.Direction.X, cv.Direction.Y, cv.Direction.Z)
		vec := w.t.add("VECTOR", fmt.Sprintf("'',#%d,%s", dir, formatFloat(1)))
		return w.t.add("LINE", fmt.Sprintf("'',#%d,#%d", pt, vec)), nil
	case *geometry.Arc:
		if !approxEqual(cv.RadiusX, cv.RadiusY) {
			return 0, kerrors.Wrap("step.Export", kerrors.ErrUnsupportedGeometry, fmt.Errorf("elliptical arc (rx=%g, ry=%g) has no STEP CIRCLE representation", cv.RadiusX, cv.RadiusY))
		}
		normal := mustUnit(cv.MajorAxis.Cross(cv.MinorAxis))
		pos := w.placement(cv.Center, normal, cv.MajorAxis)
		return w.t.add("CIRCLE", fmt.Sprintf("'',#%d,%s", pos, formatFloat(cv.RadiusX))), nil
	default:
		return 0, kerrors.Wrap("step.Export", kerrors.ErrUnsupportedGeometry, fmt.Errorf("curve type %T has no STEP representation in this writer", c))
	}
}

func (w *writer) writeSurface(s geometry.Surface) (int, error) {
	switch sf := s.(type) {
	case *geometry.Plane:
		normal := mustUnit(sf.U.Cross(sf.V))
		pos := w.placement(sf.Origin, normal, sf.U)
		return w.t.add("PLANE", fmt.Sprintf("'',#%d", pos)), nil
	case *geometry.Cylinder:
		pos := w.placement(sf.Origin, sf.Axis, sf.RefX)
		return w.t.add("CYLINDRICAL_SURFACE", fmt.Sprintf("'',#%d,%s", pos, formatFloat(sf.Radius))), nil
	case *geometry.Cone:
		pos := w.placement(sf.Apex, sf.Axis, sf.RefX)
		return w.t.add("CONICAL_SURFACE", fmt.Sprintf("'',#%d,%s,%s", pos, formatFloat(0), formatFloat(sf.HalfAngle))), nil
	case *geometry.Sphere:
		pos := w.placement(sf.Center, sf.PoleAxis, sf.RefX)
		return w.t.add("SPHERICAL_SURFACE", fmt.Sprintf("'',#%d,%s", pos, formatFloat(sf.Radius))), nil
	case *geometry.Torus:
		pos := w.placement(sf.Center, sf.Axis, sf.RefX)
		return w.t.add("TOROIDAL_SURFACE", fmt.Sprintf("'',#%d,%s,%s", pos, formatFloat(sf.MajorRadius), formatFloat(sf.MinorRadius))), nil
	default:
		return 0, kerrors.Wrap("step.Export", kerrors.ErrUnsupportedGeometry, fmt.Errorf("surface type %T has no STEP representation in this writer", s))
	}
}

func (w *writer) placement(origin, axis, refDir gmath.Vec3) int {
	loc := w.t.cartesianPoint(origin.X, origin.Y, origin.Z)
	ax := w.t.direction(axis.X, axis.Y, axis.Z)
	ref := w.t.direction(refDir.X, refDir.Y, refDir.Z)
	return w.t.axis2Placement3D(loc, ax, ref)
}

func mustUnit(v gmath.Vec3) gmath.Vec3 {
	u, err := v.Normalize()
	if err != nil {
		return gmath.Vec3{Z: 1}
	}
	return u
}

func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9*(1+a+b)
}
