// Package nativedump is this kernel's own lossless body snapshot
// format: a small binary header (magic + schema version) followed by a
// gob-encoded graph, mirroring topology.BRepSpec field for field so
// Import is exactly NewFromBRep on the decoded value. Unlike step, it
// carries no entity-kind dispatch table or parameter-domain recovery:
// every curve/surface keeps its own concrete field values, so nothing
// needs reconstructing on read.
package nativedump

import (
	"bufio"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// magic identifies a nativedump stream; schemaVersion gates decoding
// of a file written by an incompatible future revision of the format.
var magic = [4]byte{'N', 'C', 'A', 'D'}

const schemaVersion uint16 = 1

// curveKind/surfaceKind tag which concrete geometry type a dumpCurve/
// dumpSurface value holds, since gob encodes the wire struct directly
// rather than through the geometry.Curve/Surface interfaces.
type curveKind uint8

const (
	curveLine curveKind = iota
	curveArc
)

type surfaceKind uint8

const (
	surfacePlane surfaceKind = iota
	surfaceCylinder
	surfaceCone
	surfaceSphere
	surfaceTorus
)

type dumpCurve struct {
	Kind                   curveKind
	Origin, Direction      gmath.Vec3
	Center, Major, Minor   gmath.Vec3
	RadiusX, RadiusY       float64
	Lo, Hi                 float64
}

type dumpSurface struct {
	Kind                        surfaceKind
	Origin, U, V                gmath.Vec3
	Axis, Apex, Center, Pole    gmath.Vec3
	Radius, HalfAngle           float64
	MajorRadius, MinorRadius    float64
	ULo, UHi, VLo, VHi          float64
}

type dumpEdge struct {
	Curve    dumpCurve
	DomainLo float64
	DomainHi float64
	Tail     [2]int
}

type dumpCoedge struct {
	Edge        int
	Orientation bool
}

type dumpLoop struct {
	Coedges []dumpCoedge
	Outer   bool
}

type dumpFace struct {
	Surface   dumpSurface
	Loops     []int
	SameSense bool
}

type dumpShell struct {
	Faces []int
	Genus int
	Void  bool
}

type dumpBody struct {
	Vertices []gmath.Vec3
	Edges    []dumpEdge
	Loops    []dumpLoop
	Faces    []dumpFace
	Shells   []dumpShell
}

// Export writes the body's exact B-Rep graph to w.
func Export(w io.Writer, b *topology.Body) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(magic[:]); err != nil {
		return kerrors.Wrap("nativedump.Export", kerrors.ErrGeometryError, err)
	}
	if err := binary.Write(bw, binary.BigEndian, schemaVersion); err != nil {
		return kerrors.Wrap("nativedump.Export", kerrors.ErrGeometryError, err)
	}

	dump, err := buildDump(b)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(dump); err != nil {
		return kerrors.Wrap("nativedump.Export", kerrors.ErrGeometryError, err)
	}
	if err := bw.Flush(); err != nil {
		return kerrors.Wrap("nativedump.Export", kerrors.ErrGeometryError, err)
	}
	return nil
}

// Import reads a stream written by Export and rebuilds an equivalent
// body: same vertex positions, same edge curves and tails, same face
// surfaces and loop structure, same per-shell genus/void flags.
func Import(r io.Reader, tol *gmath.ToleranceContext) (*topology.Body, error) {
	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return nil, kerrors.Wrap("nativedump.Import", kerrors.ErrGeometryError, err)
	}
	if got != magic {
		return nil, kerrors.Wrap("nativedump.Import", kerrors.ErrInvalidParameter, fmt.Errorf("not a nativedump stream"))
	}
	var version uint16
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, kerrors.Wrap("nativedump.Import", kerrors.ErrGeometryError, err)
	}
	if version != schemaVersion {
		return nil, kerrors.Wrap("nativedump.Import", kerrors.ErrUnsupportedGeometry, fmt.Errorf("unsupported schema version %d", version))
	}

	var dump dumpBody
	if err := gob.NewDecoder(r).Decode(&dump); err != nil {
		return nil, kerrors.Wrap("nativedump.Import", kerrors.ErrGeometryError, err)
	}

	spec, err := restoreSpec(dump)
	if err != nil {
		return nil, err
	}
	return topology.NewFromBRep(tol, spec)
}

func buildDump(b *topology.Body) (dumpBody, error) {
	var dump dumpBody

	vertexIndex := make(map[topology.VertexID]int)
	edgeIndex := make(map[topology.EdgeID]int)

	for _, fid := range b.FacesOfBody() {
		edges, err := b.EdgesOfFace(fid)
		if err != nil {
			return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
		}
		for _, eid := range edges {
			if _, ok := edgeIndex[eid]; ok {
				continue
			}
			e, err := b.Edge(eid)
			if err != nil {
				return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
			}
			tail, err := b.VerticesOfEdge(eid)
			if err != nil {
				return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
			}
			var tailIdx [2]int
			for i, vid := range tail {
				idx, ok := vertexIndex[vid]
				if !ok {
					v, err := b.Vertex(vid)
					if err != nil {
						return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
					}
					idx = len(dump.Vertices)
					dump.Vertices = append(dump.Vertices, v.Point)
					vertexIndex[vid] = idx
				}
				tailIdx[i] = idx
			}
			dc, err := encodeCurve(e.Curve)
			if err != nil {
				return dump, err
			}
			edgeIndex[eid] = len(dump.Edges)
			dump.Edges = append(dump.Edges, dumpEdge{
				Curve:    dc,
				DomainLo: e.Domain.Lo,
				DomainHi: e.Domain.Hi,
				Tail:     tailIdx,
			})
		}
	}

	loopIndex := make(map[topology.LoopID]int)
	faceIndex := make(map[topology.FaceID]int)

	for _, fid := range b.FacesOfBody() {
		f, err := b.Face(fid)
		if err != nil {
			return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
		}
		loops, err := b.LoopsOfFace(fid)
		if err != nil {
			return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
		}
		var loopIdxs []int
		for _, lid := range loops {
			outer, err := b.LoopOuter(lid)
			if err != nil {
				return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
			}
			coedges, err := b.CoedgesAroundLoop(lid)
			if err != nil {
				return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
			}
			var dcoedges []dumpCoedge
			for _, cid := range coedges {
				eid, err := b.CoedgeEdge(cid)
				if err != nil {
					return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
				}
				orient, err := b.CoedgeOrientation(cid)
				if err != nil {
					return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
				}
				dcoedges = append(dcoedges, dumpCoedge{Edge: edgeIndex[eid], Orientation: orient})
			}
			loopIndex[lid] = len(dump.Loops)
			loopIdxs = append(loopIdxs, loopIndex[lid])
			dump.Loops = append(dump.Loops, dumpLoop{Coedges: dcoedges, Outer: outer})
		}
		ds, err := encodeSurface(f.Surface)
		if err != nil {
			return dump, err
		}
		faceIndex[fid] = len(dump.Faces)
		// Every constructor in this kernel builds faces with
		// sameSense true (no accessor exists to read it back, since
		// nothing yet produces a false one); step's writer makes the
		// same assumption.
		dump.Faces = append(dump.Faces, dumpFace{Surface: ds, Loops: loopIdxs, SameSense: true})
	}

	for _, sid := range b.Shells() {
		s, err := b.Shell(sid)
		if err != nil {
			return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
		}
		faces, err := b.FacesOfShell(sid)
		if err != nil {
			return dump, kerrors.Wrap("nativedump.Export", kerrors.ErrTopologyError, err)
		}
		var faceIdxs []int
		for _, fid := range faces {
			faceIdxs = append(faceIdxs, faceIndex[fid])
		}
		dump.Shells = append(dump.Shells, dumpShell{Faces: faceIdxs, Genus: s.Genus(), Void: s.Void()})
	}

	return dump, nil
}

func restoreSpec(dump dumpBody) (topology.BRepSpec, error) {
	var spec topology.BRepSpec
	spec.Vertices = dump.Vertices

	for _, de := range dump.Edges {
		curve, err := decodeCurve(de.Curve)
		if err != nil {
			return spec, err
		}
		spec.Edges = append(spec.Edges, topology.BRepEdge{
			Curve:  curve,
			Domain: geometry.Domain{Lo: de.DomainLo, Hi: de.DomainHi},
			Tail:   de.Tail,
		})
	}

	for _, dl := range dump.Loops {
		var coedges []topology.BRepCoedge
		for _, dc := range dl.Coedges {
			coedges = append(coedges, topology.BRepCoedge{Edge: dc.Edge, Orientation: dc.Orientation})
		}
		spec.Loops = append(spec.Loops, topology.BRepLoop{Coedges: coedges, Outer: dl.Outer})
	}

	for _, df := range dump.Faces {
		surf, uv, err := decodeSurface(df.Surface)
		if err != nil {
			return spec, err
		}
		spec.Faces = append(spec.Faces, topology.BRepFace{
			Surface:   surf,
			UV:        uv,
			Loops:     df.Loops,
			SameSense: df.SameSense,
		})
	}

	for _, ds := range dump.Shells {
		spec.Shells = append(spec.Shells, topology.BRepShell{Faces: ds.Faces, Genus: ds.Genus, Void: ds.Void})
	}

	return spec, nil
}

func encodeCurve(c geometry.Curve) (dumpCurve, error) {
	dom := c.Domain()
	switch cv := c.(type) {
	case *geometry.Line:
		return dumpCurve{Kind: curveLine, Origin: cv.Origin, Direction: cv.Direction, Lo: dom.Lo, Hi: dom.Hi}, nil
	case *geometry.Arc:
		return dumpCurve{
			Kind: curveArc, Center: cv.Center, Major: cv.MajorAxis, Minor: cv.MinorAxis,
			RadiusX: cv.RadiusX, RadiusY: cv.RadiusY, Lo: dom.Lo, Hi: dom.Hi,
		}, nil
	default:
		return dumpCurve{}, kerrors.Wrap("nativedump.Export", kerrors.ErrUnsupportedGeometry, fmt.Errorf("curve type %T", c))
	}
}

func decodeCurve(d dumpCurve) (geometry.Curve, error) {
	var curve geometry.Curve
	var err error
	switch d.Kind {
	case curveLine:
		curve, err = geometry.NewLine(d.Origin, d.Direction, d.Lo, d.Hi)
	case curveArc:
		curve, err = geometry.NewArc(d.Center, d.Major, d.Minor, d.RadiusX, d.RadiusY, d.Lo, d.Hi)
	default:
		return nil, kerrors.Wrap("nativedump.Import", kerrors.ErrUnsupportedGeometry, fmt.Errorf("curve kind %d", d.Kind))
	}
	if err != nil {
		return nil, kerrors.Wrap("nativedump.Import", kerrors.ErrGeometryError, err)
	}
	return curve, nil
}

func encodeSurface(s geometry.Surface) (dumpSurface, error) {
	uv := s.UVDomain()
	switch sf := s.(type) {
	case *geometry.Plane:
		return dumpSurface{Kind: surfacePlane, Origin: sf.Origin, U: sf.U, V: sf.V, ULo: uv.U.Lo, UHi: uv.U.Hi, VLo: uv.V.Lo, VHi: uv.V.Hi}, nil
	case *geometry.Cylinder:
		return dumpSurface{Kind: surfaceCylinder, Origin: sf.Origin, Axis: sf.Axis, Radius: sf.Radius, VLo: uv.V.Lo, VHi: uv.V.Hi}, nil
	case *geometry.Cone:
		return dumpSurface{Kind: surfaceCone, Apex: sf.Apex, Axis: sf.Axis, HalfAngle: sf.HalfAngle, VLo: uv.V.Lo, VHi: uv.V.Hi}, nil
	case *geometry.Sphere:
		return dumpSurface{Kind: surfaceSphere, Center: sf.Center, Pole: sf.PoleAxis, Radius: sf.Radius}, nil
	case *geometry.Torus:
		return dumpSurface{Kind: surfaceTorus, Center: sf.Center, Axis: sf.Axis, MajorRadius: sf.MajorRadius, MinorRadius: sf.MinorRadius}, nil
	default:
		return dumpSurface{}, kerrors.Wrap("nativedump.Export", kerrors.ErrUnsupportedGeometry, fmt.Errorf("surface type %T", s))
	}
}

func decodeSurface(d dumpSurface) (geometry.Surface, geometry.UVDomain, error) {
	var surf geometry.Surface
	var err error
	switch d.Kind {
	case surfacePlane:
		surf, err = geometry.NewPlane(d.Origin, d.U, d.V, d.ULo, d.UHi, d.VLo, d.VHi)
	case surfaceCylinder:
		surf, err = geometry.NewCylinder(d.Origin, d.Axis, d.Radius, d.VLo, d.VHi)
	case surfaceCone:
		surf, err = geometry.NewCone(d.Apex, d.Axis, d.HalfAngle, d.VLo, d.VHi)
	case surfaceSphere:
		surf, err = geometry.NewSphere(d.Center, d.Pole, d.Radius)
	case surfaceTorus:
		surf, err = geometry.NewTorus(d.Center, d.Axis, d.MajorRadius, d.MinorRadius)
	default:
		return nil, geometry.UVDomain{}, kerrors.Wrap("nativedump.Import", kerrors.ErrUnsupportedGeometry, fmt.Errorf("surface kind %d", d.Kind))
	}
	if err != nil {
		return nil, geometry.UVDomain{}, kerrors.Wrap("nativedump.Import", kerrors.ErrGeometryError, err)
	}
	return surf, surf.UVDomain(), nil
}
