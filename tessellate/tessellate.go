package tessellate

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// Options configures the tessellator. A zero Options uses the body's
// own tolerance context for both chord and angle bounds.
type Options struct {
	ChordTolerance float64
	AngleTolerance float64
	MaxWorkers     int
}

// Option mutates an Options value, matching the functional-option
// idiom gmath.ToleranceOption already uses for per-call configuration.
type Option func(*Options)

// WithChordTolerance bounds the max distance between a chord segment
// and the true curve/surface it approximates.
func WithChordTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.ChordTolerance = tol
		}
	}
}

// WithAngleTolerance bounds the max turning angle between consecutive
// facet normals.
func WithAngleTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.AngleTolerance = tol
		}
	}
}

// WithMaxWorkers caps the per-face worker pool's concurrency.
func WithMaxWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxWorkers = n
		}
	}
}

// defaultChordTolerance and defaultAngleTolerance are sized for a
// typical model in the 1-1000 unit range, not derived from the body's
// linear/angular resolution (which bounds geometric *construction*
// error, several orders tighter than a sensible display facet size).
const (
	defaultChordTolerance = 0.01
	defaultAngleTolerance = 0.2 // ~11.5 degrees
)

func resolveOptions(b *topology.Body, opts []Option) Options {
	o := Options{
		ChordTolerance: defaultChordTolerance,
		AngleTolerance: defaultAngleTolerance,
		MaxWorkers:     4,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tessellate triangulates every face of b in parallel and stitches the
// per-face fragments into one watertight Mesh: vertices within the
// body's linear tolerance of one another are welded to a single index,
// satisfying the edge-vertex stitching step of the algorithm and the
// watertightness testable property (every edge touches exactly two
// triangles).
func Tessellate(ctx context.Context, b *topology.Body, opts ...Option) (*Mesh, error) {
	o := resolveOptions(b, opts)
	faces := b.FacesOfBody()
	fragments := make([]*faceMesh, len(faces))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.MaxWorkers)
	for i, faceID := range faces {
		i, faceID := i, faceID
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return kerrors.Wrap("tessellate.Tessellate", kerrors.ErrCancelled, gctx.Err())
			default:
			}
			fm, err := tessellateFace(b, faceID, o)
			if err != nil {
				return kerrors.Wrap("tessellate.Tessellate", kerrors.ErrGeometryError, err)
			}
			fragments[i] = fm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return weld(fragments, b.Tolerance.Linear()), nil
}

// tessellateFace dispatches on whether the face's surface is periodic:
// a periodic surface (cylinder/sphere/cone/torus as this kernel builds
// them) is sampled on a UV grid; a non-periodic, simply-bounded face is
// triangulated from its loop boundary via ear clipping.
func tessellateFace(b *topology.Body, faceID topology.FaceID, o Options) (*faceMesh, error) {
	face, err := b.Face(faceID)
	if err != nil {
		return nil, err
	}
	loops, err := b.LoopsOfFace(faceID)
	if err != nil {
		return nil, err
	}
	if len(loops) > 1 {
		return nil, errFaceHasHoles
	}

	periodicU, _ := face.Surface.PeriodicU()
	periodicV, _ := face.Surface.PeriodicV()
	if periodicU || periodicV {
		return gridTessellate(face.Surface, face.UV, o), nil
	}
	return boundaryTessellate(b, loops[0], face.Surface, face.UV, o)
}

// gridTessellate samples a (nu+1)x(nv+1) rectangular grid across the
// surface's UV domain and fans two triangles per cell — valid here
// because every periodic face this kernel builds (sphere, cone and
// cylinder lateral faces, the full torus) has no additional trimming
// curve beyond its own domain rectangle.
func gridTessellate(s geometry.Surface, uv geometry.UVDomain, o Options) *faceMesh {
	nu := chordSegments(uv.U.Width(), surfaceRadiusEstimate(s, uv), o.ChordTolerance, o.AngleTolerance)
	nv := chordSegments(uv.V.Width(), surfaceRadiusEstimate(s, uv), o.ChordTolerance, o.AngleTolerance)
	if nu < 3 {
		nu = 3
	}
	if nv < 1 {
		nv = 1
	}

	fm := newFaceMesh()
	idx := make([][]int, nu+1)
	for i := 0; i <= nu; i++ {
		idx[i] = make([]int, nv+1)
		u := uv.U.Lo + uv.U.Width()*float64(i)/float64(nu)
		for j := 0; j <= nv; j++ {
			v := uv.V.Lo + uv.V.Width()*float64(j)/float64(nv)
			p := s.Evaluate(u, v)
			n, err := s.Normal(u, v)
			if err != nil {
				n = gmath.Vec3{Z: 1}
			}
			idx[i][j] = fm.addVertex(p, n, u, v)
		}
	}
	for i := 0; i < nu; i++ {
		for j := 0; j < nv; j++ {
			a, bb, c, d := idx[i][j], idx[i+1][j], idx[i+1][j+1], idx[i][j+1]
			fm.addTriangle(a, bb, c)
			fm.addTriangle(a, c, d)
		}
	}
	return fm
}

// surfaceRadiusEstimate returns a characteristic curvature radius used
// to pick a chord-safe segment count: half the UV-domain bounding box
// diagonal, a coarse but serviceable proxy for a true radius of
// curvature on the analytic primitives this kernel builds.
func surfaceRadiusEstimate(s geometry.Surface, uv geometry.UVDomain) float64 {
	box := s.BBox(uv)
	return box.Diagonal().Length() / 2
}

// chordSegments returns the number of equal-width segments needed so
// that a chord of the given angular span on a circle of radius r stays
// within chordTol of the true arc, also respecting angleTol directly.
func chordSegments(angularSpan, radius, chordTol, angleTol float64) int {
	if radius <= 0 {
		radius = 1
	}
	step := angleTol
	if chordTol > 0 && chordTol < radius {
		fromChord := 2 * math.Acos(1-chordTol/radius)
		if fromChord < step {
			step = fromChord
		}
	}
	if step <= 0 {
		step = angleTol
	}
	n := int(math.Ceil(math.Abs(angularSpan) / step))
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	return n
}

// boundaryTessellate walks loopID's boundary, chord-subdividing each
// edge's curve, projects the resulting polygon onto a local 2D frame
// derived from the surface normal, and ear-clips it.
func boundaryTessellate(b *topology.Body, loopID topology.LoopID, s geometry.Surface, uv geometry.UVDomain, o Options) (*faceMesh, error) {
	coedges, err := b.CoedgesAroundLoop(loopID)
	if err != nil {
		return nil, err
	}

	var poly []gmath.Vec3
	for _, cid := range coedges {
		pts, err := sampleCoedge(b, cid, o)
		if err != nil {
			return nil, err
		}
		// Drop the last sample of each edge (it's the first sample of
		// the next edge) to avoid duplicating the shared vertex.
		poly = append(poly, pts[:len(pts)-1]...)
	}
	if len(poly) < 3 {
		return nil, errFaceHasHoles
	}

	normal := newellNormal(poly)
	uAxis, vAxis := orthonormalFrame(normal)
	origin := poly[0]
	poly2D := make([]gmath.Vec2, len(poly))
	for i, p := range poly {
		d := p.Sub(origin)
		poly2D[i] = gmath.Vec2{X: d.Dot(uAxis), Y: d.Dot(vAxis)}
	}

	tris, err := earClip(poly2D)
	if err != nil {
		return nil, err
	}

	fm := newFaceMesh()
	vertIdx := make([]int, len(poly))
	for i, p := range poly {
		fu, fv, _, _ := s.Project(p, uv)
		n, err := s.Normal(fu, fv)
		if err != nil {
			n = normal
		}
		vertIdx[i] = fm.addVertex(p, n, poly2D[i].X, poly2D[i].Y)
	}
	for _, t := range tris {
		fm.addTriangle(vertIdx[t[0]], vertIdx[t[1]], vertIdx[t[2]])
	}
	return fm, nil
}

// sampleCoedge returns the chord-subdivided 3D points along one
// coedge's traversal direction, first point to last inclusive.
func sampleCoedge(b *topology.Body, cid topology.CoedgeID, o Options) ([]gmath.Vec3, error) {
	edgeID, err := b.CoedgeEdge(cid)
	if err != nil {
		return nil, err
	}
	forward, err := b.CoedgeOrientation(cid)
	if err != nil {
		return nil, err
	}
	edge, err := b.Edge(edgeID)
	if err != nil {
		return nil, err
	}

	n := 1
	if arc, ok := edge.Curve.(*geometry.Arc); ok {
		n = chordSegments(edge.Domain.Width(), arc.RadiusX, o.ChordTolerance, o.AngleTolerance)
	}

	pts := make([]gmath.Vec3, n+1)
	for i := 0; i <= n; i++ {
		t := edge.Domain.Lo + edge.Domain.Width()*float64(i)/float64(n)
		pts[i] = edge.Curve.Evaluate(t)
	}
	if !forward {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts, nil
}

func newellNormal(poly []gmath.Vec3) gmath.Vec3 {
	var n gmath.Vec3
	for i := range poly {
		a := poly[i]
		bp := poly[(i+1)%len(poly)]
		n.X += (a.Y - bp.Y) * (a.Z + bp.Z)
		n.Y += (a.Z - bp.Z) * (a.X + bp.X)
		n.Z += (a.X - bp.X) * (a.Y + bp.Y)
	}
	if u, err := n.Normalize(); err == nil {
		return u
	}
	return gmath.Vec3{Z: 1}
}

func orthonormalFrame(normal gmath.Vec3) (gmath.Vec3, gmath.Vec3) {
	ref := gmath.Vec3{Y: 1}
	if math.Abs(normal.Dot(gmath.Vec3{X: 1})) < 0.9 {
		ref = gmath.Vec3{X: 1}
	}
	u := normal.Cross(ref)
	u, _ = u.Normalize()
	v := normal.Cross(u)
	v, _ = v.Normalize()
	return u, v
}

// weld merges coincident vertices across all fragments into one
// indexed Mesh, quantizing positions to a grid sized off tol so points
// within tolerance of each other land in the same bucket.
func weld(fragments []*faceMesh, tol float64) *Mesh {
	if tol <= 0 {
		tol = 1e-6
	}
	cell := tol * 2
	type key struct{ x, y, z int64 }
	quantize := func(p gmath.Vec3) key {
		return key{
			int64(math.Round(p.X / cell)),
			int64(math.Round(p.Y / cell)),
			int64(math.Round(p.Z / cell)),
		}
	}

	mesh := &Mesh{}
	seen := make(map[key]int)
	for _, fm := range fragments {
		if fm == nil {
			continue
		}
		remap := make([]int, len(fm.positions))
		for i, p := range fm.positions {
			k := quantize(p)
			if existing, ok := seen[k]; ok {
				remap[i] = existing
				continue
			}
			idx := len(mesh.Positions)
			mesh.Positions = append(mesh.Positions, p)
			mesh.Normals = append(mesh.Normals, fm.normals[i])
			mesh.UVs = append(mesh.UVs, fm.uvs[i])
			seen[k] = idx
			remap[i] = idx
		}
		for _, t := range fm.triangles {
			mesh.Triangles = append(mesh.Triangles, [3]int{remap[t[0]], remap[t[1]], remap[t[2]]})
		}
	}
	sort.Slice(mesh.Triangles, func(i, j int) bool { return mesh.Triangles[i] < mesh.Triangles[j] })
	return mesh
}
