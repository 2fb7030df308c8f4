package topology

import (
	"math"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// edgeKey canonicalizes an unordered vertex pair so two faces walking
// the same physical edge in opposite directions find each other in an
// edge cache.
type edgeKey struct{ a, b VertexID }

func makeEdgeKey(a, b VertexID) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// reuseEdgeInLoop appends an existing edge to loop as a second coedge
// use, partnered with whichever coedge already claims that edge. This
// is how primitive constructors stitch faces sharing an edge without
// creating a duplicate: it is the low-level splice both MEV and MEF
// build on, exposed here only for internal ring assembly.
func (b *Body) reuseEdgeInLoop(loop LoopID, edgeID EdgeID, forward bool) CoedgeID {
	co := b.newCoedge(Coedge{edge: edgeID, loop: loop, orientation: forward})
	if b.edges[edgeID].coedge[0] == NoCoedge {
		b.edges[edgeID].coedge[0] = co
	} else {
		other := b.edges[edgeID].coedge[0]
		b.edges[edgeID].coedge[1] = co
		b.coedges[co].partner = other
		b.coedges[other].partner = co
	}

	l := &b.loops[loop]
	if l.first == NoCoedge {
		b.coedges[co].next = co
		b.coedges[co].prev = co
		l.first = co
		return co
	}
	last := b.coedges[l.first].prev
	b.coedges[last].next = co
	b.coedges[co].prev = last
	b.coedges[co].next = l.first
	b.coedges[l.first].prev = co
	return co
}

// addRingFace builds one planar or periodic face bounded by a single
// ring: verts gives the cyclic vertex sequence, curves the curve to
// use for the edge from verts[i] to verts[i+1]. An edge already present
// in cache (shared with a previously built face) is reused rather than
// recreated, giving the two faces a true common edge with matched
// partner coedges.
func (b *Body) addRingFace(shellID ShellID, surface geometry.Surface, uv geometry.UVDomain, verts []VertexID, curves []geometry.Curve, domains []geometry.Domain, cache map[edgeKey]EdgeID) FaceID {
	loop := b.newLoop(Loop{outer: true})
	n := len(verts)
	for i := 0; i < n; i++ {
		from, to := verts[i], verts[(i+1)%n]
		key := makeEdgeKey(from, to)
		if existing, ok := cache[key]; ok {
			b.reuseEdgeInLoop(loop, existing, from == b.edges[existing].tail[0])
			continue
		}
		edgeID := b.newEdge(Edge{Curve: curves[i], Domain: domains[i], tail: [2]VertexID{from, to}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})
		cache[key] = edgeID
		co := b.newCoedge(Coedge{edge: edgeID, loop: loop, orientation: true})
		b.edges[edgeID].coedge[0] = co
		l := &b.loops[loop]
		if l.first == NoCoedge {
			b.coedges[co].next = co
			b.coedges[co].prev = co
			l.first = co
		} else {
			last := b.coedges[l.first].prev
			b.coedges[last].next = co
			b.coedges[co].prev = last
			b.coedges[co].next = l.first
			b.coedges[l.first].prev = co
		}
	}
	face := b.newFace(Face{Surface: surface, UV: uv, shell: shellID, loops: []LoopID{loop}, sameSense: true})
	b.loops[loop].face = face
	b.shells[shellID].faces = append(b.shells[shellID].faces, face)
	return face
}

// NewBox builds a closed rectangular solid of extent (dx, dy, dz) with
// its minimum corner at origin, assembled as six planar faces sharing
// twelve edges and eight vertices — the topology-layer analogue of the
// "MVFS, six MEVs to lay out eight corners, MEFs to close the six
// square faces" construction.
func NewBox(tol *gmath.ToleranceContext, origin gmath.Vec3, dx, dy, dz float64) (*Body, error) {
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, ErrPrecondition
	}
	b := NewEmptyBody(tol)

	p := [8]gmath.Vec3{
		origin,
		origin.Add(gmath.Vec3{X: dx}),
		origin.Add(gmath.Vec3{X: dx, Y: dy}),
		origin.Add(gmath.Vec3{Y: dy}),
		origin.Add(gmath.Vec3{Z: dz}),
		origin.Add(gmath.Vec3{X: dx, Z: dz}),
		origin.Add(gmath.Vec3{X: dx, Y: dy, Z: dz}),
		origin.Add(gmath.Vec3{Y: dy, Z: dz}),
	}
	v := [8]VertexID{}
	for i := range p {
		v[i] = b.newVertex(p[i])
	}

	shell := b.newShell(Shell{})
	b.shellList = append(b.shellList, shell)
	cache := make(map[edgeKey]EdgeID)

	faceRings := [6][4]int{
		{0, 3, 2, 1}, // bottom, normal -z
		{4, 5, 6, 7}, // top, normal +z
		{0, 1, 5, 4}, // front, normal -y
		{1, 2, 6, 5}, // right, normal +x
		{2, 3, 7, 6}, // back, normal +y
		{3, 0, 4, 7}, // left, normal -x
	}

	for _, ring := range faceRings {
		verts := []VertexID{v[ring[0]], v[ring[1]], v[ring[2]], v[ring[3]]}
		origin := p[ring[0]]
		uAxis := p[ring[1]].Sub(p[ring[0]])
		vAxis := p[ring[3]].Sub(p[ring[0]])
		uLen := uAxis.Length()
		vLen := vAxis.Length()
		surface, err := geometry.NewPlane(origin, uAxis.Scale(1/uLen), vAxis.Scale(1/vLen), 0, uLen, 0, vLen)
		if err != nil {
			return nil, err
		}
		uv := surface.UVDomain()

		curves := make([]geometry.Curve, 4)
		domains := make([]geometry.Domain, 4)
		for i := 0; i < 4; i++ {
			from, to := p[ring[i]], p[ring[(i+1)%4]]
			dir := to.Sub(from)
			length := dir.Length()
			line, err := geometry.NewLine(from, dir.Scale(1/length), 0, length)
			if err != nil {
				return nil, err
			}
			curves[i] = line
			domains[i] = gmath.Interval{Lo: 0, Hi: length}
		}
		b.addRingFace(shell, surface, uv, verts, curves, domains, cache)
	}

	if err := CheckInvariants(b); err != nil {
		return nil, err
	}
	return b, nil
}

// NewCylinderShell builds a closed right-circular cylinder of the
// given radius and height, centered on the Z axis with its base at
// origin: two planar disc caps and one periodic lateral face sharing
// the cap rims as its top and bottom edges.
func NewCylinderShell(tol *gmath.ToleranceContext, origin gmath.Vec3, radius, height float64) (*Body, error) {
	if radius <= 0 || height <= 0 {
		return nil, ErrPrecondition
	}
	b := NewEmptyBody(tol)
	shell := b.newShell(Shell{})
	b.shellList = append(b.shellList, shell)

	axis := gmath.Vec3{Z: 1}
	top := origin.Add(gmath.Vec3{Z: height})

	seamPointBottom := origin.Add(gmath.Vec3{X: radius})
	seamPointTop := top.Add(gmath.Vec3{X: radius})
	vBottom := b.newVertex(seamPointBottom)
	vTop := b.newVertex(seamPointTop)

	bottomArc, err := geometry.NewArc(origin, gmath.Vec3{X: 1}, gmath.Vec3{Y: 1}, radius, radius, 0, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	topArc, err := geometry.NewArc(top, gmath.Vec3{X: 1}, gmath.Vec3{Y: 1}, radius, radius, 0, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	seam, err := geometry.NewLine(seamPointBottom, gmath.Vec3{Z: 1}, 0, height)
	if err != nil {
		return nil, err
	}

	bottomEdge := b.newEdge(Edge{Curve: bottomArc, Domain: bottomArc.Domain(), tail: [2]VertexID{vBottom, vBottom}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})
	topEdge := b.newEdge(Edge{Curve: topArc, Domain: topArc.Domain(), tail: [2]VertexID{vTop, vTop}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})
	seamEdge := b.newEdge(Edge{Curve: seam, Domain: seam.Domain(), tail: [2]VertexID{vBottom, vTop}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})

	cyl, err := geometry.NewCylinder(origin, axis, radius, 0, height)
	if err != nil {
		return nil, err
	}
	lateralUV := geometry.UVDomain{U: gmath.Interval{Lo: 0, Hi: 2 * math.Pi}, V: gmath.Interval{Lo: 0, Hi: height}}
	lateralLoop := b.newLoop(Loop{outer: true})
	b.linkRingCoedge(lateralLoop, bottomEdge, true)
	cSeamUp := b.linkRingCoedge(lateralLoop, seamEdge, true)
	b.linkRingCoedge(lateralLoop, topEdge, false)
	cSeamDown := b.linkRingCoedge(lateralLoop, seamEdge, false)
	b.coedges[cSeamUp].partner = cSeamDown
	b.coedges[cSeamDown].partner = cSeamUp
	lateralFace := b.newFace(Face{Surface: cyl, UV: lateralUV, shell: shell, loops: []LoopID{lateralLoop}, sameSense: true})
	b.loops[lateralLoop].face = lateralFace
	b.shells[shell].faces = append(b.shells[shell].faces, lateralFace)

	bottomPlane, err := geometry.NewPlane(origin, gmath.Vec3{X: -1}, gmath.Vec3{Y: 1}, -radius, radius, -radius, radius)
	if err != nil {
		return nil, err
	}
	topPlane, err := geometry.NewPlane(top, gmath.Vec3{X: 1}, gmath.Vec3{Y: 1}, -radius, radius, -radius, radius)
	if err != nil {
		return nil, err
	}

	bottomLoop := b.newLoop(Loop{outer: true})
	b.reuseEdgeInLoop(bottomLoop, bottomEdge, false)
	bottomFace := b.newFace(Face{Surface: bottomPlane, UV: bottomPlane.UVDomain(), shell: shell, loops: []LoopID{bottomLoop}, sameSense: true})
	b.loops[bottomLoop].face = bottomFace
	b.shells[shell].faces = append(b.shells[shell].faces, bottomFace)

	topLoop := b.newLoop(Loop{outer: true})
	b.reuseEdgeInLoop(topLoop, topEdge, true)
	topFace := b.newFace(Face{Surface: topPlane, UV: topPlane.UVDomain(), shell: shell, loops: []LoopID{topLoop}, sameSense: true})
	b.loops[topLoop].face = topFace
	b.shells[shell].faces = append(b.shells[shell].faces, topFace)

	if err := CheckInvariants(b); err != nil {
		return nil, err
	}
	return b, nil
}

// perpAxis returns an arbitrary unit vector perpendicular to axis, used
// to seed a reference direction for periodic primitives that otherwise
// have no natural "u=0" meridian.
func perpAxis(axis gmath.Vec3) gmath.Vec3 {
	n, err := axis.Normalize()
	if err != nil {
		n = gmath.Vec3{Z: 1}
	}
	ref := gmath.Vec3{Y: 1}
	if math.Abs(n.Dot(gmath.Vec3{X: 1})) < 0.9 {
		ref = gmath.Vec3{X: 1}
	}
	perp := n.Cross(ref)
	perp, _ = perp.Normalize()
	return perp
}

// NewSphereShell builds a full sphere as a single periodic face bounded
// by a degenerate two-coedge loop: one meridian edge between the poles,
// walked once in each direction. This is the classical B-rep encoding
// of a fully closed surface of revolution — there is no real boundary,
// only the seam needed to cut the face into a topological disc.
func NewSphereShell(tol *gmath.ToleranceContext, center gmath.Vec3, radius float64) (*Body, error) {
	if radius <= 0 {
		return nil, ErrPrecondition
	}
	b := NewEmptyBody(tol)
	shell := b.newShell(Shell{})
	b.shellList = append(b.shellList, shell)

	poleAxis := gmath.Vec3{Z: 1}
	refX := perpAxis(poleAxis)

	vSouth := b.newVertex(center.Sub(poleAxis.Scale(radius)))
	vNorth := b.newVertex(center.Add(poleAxis.Scale(radius)))

	meridian, err := geometry.NewArc(center, refX, poleAxis, radius, radius, -math.Pi/2, math.Pi/2)
	if err != nil {
		return nil, err
	}
	edgeID := b.newEdge(Edge{Curve: meridian, Domain: meridian.Domain(), tail: [2]VertexID{vSouth, vNorth}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})

	sph, err := geometry.NewSphere(center, poleAxis, radius)
	if err != nil {
		return nil, err
	}

	loop := b.newLoop(Loop{outer: true})
	cUp := b.linkRingCoedge(loop, edgeID, true)
	cDown := b.linkRingCoedge(loop, edgeID, false)
	b.coedges[cUp].partner = cDown
	b.coedges[cDown].partner = cUp

	face := b.newFace(Face{Surface: sph, UV: sph.UVDomain(), shell: shell, loops: []LoopID{loop}, sameSense: true})
	b.loops[loop].face = face
	b.shells[shell].faces = append(b.shells[shell].faces, face)

	if err := CheckInvariants(b); err != nil {
		return nil, err
	}
	return b, nil
}

// NewConeShell builds a right circular cone of the given half-angle and
// height with its apex at the given point and axis +Z: a lateral face
// bounded by the seam-apex-seam-base triangle of coedges, plus a planar
// base cap sharing the base circle edge.
func NewConeShell(tol *gmath.ToleranceContext, apex gmath.Vec3, halfAngle, height float64) (*Body, error) {
	if height <= 0 || halfAngle <= 0 || halfAngle >= math.Pi/2 {
		return nil, ErrPrecondition
	}
	b := NewEmptyBody(tol)
	shell := b.newShell(Shell{})
	b.shellList = append(b.shellList, shell)

	axis := gmath.Vec3{Z: 1}
	baseRadius := height * math.Tan(halfAngle)
	baseCenter := apex.Add(axis.Scale(height))
	refX := perpAxis(axis)
	refY := axis.Cross(refX)
	basePoint := baseCenter.Add(refX.Scale(baseRadius))

	vApex := b.newVertex(apex)
	vBase := b.newVertex(basePoint)

	baseArc, err := geometry.NewArc(baseCenter, refX, refY, baseRadius, baseRadius, 0, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	seamDir := basePoint.Sub(apex)
	seamLen := seamDir.Length()
	seam, err := geometry.NewLine(apex, seamDir.Scale(1/seamLen), 0, seamLen)
	if err != nil {
		return nil, err
	}

	baseEdge := b.newEdge(Edge{Curve: baseArc, Domain: baseArc.Domain(), tail: [2]VertexID{vBase, vBase}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})
	seamEdge := b.newEdge(Edge{Curve: seam, Domain: seam.Domain(), tail: [2]VertexID{vApex, vBase}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})

	cone, err := geometry.NewCone(apex, axis, halfAngle, 0, seamLen)
	if err != nil {
		return nil, err
	}

	lateralLoop := b.newLoop(Loop{outer: true})
	cSeamUp := b.linkRingCoedge(lateralLoop, seamEdge, true)
	b.linkRingCoedge(lateralLoop, baseEdge, true)
	cSeamDown := b.linkRingCoedge(lateralLoop, seamEdge, false)
	b.coedges[cSeamUp].partner = cSeamDown
	b.coedges[cSeamDown].partner = cSeamUp

	lateralFace := b.newFace(Face{Surface: cone, UV: cone.UVDomain(), shell: shell, loops: []LoopID{lateralLoop}, sameSense: true})
	b.loops[lateralLoop].face = lateralFace
	b.shells[shell].faces = append(b.shells[shell].faces, lateralFace)

	baseDx := refX.Scale(baseRadius)
	baseDy := refY.Scale(baseRadius)
	basePlane, err := geometry.NewPlane(baseCenter, baseDx.Scale(1/baseDx.Length()), baseDy.Scale(1/baseDy.Length()), -baseRadius, baseRadius, -baseRadius, baseRadius)
	if err != nil {
		return nil, err
	}
	baseLoop := b.newLoop(Loop{outer: true})
	b.reuseEdgeInLoop(baseLoop, baseEdge, false)
	baseFace := b.newFace(Face{Surface: basePlane, UV: basePlane.UVDomain(), shell: shell, loops: []LoopID{baseLoop}, sameSense: true})
	b.loops[baseLoop].face = baseFace
	b.shells[shell].faces = append(b.shells[shell].faces, baseFace)

	if err := CheckInvariants(b); err != nil {
		return nil, err
	}
	return b, nil
}

// NewTorusShell builds a full ring torus as a single face bounded by the
// classical four-coedge "aba⁻¹b⁻¹" fundamental-polygon loop: one ring
// seam (varying u at v=0) and one tube seam (varying v at u=0) crossing
// at a single corner vertex. The shell's genus is set to 1 directly
// since the hole is inherent to the primitive, not produced by an Euler
// operator.
func NewTorusShell(tol *gmath.ToleranceContext, center gmath.Vec3, majorRadius, minorRadius float64) (*Body, error) {
	if majorRadius <= 0 || minorRadius <= 0 || minorRadius >= majorRadius {
		return nil, ErrPrecondition
	}
	b := NewEmptyBody(tol)
	shell := b.newShell(Shell{genus: 1})
	b.shellList = append(b.shellList, shell)

	axis := gmath.Vec3{Z: 1}
	refX := perpAxis(axis)
	refY := axis.Cross(refX)
	ringCenter := center.Add(refX.Scale(majorRadius))
	corner := ringCenter.Add(refX.Scale(minorRadius))

	vertex := b.newVertex(corner)

	ringSeam, err := geometry.NewArc(center, refX, refY, majorRadius+minorRadius, majorRadius+minorRadius, 0, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	tubeSeam, err := geometry.NewArc(ringCenter, refX, axis, minorRadius, minorRadius, 0, 2*math.Pi)
	if err != nil {
		return nil, err
	}

	ringEdge := b.newEdge(Edge{Curve: ringSeam, Domain: ringSeam.Domain(), tail: [2]VertexID{vertex, vertex}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})
	tubeEdge := b.newEdge(Edge{Curve: tubeSeam, Domain: tubeSeam.Domain(), tail: [2]VertexID{vertex, vertex}, coedge: [2]CoedgeID{NoCoedge, NoCoedge}})

	torus, err := geometry.NewTorus(center, axis, majorRadius, minorRadius)
	if err != nil {
		return nil, err
	}

	loop := b.newLoop(Loop{outer: true})
	c1 := b.linkRingCoedge(loop, ringEdge, true)
	c2 := b.linkRingCoedge(loop, tubeEdge, true)
	c3 := b.linkRingCoedge(loop, ringEdge, false)
	c4 := b.linkRingCoedge(loop, tubeEdge, false)
	b.coedges[c1].partner = c3
	b.coedges[c3].partner = c1
	b.coedges[c2].partner = c4
	b.coedges[c4].partner = c2

	face := b.newFace(Face{Surface: torus, UV: torus.UVDomain(), shell: shell, loops: []LoopID{loop}, sameSense: true})
	b.loops[loop].face = face
	b.shells[shell].faces = append(b.shells[shell].faces, face)

	if err := CheckInvariants(b); err != nil {
		return nil, err
	}
	return b, nil
}

// linkRingCoedge appends a coedge for edgeID to loop without touching
// the edge's coedge-use slots (the caller owns those for the lateral
// face's four-segment ring, since both the arc edges and the seam
// edge are visited twice each by the same loop boundary).
func (b *Body) linkRingCoedge(loop LoopID, edgeID EdgeID, forward bool) CoedgeID {
	co := b.newCoedge(Coedge{edge: edgeID, loop: loop, orientation: forward})
	if b.edges[edgeID].coedge[0] == NoCoedge {
		b.edges[edgeID].coedge[0] = co
	} else if b.edges[edgeID].coedge[1] == NoCoedge {
		b.edges[edgeID].coedge[1] = co
	}
	l := &b.loops[loop]
	if l.first == NoCoedge {
		b.coedges[co].next = co
		b.coedges[co].prev = co
		l.first = co
		return co
	}
	last := b.coedges[l.first].prev
	b.coedges[last].next = co
	b.coedges[co].prev = last
	b.coedges[co].next = l.first
	b.coedges[l.first].prev = co
	return co
}
