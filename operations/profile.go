package operations

import "github.com/CarlosKeese/NOVA-CAD/gmath"

// Profile is a closed, planar, simple polygon given in its own local
// 2D coordinates, embedded in space by an origin and an orthonormal
// (uAxis, vAxis) basis. Extrude, Revolve, Sweep and Loft all start
// from one or more Profiles and build new solids by sweeping rings of
// its vertices through space, the same "soup of planar rings" shape
// as the Boolean rebuild path, so every feature operator in this
// package ends at the same topology.NewFromPolygonSoup call.
type Profile struct {
	Points []gmath.Vec2
	Origin gmath.Vec3
	UAxis  gmath.Vec3
	VAxis  gmath.Vec3
}

// Embed returns the profile's ring in world space.
func (p Profile) Embed() []gmath.Vec3 {
	out := make([]gmath.Vec3, len(p.Points))
	for i, pt := range p.Points {
		out[i] = p.Origin.Add(p.UAxis.Scale(pt.X)).Add(p.VAxis.Scale(pt.Y))
	}
	return out
}

// Transformed returns a copy of the profile's 3D ring passed through
// xf, placing the same 2D shape at a moved, rotated and/or scaled
// station along a path.
func (p Profile) Transformed(xf gmath.Mat4) []gmath.Vec3 {
	ring := p.Embed()
	out := make([]gmath.Vec3, len(ring))
	for i, v := range ring {
		out[i] = xf.MulPoint(v)
	}
	return out
}

// sidewall builds the quad (as two triangles are not needed — the
// rebuild accepts planar n-gons directly, so a quad is one ring) faces
// joining two corresponding rings of the same vertex count, the
// standard lofted-sidewall construction every sweep-like operator
// shares.
func sidewall(ringA, ringB []gmath.Vec3) [][]gmath.Vec3 {
	n := len(ringA)
	faces := make([][]gmath.Vec3, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces, []gmath.Vec3{ringA[i], ringA[j], ringB[j], ringB[i]})
	}
	return faces
}

func reversed(ring []gmath.Vec3) []gmath.Vec3 {
	out := make([]gmath.Vec3, len(ring))
	for i, v := range ring {
		out[len(ring)-1-i] = v
	}
	return out
}
