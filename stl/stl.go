// Package stl writes a tessellated body out in both STL dialects: the
// plain-text "facet normal / outer loop" ASCII form and the 80-byte-
// header + 50-bytes-per-triangle binary form most downstream printing
// and viewing tools actually consume.
package stl

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/tessellate"
)

// WriteASCII writes m to w in STL's text dialect, one "facet normal"
// block per triangle, named solid.
func WriteASCII(w io.Writer, solid string, m *tessellate.Mesh) error {
	if _, err := fmt.Fprintf(w, "solid %s\n", solid); err != nil {
		return kerrors.Wrap("stl.WriteASCII", kerrors.ErrGeometryError, err)
	}
	for _, tri := range m.Triangles {
		a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
		n := triangleNormal(m, tri)
		if err := writeFacet(w, n, a, b, c); err != nil {
			return kerrors.Wrap("stl.WriteASCII", kerrors.ErrGeometryError, err)
		}
	}
	if _, err := fmt.Fprintf(w, "endsolid %s\n", solid); err != nil {
		return kerrors.Wrap("stl.WriteASCII", kerrors.ErrGeometryError, err)
	}
	return nil
}

func writeFacet(w io.Writer, n, a, b, c gmath.Vec3) error {
	lines := []string{
		fmt.Sprintf("  facet normal %g %g %g\n", n.X, n.Y, n.Z),
		"    outer loop\n",
		fmt.Sprintf("      vertex %g %g %g\n", a.X, a.Y, a.Z),
		fmt.Sprintf("      vertex %g %g %g\n", b.X, b.Y, b.Z),
		fmt.Sprintf("      vertex %g %g %g\n", c.X, c.Y, c.Z),
		"    endloop\n",
		"  endfacet\n",
	}
	for _, l := range lines {
		if _, err := io.WriteString(w, l); err != nil {
			return err
		}
	}
	return nil
}

// WriteBinary writes m to w in STL's binary dialect: an 80-byte
// (truncated/padded) header comment, a uint32 triangle count, then 50
// bytes per triangle (3 normal floats, 3x3 vertex floats, a uint16
// attribute byte count left 0).
func WriteBinary(w io.Writer, header string, m *tessellate.Mesh) error {
	var hdr [80]byte
	copy(hdr[:], header)
	if _, err := w.Write(hdr[:]); err != nil {
		return kerrors.Wrap("stl.WriteBinary", kerrors.ErrGeometryError, err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return kerrors.Wrap("stl.WriteBinary", kerrors.ErrGeometryError, err)
	}
	for _, tri := range m.Triangles {
		n := triangleNormal(m, tri)
		vals := []float32{
			float32(n.X), float32(n.Y), float32(n.Z),
		}
		for _, idx := range tri {
			p := m.Positions[idx]
			vals = append(vals, float32(p.X), float32(p.Y), float32(p.Z))
		}
		for _, v := range vals {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return kerrors.Wrap("stl.WriteBinary", kerrors.ErrGeometryError, err)
			}
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return kerrors.Wrap("stl.WriteBinary", kerrors.ErrGeometryError, err)
		}
	}
	return nil
}

func triangleNormal(m *tessellate.Mesh, tri [3]int) gmath.Vec3 {
	a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if u, err := n.Normalize(); err == nil {
		return u
	}
	// Degenerate triangle: fall back to the averaged vertex normal
	// rather than emitting a zero vector STL readers choke on.
	sum := m.Normals[tri[0]].Add(m.Normals[tri[1]]).Add(m.Normals[tri[2]])
	if u, err := sum.Normalize(); err == nil {
		return u
	}
	return gmath.Vec3{Z: 1}
}
