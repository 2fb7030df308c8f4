// Package step reads and writes the ISO-10303-21 clear-text encoding
// of the AP214/AP242 entity subset needed to round-trip a topology
// Body: Cartesian points and directions, lines and circles, planar,
// cylindrical, conical, spherical and toroidal surfaces, and the
// advanced-face/closed-shell/manifold-solid-brep shape structure that
// ties them into a boundary representation.
package step

import (
	"fmt"
	"strings"
)

// entity is one line of the DATA section: a `#id=TYPE(args);` record
// with no knowledge of what the record means, used identically by the
// writer (building these up from a Body) and stored verbatim by the
// reader (which reparses typed fields out of Args on demand).
type entity struct {
	id   int
	kind string
	args string
}

func (e entity) String() string {
	return fmt.Sprintf("#%d=%s(%s);", e.id, e.kind, e.args)
}

// table accumulates entities under ascending IDs as the writer walks a
// Body, so every reference a later entity needs (a vertex's point, a
// face's surface) already has an ID by the time it is used.
type table struct {
	entities []entity
	next     int
}

func newTable() *table { return &table{next: 1} }

func (t *table) add(kind, args string) int {
	id := t.next
	t.next++
	t.entities = append(t.entities, entity{id: id, kind: kind, args: args})
	return id
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.10E", f)
}

func formatFloats(vals []float64) string {
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = formatFloat(v)
	}
	return strings.Join(strs, ",")
}

func formatRefs(ids []int) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(strs, ",")
}

func formatBool(b bool) string {
	if b {
		return ".T."
	}
	return ".F."
}

// cartesianPoint emits a CARTESIAN_POINT entity and returns its id.
func (t *table) cartesianPoint(x, y, z float64) int {
	return t.add("CARTESIAN_POINT", fmt.Sprintf("'',(%s)", formatFloats([]float64{x, y, z})))
}

// direction emits a DIRECTION entity and returns its id.
func (t *table) direction(x, y, z float64) int {
	return t.add("DIRECTION", fmt.Sprintf("'',(%s)", formatFloats([]float64{x, y, z})))
}

// axis2Placement3D emits an AXIS2_PLACEMENT_3D entity (origin, main
// axis, reference x-direction) and returns its id.
func (t *table) axis2Placement3D(location, axis, refDir int) int {
	return t.add("AXIS2_PLACEMENT_3D", fmt.Sprintf("'',#%d,#%d,#%d", location, axis, refDir))
}
