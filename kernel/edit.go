package kernel

import (
	"fmt"

	"github.com/CarlosKeese/NOVA-CAD/geometry"
	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/synctech"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// EditSession is an in-progress direct-edit transaction opened by
// BeginEdit: MoveFace/ApplyDimension mutate a private working copy of
// the body, never the Kernel's own stored copy behind the handle
// BeginEdit was given, until EndEdit commits the result to a fresh
// Handle — the same copy-then-transform discipline every other kernel
// operation already follows (see handle.go's Copy doc comment).
type EditSession struct {
	k       *Kernel
	tol     *gmath.ToleranceContext
	working *topology.Body
	rules   []synctech.Relation
}

// BeginEdit opens a direct-edit session on a copy of h's body and
// primes it with the live rules (synctech.DetectRules) MoveFace will
// consult to propagate a move across coupled faces.
func (k *Kernel) BeginEdit(h Handle) (*EditSession, error) {
	b, err := k.lookup(h)
	if err != nil {
		return nil, k.setLastError(kerrors.Wrap("kernel.BeginEdit", kerrors.ErrInvalidHandle, err))
	}
	working := b.Clone()
	rules, err := synctech.DetectRules(working.Tolerance, working)
	if err != nil {
		return nil, k.setLastError(kerrors.Wrap("kernel.BeginEdit", kerrors.ErrTopologyError, err))
	}
	return &EditSession{k: k, tol: working.Tolerance, working: working, rules: rules}, nil
}

// MoveFace transforms faceIDs by t via synctech.MoveFaces, first
// extending the moved set with any face coupled to one of them by a
// sufficiently strong live rule (Concentric or Coplanar) so the
// coupled face moves along with it, per 4.S.2: "moving one face of a
// concentric pair moves the other by the coupled transform."
// Perpendicular/Parallel/Tangent/Symmetric relations are weaker and
// are reported by Solve but not auto-propagated.
func (s *EditSession) MoveFace(faceIDs []topology.FaceID, t gmath.Transform) error {
	moved := make(map[topology.FaceID]bool, len(faceIDs))
	for _, f := range faceIDs {
		moved[f] = true
	}
	full := append([]topology.FaceID(nil), faceIDs...)
	for _, r := range s.rules {
		if r.Kind != synctech.RelationConcentric && r.Kind != synctech.RelationCoplanar {
			continue
		}
		switch {
		case moved[r.A] && !moved[r.B]:
			full = append(full, r.B)
			moved[r.B] = true
		case moved[r.B] && !moved[r.A]:
			full = append(full, r.A)
			moved[r.A] = true
		}
	}

	out, err := synctech.MoveFaces(s.tol, s.working, full, t)
	if err != nil {
		return s.k.setLastError(withEntity(kerrors.Wrap("kernel.EditSession.MoveFace", kerrors.ErrGeometryError, err), full))
	}
	s.working = out

	rules, err := synctech.DetectRules(s.tol, s.working)
	if err != nil {
		return s.k.setLastError(kerrors.Wrap("kernel.EditSession.MoveFace", kerrors.ErrTopologyError, err))
	}
	s.rules = rules
	return nil
}

// ApplyDimension re-expresses a target numeric value (a pad height, a
// pocket depth, a hole's cap offset — any dimension driven by moving a
// set of coplanar planar faces along their shared normal) as a
// MoveFace call: it translates faceIDs by (targetValue - currentValue)
// along their averaged plane normal. Scoped to planar faces, the
// common dimensioned case named in 4.S.3's "dragging a handle is
// equivalent to a face-edit operation."
func (s *EditSession) ApplyDimension(faceIDs []topology.FaceID, currentValue, targetValue float64) error {
	if len(faceIDs) == 0 {
		return s.k.setLastError(kerrors.Wrap("kernel.EditSession.ApplyDimension", kerrors.ErrInvalidParameter, fmt.Errorf("no faces given")))
	}
	var normal gmath.Vec3
	for _, fid := range faceIDs {
		f, err := s.working.Face(fid)
		if err != nil {
			return s.k.setLastError(kerrors.Wrap("kernel.EditSession.ApplyDimension", kerrors.ErrInvalidHandle, err))
		}
		pl, ok := f.Surface.(*geometry.Plane)
		if !ok {
			return s.k.setLastError(withEntity(kerrors.Wrap("kernel.EditSession.ApplyDimension", kerrors.ErrUnsupportedGeometry, fmt.Errorf("face is not planar")), fid))
		}
		normal = normal.Add(pl.U.Cross(pl.V))
	}
	unit, err := normal.Normalize()
	if err != nil {
		return s.k.setLastError(kerrors.Wrap("kernel.EditSession.ApplyDimension", kerrors.ErrGeometryError, err))
	}
	t := gmath.Transform{Translation: unit.Scale(targetValue - currentValue), Rotation: gmath.IdentityQuaternion()}
	return s.MoveFace(faceIDs, t)
}

// Solve re-runs live-rule detection over the session's current working
// body without moving anything, refreshing the relation set MoveFace
// consults for its next call.
func (s *EditSession) Solve() ([]synctech.Relation, error) {
	rules, err := synctech.DetectRules(s.tol, s.working)
	if err != nil {
		return nil, s.k.setLastError(kerrors.Wrap("kernel.EditSession.Solve", kerrors.ErrTopologyError, err))
	}
	s.rules = rules
	return rules, nil
}

// EndEdit commits the session's working body to a new Handle and
// closes the session. The Handle BeginEdit was opened on is untouched.
func (s *EditSession) EndEdit() (Handle, error) {
	if err := topology.CheckInvariants(s.working); err != nil {
		return NoHandle, s.k.setLastError(kerrors.Wrap("kernel.EditSession.EndEdit", kerrors.ErrTopologyError, err))
	}
	return s.k.store(s.working), nil
}
