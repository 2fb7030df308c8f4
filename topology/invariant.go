package topology

// CheckInvariants verifies the body against the Euler-Poincare relation
// and the structural manifold rules every Euler operator must leave
// intact. It is run after every mutating operation; a non-nil error
// means the mutation must not be taken as applied by the caller.
//
// The relation is checked globally rather than loop for loop, with H
// (genus) stored per shell (set by the constructors, incremented by
// KFMRH) rather than re-derived from the graph each time:
//
//	V - E + F - (L - F) - 2*(S - H) = 0
func CheckInvariants(b *Body) error {
	v, e, f, l := b.counts()

	s := 0
	h := 0
	for _, sid := range b.shellList {
		sh := b.shells[sid]
		if sh.dead {
			continue
		}
		s++
		h += sh.genus
	}

	lhs := v - e + f - (l - f) - 2*(s-h)
	if lhs != 0 {
		return ErrInvariantViolated
	}

	if err := b.checkEdgeUses(); err != nil {
		return err
	}
	if err := b.checkLoopCycles(); err != nil {
		return err
	}
	if err := b.checkFaceLoops(); err != nil {
		return err
	}
	return nil
}

// checkEdgeUses ensures every live edge's coedge[0]/coedge[1] point
// back to coedges that in turn name that same edge, and that a
// two-sided edge's coedges are mutual partners.
func (b *Body) checkEdgeUses() error {
	for id, e := range b.edges {
		if e.dead {
			continue
		}
		used := 0
		for _, cid := range e.coedge {
			if cid == NoCoedge {
				continue
			}
			if int(cid) < 0 || int(cid) >= len(b.coedges) {
				return ErrInvariantViolated
			}
			co := b.coedges[cid]
			if co.dead || co.edge != EdgeID(id) {
				return ErrInvariantViolated
			}
			used++
		}
		if used == 0 {
			return ErrInvariantViolated
		}
		if used == 2 {
			c0, c1 := e.coedge[0], e.coedge[1]
			if b.coedges[c0].partner != c1 || b.coedges[c1].partner != c0 {
				return ErrInvariantViolated
			}
		}
	}
	return nil
}

// checkLoopCycles ensures every live loop's coedge chain is a single
// closed cycle that returns to first, and that every coedge in it
// names that loop.
func (b *Body) checkLoopCycles() error {
	for id, lp := range b.loops {
		if lp.dead || lp.first == NoCoedge {
			continue
		}
		start := lp.first
		cur := start
		steps := 0
		for {
			co := b.coedges[cur]
			if co.dead || co.loop != LoopID(id) {
				return ErrInvariantViolated
			}
			if b.coedges[co.next].prev != cur {
				return ErrInvariantViolated
			}
			cur = co.next
			steps++
			if cur == start {
				break
			}
			if steps > len(b.coedges)+1 {
				return ErrInvariantViolated
			}
		}
	}
	return nil
}

// checkFaceLoops ensures every live face names exactly one outer loop
// among its loops, all owned by the face.
func (b *Body) checkFaceLoops() error {
	for id, f := range b.faces {
		if f.dead {
			continue
		}
		outerCount := 0
		for _, lid := range f.loops {
			lp := b.loops[lid]
			if lp.dead || lp.face != FaceID(id) {
				return ErrInvariantViolated
			}
			if lp.outer {
				outerCount++
			}
		}
		if len(f.loops) > 0 && outerCount != 1 {
			return ErrInvariantViolated
		}
	}
	return nil
}
