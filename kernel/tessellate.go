package kernel

import (
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/tessellate"
)

// Tessellate facets the body behind h into a triangle mesh, honoring
// chordTolerance and angleTolerance as deviation bounds (<= 0 leaves
// tessellate's own defaults in place).
func (k *Kernel) Tessellate(oc *OperationContext, h Handle, chordTolerance, angleTolerance float64) (*tessellate.Mesh, error) {
	b, err := k.lookup(h)
	if err != nil {
		return nil, k.setLastError(kerrors.Wrap("kernel.Tessellate", kerrors.ErrInvalidHandle, err))
	}
	var opts []tessellate.Option
	if chordTolerance > 0 {
		opts = append(opts, tessellate.WithChordTolerance(chordTolerance))
	}
	if angleTolerance > 0 {
		opts = append(opts, tessellate.WithAngleTolerance(angleTolerance))
	}
	mesh, err := tessellate.Tessellate(oc.context(), b, opts...)
	if err != nil {
		return nil, k.setLastError(kerrors.Wrap("kernel.Tessellate", kerrors.ErrGeometryError, err))
	}
	return mesh, nil
}
