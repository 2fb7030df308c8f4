package kernel

import (
	"os"

	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/stl"
	"github.com/CarlosKeese/NOVA-CAD/step"
)

// ImportSTEP reads an ISO-10303-21 clear-text file from path and
// stores the resulting body under a new handle.
func (k *Kernel) ImportSTEP(path string) (Handle, error) {
	if err := k.checkLive(); err != nil {
		return NoHandle, k.setLastError(err)
	}
	f, err := os.Open(path)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.ImportSTEP", kerrors.ErrInvalidParameter, err))
	}
	defer f.Close()

	b, err := step.Import(f, k.GetTolerance())
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.ImportSTEP", kerrors.ErrGeometryError, err))
	}
	return k.store(b), nil
}

// ExportSTEP writes the body behind h to path as an ISO-10303-21
// clear-text file.
func (k *Kernel) ExportSTEP(h Handle, path string) error {
	b, err := k.lookup(h)
	if err != nil {
		return k.setLastError(kerrors.Wrap("kernel.ExportSTEP", kerrors.ErrInvalidHandle, err))
	}
	f, err := os.Create(path)
	if err != nil {
		return k.setLastError(kerrors.Wrap("kernel.ExportSTEP", kerrors.ErrInvalidParameter, err))
	}
	defer f.Close()

	if err := step.Export(f, path, b); err != nil {
		return k.setLastError(kerrors.Wrap("kernel.ExportSTEP", kerrors.ErrGeometryError, err))
	}
	return nil
}

// ExportSTL tessellates the body behind h and writes it to path, in
// ASCII or binary STL depending on binary. STL carries no analytic
// surface or topology information, so there is no matching ImportSTL —
// the round trip this kernel preserves runs through STEP or the native
// dump format instead.
func (k *Kernel) ExportSTL(oc *OperationContext, h Handle, path string, binary bool) error {
	mesh, err := k.Tessellate(oc, h, 0, 0)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return k.setLastError(kerrors.Wrap("kernel.ExportSTL", kerrors.ErrInvalidParameter, err))
	}
	defer f.Close()

	if binary {
		err = stl.WriteBinary(f, path, mesh)
	} else {
		err = stl.WriteASCII(f, path, mesh)
	}
	if err != nil {
		return k.setLastError(kerrors.Wrap("kernel.ExportSTL", kerrors.ErrGeometryError, err))
	}
	return nil
}
