package kernel

import (
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
	"github.com/CarlosKeese/NOVA-CAD/topology"
)

// Handle is an opaque reference to a body owned by a Kernel instance.
// It is meaningless outside the Kernel that issued it; a Handle from
// one Kernel passed to another is just a stale handle (ErrInvalidHandle).
type Handle uint64

const NoHandle Handle = 0

type bodyEntry struct {
	body *topology.Body
}

func (k *Kernel) store(b *topology.Body) Handle {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.nextID++
	h := Handle(k.nextID)
	k.bodies[h] = &bodyEntry{body: b}
	return h
}

// lookup returns the live Body behind h, or ErrInvalidHandle.
func (k *Kernel) lookup(h Handle) (*topology.Body, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	e, ok := k.bodies[h]
	if !ok {
		return nil, invalidHandle("kernel", h)
	}
	return e.body, nil
}

// Release frees the body behind h. Releasing an already-released or
// unknown handle reports ErrInvalidHandle rather than silently
// succeeding, so a double-release is caught instead of masked.
func (k *Kernel) Release(h Handle) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.bodies[h]; !ok {
		return k.setLastError(invalidHandle("kernel.Release", h))
	}
	delete(k.bodies, h)
	return nil
}

// Copy returns a new handle naming a deep copy of h's body (§6: "copy
// the body, then transform/mutate the copy" is the recommended usage).
func (k *Kernel) Copy(h Handle) (Handle, error) {
	b, err := k.lookup(h)
	if err != nil {
		return NoHandle, k.setLastError(kerrors.Wrap("kernel.Copy", kerrors.ErrInvalidHandle, err))
	}
	return k.store(b.Clone()), nil
}
