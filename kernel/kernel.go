// Package kernel is the procedural facade tying gmath, geometry,
// topology, operations, synctech, tessellate, step, stl and nativedump
// into the single external surface an embedding application drives:
// lifecycle, opaque body handles, operation context, and the closed
// error taxonomy every call returns through.
//
// The facade follows builder's single-orchestrator shape
// (BuildGraph wraps every constructor error behind one call) and
// core.Graph's sync.RWMutex-guarded mutable state: a Kernel owns its
// own tolerance context and body registry, so two Kernel instances
// never share state, but all access within one instance is safe for
// concurrent use.
package kernel

import (
	"fmt"
	"sync"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
	"github.com/CarlosKeese/NOVA-CAD/kerrors"
)

// Version is the kernel's semantic version string (§6), exposed the
// way builder/constants.go exposes its own stable constants.
const Version = "0.1.0"

// Kernel is one independent instance of the library: its own tolerance
// context, body registry and last-error slot. Initialize constructs
// one; Shutdown releases everything it owns.
type Kernel struct {
	mu       sync.RWMutex
	tol      *gmath.ToleranceContext
	bodies   map[Handle]*bodyEntry
	nextID   uint64
	lastErr  error
	shutdown bool
}

// Initialize establishes a Kernel with the given tolerance options
// (gmath.WithLinearResolution, gmath.WithAngularResolution, ...),
// analogous to builder.NewBuilder resolving a builderConfig from
// functional options before any graph mutation can happen.
func Initialize(opts ...gmath.ToleranceOption) *Kernel {
	return &Kernel{
		tol:    gmath.NewToleranceContext(opts...),
		bodies: make(map[Handle]*bodyEntry),
	}
}

// Shutdown releases every body handle this Kernel owns. Idempotent:
// calling it again on an already-shut-down Kernel is a no-op, matching
// §6's "shutdown is idempotent."
func (k *Kernel) Shutdown() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bodies = make(map[Handle]*bodyEntry)
	k.shutdown = true
}

// SetTolerance replaces the Kernel's global tolerance context.
func (k *Kernel) SetTolerance(opts ...gmath.ToleranceOption) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.tol = gmath.NewToleranceContext(opts...)
}

// GetTolerance returns the Kernel's current tolerance context.
func (k *Kernel) GetTolerance() *gmath.ToleranceContext {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.tol
}

// LastError returns the error from the most recently failed call this
// Kernel made, for callers that cannot thread rich error types
// cleanly (§6). ClearError resets it.
func (k *Kernel) LastError() error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.lastErr
}

// ClearError resets the last-error slot.
func (k *Kernel) ClearError() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.lastErr = nil
}

func (k *Kernel) setLastError(err error) error {
	if err == nil {
		return nil
	}
	k.mu.Lock()
	k.lastErr = err
	k.mu.Unlock()
	return err
}

func (k *Kernel) checkLive() error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.shutdown {
		return &kerrors.Error{Op: "kernel", Kind: kerrors.ErrInvalidHandle, Detail: "kernel instance was shut down"}
	}
	return nil
}

func invalidHandle(op string, h Handle) error {
	return &kerrors.Error{Op: op, Kind: kerrors.ErrInvalidHandle, Detail: fmt.Sprintf("handle %d is not live", h)}
}
