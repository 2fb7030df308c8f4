package kernel

import "github.com/CarlosKeese/NOVA-CAD/kerrors"

// Re-exported taxonomy sentinels, so callers that only ever talk to
// this package don't need a second import for kerrors.Is checks.
var (
	ErrInvalidHandle        = kerrors.ErrInvalidHandle
	ErrInvalidParameter     = kerrors.ErrInvalidParameter
	ErrPreconditionViolated = kerrors.ErrPreconditionViolated
	ErrGeometryError        = kerrors.ErrGeometryError
	ErrTopologyError        = kerrors.ErrTopologyError
	ErrToleranceExhausted   = kerrors.ErrToleranceExhausted
	ErrUnsupportedGeometry  = kerrors.ErrUnsupportedGeometry
	ErrCancelled            = kerrors.ErrCancelled
	ErrOutOfMemory          = kerrors.ErrOutOfMemory
	ErrNotImplemented       = kerrors.ErrNotImplemented
)

// Error is a *kerrors.Error enriched with the entity (if any) the
// failing call named, so a caller inspecting LastError can report
// which face/edge/vertex/handle was at fault without re-parsing Detail.
type Error struct {
	*kerrors.Error
	Entity any
}

func (e *Error) Unwrap() error { return e.Error }

// withEntity re-wraps err (expected to be a *kerrors.Error, typically
// freshly returned by kerrors.Wrap) with the entity that triggered it.
func withEntity(err error, entity any) error {
	if err == nil {
		return nil
	}
	ke, ok := err.(*kerrors.Error)
	if !ok {
		return err
	}
	return &Error{Error: ke, Entity: entity}
}
