package kernel

import (
	"context"

	"github.com/CarlosKeese/NOVA-CAD/gmath"
)

// Diagnostic is one progress/warning event an operation may emit
// through OperationContext's callback (§9's "diagnostics sink"),
// modeled as an injectable hook the way bfs/dfs expose OnVisit/OnEnqueue.
type Diagnostic struct {
	Op      string
	Message string
}

// OperationContext carries a cooperative-cancellation token, an
// optional diagnostics sink, and an optional per-call tolerance
// override, threaded through the longer-running kernel operations
// (Booleans, fillet chains, tessellation). A nil context is equivalent
// to context.Background with no diagnostics and the Kernel's own
// tolerance.
type OperationContext struct {
	ctx         context.Context
	diagnostics func(Diagnostic)
	tol         *gmath.ToleranceContext
}

// ContextOption configures an OperationContext, following the
// functional-option shape used throughout this codebase
// (gmath.ToleranceOption, tessellate.Option, ...).
type ContextOption func(*OperationContext)

// WithContext attaches a context.Context for cooperative cancellation.
func WithContext(ctx context.Context) ContextOption {
	return func(oc *OperationContext) { oc.ctx = ctx }
}

// WithDiagnostics attaches a progress/warning callback. nil disables it.
func WithDiagnostics(fn func(Diagnostic)) ContextOption {
	return func(oc *OperationContext) { oc.diagnostics = fn }
}

// WithToleranceOverride pins a tolerance context for this operation
// only, overriding the Kernel's own.
func WithToleranceOverride(tol *gmath.ToleranceContext) ContextOption {
	return func(oc *OperationContext) { oc.tol = tol }
}

// NewOperationContext builds an OperationContext from opts.
func NewOperationContext(opts ...ContextOption) *OperationContext {
	oc := &OperationContext{}
	for _, opt := range opts {
		opt(oc)
	}
	return oc
}

func (oc *OperationContext) context() context.Context {
	if oc == nil || oc.ctx == nil {
		return context.Background()
	}
	return oc.ctx
}

func (oc *OperationContext) emit(d Diagnostic) {
	if oc != nil && oc.diagnostics != nil {
		oc.diagnostics(d)
	}
}

func (oc *OperationContext) toleranceOr(fallback *gmath.ToleranceContext) *gmath.ToleranceContext {
	if oc != nil && oc.tol != nil {
		return oc.tol
	}
	return fallback
}
