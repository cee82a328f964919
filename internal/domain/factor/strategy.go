package factor

import (
	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// Context carries state threaded through the strategy loop: how deep
// the current call is in the recurse-into-factors tree, and whether the
// caller already knows this node is an irreducible quadratic (negative
// discriminant) that must not be retried every pass.
type Context struct {
	Depth               int
	KnownIrreducibleKeys map[string]bool
}

func newContext() Context {
	return Context{KnownIrreducibleKeys: map[string]bool{}}
}

// Result is a strategy's verdict for one application attempt.
type Result struct {
	Success     bool
	Changed     bool
	AST         ast.Expr
	Steps       []trace.Step
	CanContinue bool // whether the driver should keep iterating after this
}

// Strategy is one factorization pattern. Priority orders
// the registry descending (higher runs first); CanApply is a cheap
// structural pre-check before the more expensive Apply is attempted.
type Strategy interface {
	Name() string
	Priority() int
	CanApply(node ast.Expr, ctx Context) bool
	Apply(node ast.Expr, ctx Context) Result
}
