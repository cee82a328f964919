// Package scope implements the post-parse binder-frame walk: every
// Integral/Sum/Product pushes a binding frame (name, context, depth,
// fresh id); identifiers are resolved to bound or free accordingly,
// with shadowing producing distinct unique ids per depth.
package scope

import (
	"fmt"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
)

type frame struct {
	name    string
	context ast.BindingContext
	depth   int
	id      string
}

// Resolver walks an AST assigning scope/id/depth/context to every
// Identifier, without mutating the input (it clones on the way down,
// consistent with the AST's read-only-between-rewrites ownership rule).
type Resolver struct {
	freeCounter int
	freeIDs     map[string]string
}

// NewResolver returns a fresh Resolver. A Resolver carries no state
// across calls to Resolve other than per-call counters reset at entry,
// so a single Resolver value may be reused.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns a new tree, structurally identical to expr, with every
// Identifier annotated with its scope, id, depth, and binding context.
// Every occurrence of the same free-variable name within one call
// shares one unique id, so that
// name-keyed lookups (evaluate's Values map, the commutative combiner's
// like-term key) stay consistent with scope-resolved identity.
func (r *Resolver) Resolve(expr ast.Expr) ast.Expr {
	r.freeCounter = 0
	r.freeIDs = make(map[string]string)
	return r.walk(expr, nil)
}

func (r *Resolver) walk(n ast.Expr, frames []frame) ast.Expr {
	switch x := n.(type) {
	case nil:
		return nil
	case *ast.Number:
		return &ast.Number{Value: x.Value}
	case *ast.Identifier:
		return r.resolveIdentifier(x, frames)
	case *ast.Binary:
		return &ast.Binary{Op: x.Op, Left: r.walk(x.Left, frames), Right: r.walk(x.Right, frames)}
	case *ast.Unary:
		return &ast.Unary{Op: x.Op, Operand: r.walk(x.Operand, frames)}
	case *ast.FuncCall:
		args := make([]ast.Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = r.walk(a, frames)
		}
		return &ast.FuncCall{Name: x.Name, Args: args, ExpectedArity: x.ExpectedArity}
	case *ast.Fraction:
		return &ast.Fraction{Num: r.walk(x.Num, frames), Den: r.walk(x.Den, frames)}
	case *ast.Integral:
		// Bounds are evaluated in the OUTER scope: the bound variable is
		// not yet in effect while its own limits are resolved.
		lower := r.walk(x.Lower, frames)
		upper := r.walk(x.Upper, frames)
		inner := r.pushFrame(frames, x.Var, ast.ContextIntegral)
		return &ast.Integral{Integrand: r.walk(x.Integrand, inner), Var: x.Var, Lower: lower, Upper: upper}
	case *ast.Sum:
		lower := r.walk(x.Lower, frames)
		upper := r.walk(x.Upper, frames)
		inner := r.pushFrame(frames, x.Var, ast.ContextSum)
		return &ast.Sum{Body: r.walk(x.Body, inner), Var: x.Var, Lower: lower, Upper: upper}
	case *ast.Product:
		lower := r.walk(x.Lower, frames)
		upper := r.walk(x.Upper, frames)
		inner := r.pushFrame(frames, x.Var, ast.ContextProduct)
		return &ast.Product{Body: r.walk(x.Body, inner), Var: x.Var, Lower: lower, Upper: upper}
	default:
		panic(fmt.Sprintf("scope: unhandled node type %T", n))
	}
}

func (r *Resolver) pushFrame(frames []frame, name string, ctx ast.BindingContext) []frame {
	depth := len(frames) + 1
	id := fmt.Sprintf("%s#%d", name, depth)
	next := make([]frame, len(frames), len(frames)+1)
	copy(next, frames)
	return append(next, frame{name: name, context: ctx, depth: depth, id: id})
}

func (r *Resolver) resolveIdentifier(id *ast.Identifier, frames []frame) *ast.Identifier {
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		if f.name == id.Name {
			return &ast.Identifier{Name: id.Name, Scope: ast.ScopeBound, ID: f.id, Depth: f.depth, Context: f.context}
		}
	}
	fid, seen := r.freeIDs[id.Name]
	if !seen {
		r.freeCounter++
		fid = fmt.Sprintf("free:%s#%d", id.Name, r.freeCounter)
		r.freeIDs[id.Name] = fid
	}
	return &ast.Identifier{
		Name:    id.Name,
		Scope:   ast.ScopeFree,
		ID:      fid,
		Depth:   0,
		Context: ast.ContextNone,
	}
}
