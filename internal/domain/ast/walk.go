package ast

import "sort"

// Children returns the immediate child expressions of n, in evaluation
// order, or nil for leaves (Number, Identifier). Every traversal helper
// in this file is built on top of this single exhaustive switch so that
// adding a node kind only requires updating it here.
func Children(n Expr) []Expr {
	switch x := n.(type) {
	case *Number, *Identifier, nil:
		return nil
	case *Binary:
		return []Expr{x.Left, x.Right}
	case *Unary:
		return []Expr{x.Operand}
	case *FuncCall:
		return x.Args
	case *Fraction:
		return []Expr{x.Num, x.Den}
	case *Integral:
		children := []Expr{x.Integrand}
		if x.Lower != nil {
			children = append(children, x.Lower)
		}
		if x.Upper != nil {
			children = append(children, x.Upper)
		}
		return children
	case *Sum:
		return []Expr{x.Body, x.Lower, x.Upper}
	case *Product:
		return []Expr{x.Body, x.Lower, x.Upper}
	default:
		return nil
	}
}

// Walk visits n and every descendant in pre-order, calling visit on
// each non-nil node. If visit returns false, that node's children are
// not visited.
func Walk(n Expr, visit func(Expr) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, visit)
	}
}

// NodeCount is the well-founded complexity measure used by the basic
// simplifier's termination argument and by the commutative combiner's
// ascending-complexity output order.
func NodeCount(n Expr) int {
	count := 0
	Walk(n, func(Expr) bool {
		count++
		return true
	})
	return count
}

// FreeVariables returns the sorted, de-duplicated set of free-identifier
// names occurring anywhere in n (bound identifiers are excluded). Used
// by the variable-inference priority list (InferVariable).
func FreeVariables(n Expr) []string {
	seen := map[string]bool{}
	Walk(n, func(e Expr) bool {
		if id, ok := e.(*Identifier); ok && id.Scope != ScopeBound {
			seen[id.Name] = true
		}
		return true
	})
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InferVariable picks the principal variable by priority order:
// x > y > z > t > u > v > w > first free variable alphabetically.
func InferVariable(n Expr) (string, bool) {
	free := FreeVariables(n)
	if len(free) == 0 {
		return "", false
	}
	present := map[string]bool{}
	for _, v := range free {
		present[v] = true
	}
	for _, preferred := range []string{"x", "y", "z", "t", "u", "v", "w"} {
		if present[preferred] {
			return preferred, true
		}
	}
	return free[0], true
}
