package ast

// Clone returns a deep copy of expr sharing no pointers with the input.
// The simplify and factor rewrites do not call Clone: they build new
// nodes around (possibly shared) subtrees of their input and never
// mutate it.
func Clone(expr Expr) Expr {
	if expr == nil {
		return nil
	}
	switch n := expr.(type) {
	case *Number:
		return &Number{Value: n.Value}
	case *Identifier:
		return &Identifier{Name: n.Name, Scope: n.Scope, ID: n.ID, Depth: n.Depth, Context: n.Context}
	case *Binary:
		return &Binary{Op: n.Op, Left: Clone(n.Left), Right: Clone(n.Right)}
	case *Unary:
		return &Unary{Op: n.Op, Operand: Clone(n.Operand)}
	case *FuncCall:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = Clone(a)
		}
		return &FuncCall{Name: n.Name, Args: args, ExpectedArity: n.ExpectedArity}
	case *Fraction:
		return &Fraction{Num: Clone(n.Num), Den: Clone(n.Den)}
	case *Integral:
		return &Integral{Integrand: Clone(n.Integrand), Var: n.Var, Lower: Clone(n.Lower), Upper: Clone(n.Upper)}
	case *Sum:
		return &Sum{Body: Clone(n.Body), Var: n.Var, Lower: Clone(n.Lower), Upper: Clone(n.Upper)}
	case *Product:
		return &Product{Body: Clone(n.Body), Var: n.Var, Lower: Clone(n.Lower), Upper: Clone(n.Upper)}
	default:
		panic("ast: Clone: unhandled node type")
	}
}
