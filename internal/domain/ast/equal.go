package ast

// Equal reports strict structural equality: same node shapes, same
// operators, same rational values, same identifier names/scope/ids.
// Commutative-reordering-insensitive comparison belongs to the
// simplify package (it canonicalizes before comparing), not here —
// ast stays a dumb data model.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value.Equal(y.Value)
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Name == y.Name && x.Scope == y.Scope && x.ID == y.ID &&
			x.Depth == y.Depth && x.Context == y.Context
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *FuncCall:
		y, ok := b.(*FuncCall)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Fraction:
		y, ok := b.(*Fraction)
		return ok && Equal(x.Num, y.Num) && Equal(x.Den, y.Den)
	case *Integral:
		y, ok := b.(*Integral)
		return ok && x.Var == y.Var && Equal(x.Integrand, y.Integrand) &&
			Equal(x.Lower, y.Lower) && Equal(x.Upper, y.Upper)
	case *Sum:
		y, ok := b.(*Sum)
		return ok && x.Var == y.Var && Equal(x.Body, y.Body) &&
			Equal(x.Lower, y.Lower) && Equal(x.Upper, y.Upper)
	case *Product:
		y, ok := b.(*Product)
		return ok && x.Var == y.Var && Equal(x.Body, y.Body) &&
			Equal(x.Lower, y.Lower) && Equal(x.Upper, y.Upper)
	default:
		return false
	}
}
