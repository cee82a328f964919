package simplify

import (
	"sort"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

// Combine canonicalizes multiplicative terms and folds like terms
// within additive expressions, recursing into every subexpression so
// nested sums (inside a FuncCall argument, a Fraction, a bound, ...)
// are combined too.
func Combine(expr ast.Expr) (ast.Expr, bool) {
	switch x := expr.(type) {
	case nil, *ast.Number, *ast.Identifier:
		return expr, false
	case *ast.Binary:
		if x.Op == ast.OpAdd || x.Op == ast.OpSub {
			return combineAdditive(x)
		}
		left, lc := Combine(x.Left)
		right, rc := Combine(x.Right)
		return &ast.Binary{Op: x.Op, Left: left, Right: right}, lc || rc
	case *ast.Unary:
		operand, c := Combine(x.Operand)
		return &ast.Unary{Op: x.Op, Operand: operand}, c
	case *ast.Fraction:
		num, nc := Combine(x.Num)
		den, dc := Combine(x.Den)
		return &ast.Fraction{Num: num, Den: den}, nc || dc
	case *ast.FuncCall:
		args := make([]ast.Expr, len(x.Args))
		changed := false
		for i, a := range x.Args {
			next, c := Combine(a)
			args[i] = next
			changed = changed || c
		}
		return &ast.FuncCall{Name: x.Name, Args: args, ExpectedArity: x.ExpectedArity}, changed
	case *ast.Integral:
		body, c := Combine(x.Integrand)
		return &ast.Integral{Integrand: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	case *ast.Sum:
		body, c := Combine(x.Body)
		return &ast.Sum{Body: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	case *ast.Product:
		body, c := Combine(x.Body)
		return &ast.Product{Body: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	default:
		return expr, false
	}
}

// signedAddend pairs an addend with its sign (-1 for a Sub right side or
// a Unary-minus operand) ahead of term analysis.
type signedAddend struct {
	expr ast.Expr
	sign int
}

func flattenAdd(e ast.Expr, sign int) []signedAddend {
	if bin, ok := e.(*ast.Binary); ok {
		switch bin.Op {
		case ast.OpAdd:
			return append(flattenAdd(bin.Left, sign), flattenAdd(bin.Right, sign)...)
		case ast.OpSub:
			return append(flattenAdd(bin.Left, sign), flattenAdd(bin.Right, -sign)...)
		}
	}
	if un, ok := e.(*ast.Unary); ok && un.Op == ast.UnaryMinus {
		return flattenAdd(un.Operand, -sign)
	}
	return []signedAddend{{expr: e, sign: sign}}
}

func combineAdditive(root *ast.Binary) (ast.Expr, bool) {
	addends := flattenAdd(root, 1)

	type bucket struct {
		t     term
		order int
	}
	buckets := map[string]*bucket{}
	order := []string{}

	for i, a := range addends {
		reduced, _ := Combine(a.expr)
		t := analyzeTerm(reduced)
		if a.sign < 0 {
			t.coeff = t.coeff.Neg()
		}
		k := t.key()
		if existing, ok := buckets[k]; ok {
			existing.t.coeff = existing.t.coeff.Add(t.coeff)
		} else {
			buckets[k] = &bucket{t: t, order: i}
			order = append(order, k)
		}
	}

	changed := len(addends) > len(order)

	type output struct {
		t    term
		rank int
		tie  string
	}
	outs := make([]output, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		if b.t.coeff.IsZero() {
			changed = true
			continue
		}
		rank, tie := b.t.complexity()
		outs = append(outs, output{t: b.t, rank: rank, tie: tie})
	}
	sort.SliceStable(outs, func(i, j int) bool {
		if outs[i].rank != outs[j].rank {
			return outs[i].rank < outs[j].rank
		}
		return outs[i].tie < outs[j].tie
	})

	if len(outs) == 0 {
		return &ast.Number{Value: rational.Zero}, true
	}

	var result ast.Expr = outs[0].t.toExpr()
	for _, o := range outs[1:] {
		result = &ast.Binary{Op: ast.OpAdd, Left: result, Right: o.t.toExpr()}
	}
	return result, changed
}
