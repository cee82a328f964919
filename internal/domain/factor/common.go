package factor

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// CommonFactorStrategy implements the "common factor" pattern:
// extract terms from an additive expression, compute the gcd of integer
// coefficients and the min-power intersection of variable multisets, and
// factor a non-trivial common factor out.
type CommonFactorStrategy struct{}

func (CommonFactorStrategy) Name() string { return "common-factor" }
func (CommonFactorStrategy) Priority() int { return 100 }

func (CommonFactorStrategy) CanApply(node ast.Expr, _ Context) bool {
	return isAdditiveRoot(node)
}

func isAdditiveRoot(e ast.Expr) bool {
	bin, ok := e.(*ast.Binary)
	return ok && (bin.Op == ast.OpAdd || bin.Op == ast.OpSub)
}

// monoTerm is a single additive summand decomposed into a signed integer
// coefficient, a variable-name-to-power multiset, and any leftover
// factors that did not decompose (kept verbatim and multiplied back in).
type monoTerm struct {
	coeff  *big.Int
	powers map[string]int
	extras []ast.Expr
}

type signedExpr struct {
	expr ast.Expr
	sign int
}

func flattenSignedAdd(e ast.Expr, sign int) []signedExpr {
	if bin, ok := e.(*ast.Binary); ok {
		if bin.Op == ast.OpAdd {
			return append(flattenSignedAdd(bin.Left, sign), flattenSignedAdd(bin.Right, sign)...)
		}
		if bin.Op == ast.OpSub {
			return append(flattenSignedAdd(bin.Left, sign), flattenSignedAdd(bin.Right, -sign)...)
		}
	}
	if un, ok := e.(*ast.Unary); ok && un.Op == ast.UnaryMinus {
		return flattenSignedAdd(un.Operand, -sign)
	}
	return []signedExpr{{expr: e, sign: sign}}
}

// analyzeMono folds sign into the returned coefficient directly, so
// downstream code deals with one signed big.Int rather than a separate
// sign flag.
func analyzeMono(e ast.Expr, sign int) monoTerm {
	t := monoTerm{coeff: big.NewInt(int64(sign)), powers: map[string]int{}}
	for _, f := range flattenMulFactor(e) {
		switch v := f.(type) {
		case *ast.Number:
			if v.Value.IsInteger() {
				t.coeff.Mul(t.coeff, v.Value.Num())
			} else {
				t.extras = append(t.extras, f)
			}
		case *ast.Identifier:
			t.powers[v.Name]++
		case *ast.Binary:
			if v.Op == ast.OpPow {
				if base, ok := v.Left.(*ast.Identifier); ok {
					if exp, ok := v.Right.(*ast.Number); ok && exp.Value.IsInteger() && exp.Value.Sign() >= 0 {
						t.powers[base.Name] += int(exp.Value.Num().Int64())
						continue
					}
				}
			}
			t.extras = append(t.extras, f)
		case *ast.Unary:
			if v.Op == ast.UnaryMinus {
				inner := analyzeMono(v.Operand, 1)
				t.coeff.Mul(t.coeff, inner.coeff)
				for name, p := range inner.powers {
					t.powers[name] += p
				}
				t.extras = append(t.extras, inner.extras...)
				continue
			}
			t.extras = append(t.extras, f)
		default:
			t.extras = append(t.extras, f)
		}
	}
	return t
}

func (CommonFactorStrategy) Apply(node ast.Expr, _ Context) Result {
	signed := flattenSignedAdd(node, 1)
	if len(signed) < 2 {
		return Result{}
	}
	terms := make([]monoTerm, len(signed))
	for i, s := range signed {
		terms[i] = analyzeMono(s.expr, s.sign)
	}

	gcdCoeff := new(big.Int).Abs(terms[0].coeff)
	for _, t := range terms[1:] {
		gcdCoeff = new(big.Int).GCD(nil, nil, gcdCoeff, new(big.Int).Abs(t.coeff))
	}
	if gcdCoeff.Sign() == 0 {
		gcdCoeff = big.NewInt(1)
	}

	minPowers := map[string]int{}
	for name, p := range terms[0].powers {
		minPowers[name] = p
	}
	for _, t := range terms[1:] {
		for name, p := range minPowers {
			tp, ok := t.powers[name]
			if !ok {
				delete(minPowers, name)
				continue
			}
			if tp < p {
				minPowers[name] = tp
			}
		}
	}

	hasNumericFactor := gcdCoeff.Cmp(big.NewInt(1)) > 0
	hasVarFactor := len(minPowers) > 0
	if !hasNumericFactor && !hasVarFactor {
		return Result{}
	}

	commonFactorExpr := buildMonomial(gcdCoeff, minPowers)

	var remainder ast.Expr
	for i, t := range terms {
		remCoeff := new(big.Int).Quo(t.coeff, gcdCoeff)
		remPowers := map[string]int{}
		for name, p := range t.powers {
			if left := p - minPowers[name]; left > 0 {
				remPowers[name] = left
			}
		}
		termExpr := buildMonomial(new(big.Int).Abs(remCoeff), remPowers)
		for _, extra := range t.extras {
			termExpr = &ast.Binary{Op: ast.OpMul, Left: termExpr, Right: extra}
		}
		sign := remCoeff.Sign()
		if i == 0 {
			if sign < 0 {
				remainder = &ast.Unary{Op: ast.UnaryMinus, Operand: termExpr}
			} else {
				remainder = termExpr
			}
			continue
		}
		if sign < 0 {
			remainder = &ast.Binary{Op: ast.OpSub, Left: remainder, Right: termExpr}
		} else {
			remainder = &ast.Binary{Op: ast.OpAdd, Left: remainder, Right: termExpr}
		}
	}

	product := ast.Expr(&ast.Binary{Op: ast.OpMul, Left: commonFactorExpr, Right: remainder})
	return Result{
		Success:     true,
		Changed:     true,
		AST:         product,
		Steps:       []trace.Step{trace.Text("extracted common factor " + ast.Render(commonFactorExpr))},
		CanContinue: true,
	}
}

func buildMonomial(coeff *big.Int, powers map[string]int) ast.Expr {
	names := sortedKeys(powers)
	var expr ast.Expr
	if coeff.Cmp(big.NewInt(1)) != 0 || len(names) == 0 {
		expr = intNodeBig(coeff)
	}
	for _, name := range names {
		p := powers[name]
		var factor ast.Expr = &ast.Identifier{Name: name}
		if p != 1 {
			factor = &ast.Binary{Op: ast.OpPow, Left: factor, Right: intNode(int64(p))}
		}
		if expr == nil {
			expr = factor
		} else {
			expr = &ast.Binary{Op: ast.OpMul, Left: expr, Right: factor}
		}
	}
	return expr
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
