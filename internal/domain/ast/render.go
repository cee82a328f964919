package ast

import (
	"fmt"
	"math/big"
	"strings"
)

// precedence mirrors the parser's operator-precedence table so that
// rendering always emits the minimal parenthesization needed for a
// parse-render round trip.
func precedence(op BinOp) int {
	switch op {
	case OpEq, OpLt, OpGt, OpLe, OpGe:
		return 1
	case OpAdd, OpSub:
		return 2
	case OpMul, OpDiv:
		return 3
	case OpPow:
		return 4
	default:
		return 0
	}
}

const (
	precUnary = 5
	precAtom  = 6
)

// Render produces the canonical LaTeX string for expr: \frac{…}{…} for
// fractions, backslash-prefixed parenthesized calls for named functions,
// always-braced exponents, \int_{a}^{b} f \, dx for integrals (bounds
// omitted when absent), and \pi / e for the recognized constants
// (never Unicode).
func Render(expr Expr) string {
	return render(expr, 0)
}

func render(n Expr, parentPrec int) string {
	switch x := n.(type) {
	case *Number:
		return renderNumber(x)
	case *Identifier:
		return renderIdentifier(x)
	case *Unary:
		inner := render(x.Operand, precUnary)
		s := fmt.Sprintf("%s%s", string(x.Op), inner)
		if precUnary < parentPrec {
			return "(" + s + ")"
		}
		return s
	case *Binary:
		return renderBinary(x, parentPrec)
	case *FuncCall:
		return renderFuncCall(x)
	case *Fraction:
		return fmt.Sprintf("\\frac{%s}{%s}", render(x.Num, 0), render(x.Den, 0))
	case *Integral:
		return renderIntegral(x)
	case *Sum:
		return renderSumProduct("sum", x.Var, x.Lower, x.Upper, x.Body)
	case *Product:
		return renderSumProduct("prod", x.Var, x.Lower, x.Upper, x.Body)
	default:
		return fmt.Sprintf("<?unrendered %T?>", n)
	}
}

func renderNumber(n *Number) string {
	if n.Value.IsInteger() {
		return n.Value.Num().String()
	}
	// Non-integer literals that survived to render time are displayed as
	// a LaTeX fraction so output always round-trips through \frac parsing.
	sign := ""
	num := n.Value.Num()
	if num.Sign() < 0 {
		sign = "-"
		num = new(big.Int).Neg(num)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, num.String(), n.Value.Denom().String())
}

func renderIdentifier(id *Identifier) string {
	switch id.Name {
	case "pi":
		return "\\pi"
	case "e":
		return "e"
	case "i":
		return "i"
	default:
		return id.Name
	}
}

func renderBinary(b *Binary, parentPrec int) string {
	prec := precedence(b.Op)
	leftPrec := prec
	rightPrec := prec + 1 // left-assoc: right side needs strictly higher precedence to omit parens
	if b.Op == OpPow {
		// right-associative: left side needs strictly higher precedence
		leftPrec = prec + 1
		rightPrec = prec
	}
	left := render(b.Left, leftPrec)
	right := render(b.Right, rightPrec)

	var s string
	switch b.Op {
	case OpDiv:
		s = fmt.Sprintf("\\frac{%s}{%s}", render(b.Left, 0), render(b.Right, 0))
		return s // \frac is always fully grouped; never needs outer parens
	case OpPow:
		s = fmt.Sprintf("%s^{%s}", left, right)
	case OpMul:
		s = fmt.Sprintf("%s %s", left, right)
	default:
		s = fmt.Sprintf("%s %s %s", left, string(b.Op), right)
	}
	if prec < parentPrec {
		return "(" + s + ")"
	}
	return s
}

func renderFuncCall(f *FuncCall) string {
	if f.Name == "frac" && len(f.Args) == 2 {
		return fmt.Sprintf("\\frac{%s}{%s}", render(f.Args[0], 0), render(f.Args[1], 0))
	}
	if f.Name == "sqrt" {
		if len(f.Args) == 2 {
			return fmt.Sprintf("\\sqrt[%s]{%s}", render(f.Args[0], 0), render(f.Args[1], 0))
		}
		return fmt.Sprintf("\\sqrt{%s}", render(f.Args[0], 0))
	}
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = render(a, 0)
	}
	return fmt.Sprintf("\\%s(%s)", f.Name, strings.Join(args, ", "))
}

func renderIntegral(in *Integral) string {
	var b strings.Builder
	b.WriteString("\\int")
	if in.Lower != nil {
		fmt.Fprintf(&b, "_{%s}", render(in.Lower, 0))
	}
	if in.Upper != nil {
		fmt.Fprintf(&b, "^{%s}", render(in.Upper, 0))
	}
	fmt.Fprintf(&b, " %s \\, d%s", render(in.Integrand, 2), in.Var)
	return b.String()
}

func renderSumProduct(cmd, v string, lower, upper, body Expr) string {
	return fmt.Sprintf("\\%s_{%s=%s}^{%s} %s", cmd, v, render(lower, 0), render(upper, 0), render(body, 2))
}
