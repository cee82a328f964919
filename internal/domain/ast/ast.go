// Package ast defines the tagged-variant abstract syntax tree for parsed
// LaTeX math expressions. Every node kind is sealed behind the
// unexported node() method, forcing every traversal in this module
// (clone, equal, render, walk, simplify, factor) to be extended in
// lockstep — no open polymorphism.
//
// The node kinds cover a rational Number (not float64), a scoped
// Identifier, Fraction, Integral/Sum/Product with bound variables, and
// relational operators alongside the usual arithmetic ones.
package ast

import "github.com/Stasshe/Latexium-sub002/internal/domain/rational"

// Node is the marker interface every AST node implements.
type Node interface {
	node()
}

// Expr is any AST node that denotes a value.
type Expr interface {
	Node
	expr()
}

// BinOp enumerates the binary operators in the data model.
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpPow BinOp = "^"
	OpEq  BinOp = "="
	OpLt  BinOp = "<"
	OpGt  BinOp = ">"
	OpLe  BinOp = "<="
	OpGe  BinOp = ">="
)

// UnaryOp enumerates the unary operators.
type UnaryOp string

const (
	UnaryPlus  UnaryOp = "+"
	UnaryMinus UnaryOp = "-"
)

// IdentScope classifies an Identifier as free, bound, or not yet resolved.
type IdentScope int

const (
	ScopeUnresolved IdentScope = iota
	ScopeFree
	ScopeBound
)

func (s IdentScope) String() string {
	switch s {
	case ScopeFree:
		return "free"
	case ScopeBound:
		return "bound"
	default:
		return "unresolved"
	}
}

// BindingContext names the kind of binder that introduced a bound identifier.
type BindingContext int

const (
	ContextNone BindingContext = iota
	ContextIntegral
	ContextSum
	ContextProduct
)

func (c BindingContext) String() string {
	switch c {
	case ContextIntegral:
		return "integral"
	case ContextSum:
		return "sum"
	case ContextProduct:
		return "product"
	default:
		return "none"
	}
}

// Number is an exact rational literal.
type Number struct {
	Value rational.Rational
}

func (*Number) node() {}
func (*Number) expr() {}

// Identifier is a named variable, annotated by the scope resolver.
type Identifier struct {
	Name    string
	Scope   IdentScope
	ID      string
	Depth   int
	Context BindingContext
}

func (*Identifier) node() {}
func (*Identifier) expr() {}

// Binary is a two-operand operator node.
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

func (*Binary) node() {}
func (*Binary) expr() {}

// Unary is a one-operand sign node.
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

func (*Unary) node() {}
func (*Unary) expr() {}

// FuncCall is a named function application, e.g. \sin(x), \sqrt{x}.
type FuncCall struct {
	Name          string
	Args          []Expr
	ExpectedArity int // -1 when variadic/unchecked
}

func (*FuncCall) node() {}
func (*FuncCall) expr() {}

// Fraction is \frac{Num}{Den}, preserved structurally distinct from a
// Binary division node for display and pattern matching.
type Fraction struct {
	Num Expr
	Den Expr
}

func (*Fraction) node() {}
func (*Fraction) expr() {}

// Integral represents \int (optionally \int_a^b) f dx.
type Integral struct {
	Integrand Expr
	Var       string
	Lower     Expr // nil when indefinite
	Upper     Expr // nil when indefinite
}

func (*Integral) node() {}
func (*Integral) expr() {}

// Sum represents \sum_{v=Lower}^{Upper} Body.
type Sum struct {
	Body  Expr
	Var   string
	Lower Expr
	Upper Expr
}

func (*Sum) node() {}
func (*Sum) expr() {}

// Product represents \prod_{v=Lower}^{Upper} Body.
type Product struct {
	Body  Expr
	Var   string
	Lower Expr
	Upper Expr
}

func (*Product) node() {}
func (*Product) expr() {}

// ReservedConstants names identifiers that are never user variables but
// recognized specially during rendering/evaluation.
var ReservedConstants = map[string]bool{
	"e": true, "pi": true, "i": true,
}

// ReservedFunctions names function call names that are always recognized,
// never user variables.
var ReservedFunctions = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"log": true, "ln": true, "exp": true, "sqrt": true, "abs": true,
}

// ReservedSymbols names tokens that can never be introduced as user identifiers.
var ReservedSymbols = map[string]bool{
	"infty": true, "infinity": true, "emptyset": true,
}

// IsReservedName reports whether name collides with any reserved table.
func IsReservedName(name string) bool {
	return ReservedConstants[name] || ReservedFunctions[name] || ReservedSymbols[name]
}

// FunctionArity maps a recognized function/command name to its required
// argument count, or -1 for variable/no fixed arity (e.g. \sqrt with an
// optional root index).
var FunctionArity = map[string]int{
	"sin": 1, "cos": 1, "tan": 1,
	"asin": 1, "acos": 1, "atan": 1,
	"sinh": 1, "cosh": 1, "tanh": 1,
	"log": 1, "ln": 1, "exp": 1, "abs": 1,
	"sqrt": -1, // 1 or 2 (root index) args
	"frac": 2,
	"cbrt": 1,
	"root": 2,
}
