// Package parser builds an AST from a token stream via operator-precedence
// recursive descent, in the familiar Pratt-style prefix/infix registration
// shape: relational/additive/multiplicative/unary/exponent/call
// precedence, \frac and a/b both yielding Fraction, \sqrt/\sqrt[n]/\int/
// \sum/\prod, reserved-name and arity validation.
package parser

import (
	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	domerr "github.com/Stasshe/Latexium-sub002/internal/domain/errors"
	"github.com/Stasshe/Latexium-sub002/internal/domain/lexer"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

// precedence levels, low to high.
const (
	_ int = iota
	lowest
	relational // =, <, >, <=, >=
	additive   // +, -
	multiplicative
	unaryPrec
	exponent
	call
)

var binPrecedence = map[lexer.TokenType]int{
	lexer.EQUALS:       relational,
	lexer.LESS:         relational,
	lexer.GREATER:      relational,
	lexer.LESSEQ:       relational,
	lexer.GREATEREQ:    relational,
	lexer.PLUS:         additive,
	lexer.MINUS:        additive,
	lexer.ASTERISK:     multiplicative,
	lexer.SLASH:        multiplicative,
	lexer.IMPLICIT_MUL: multiplicative,
	lexer.CARET:        exponent,
	lexer.EXCLAMATION:  call,
}

var binOpFor = map[lexer.TokenType]ast.BinOp{
	lexer.EQUALS:    ast.OpEq,
	lexer.LESS:      ast.OpLt,
	lexer.GREATER:   ast.OpGt,
	lexer.LESSEQ:    ast.OpLe,
	lexer.GREATEREQ: ast.OpGe,
	lexer.PLUS:      ast.OpAdd,
	lexer.MINUS:     ast.OpSub,
	lexer.ASTERISK:  ast.OpMul,
	lexer.SLASH:     ast.OpDiv,
}

// Parser is a stateless façade: Parse constructs one-shot parsing state
// per call, keeping the reusable entry point separate from the
// per-invocation parsing state.
type Parser struct{}

// New returns a reusable, stateless Parser.
func New() *Parser { return &Parser{} }

// Parse tokenizes and parses a full LaTeX math expression, returning a
// parse-time error (Lexical, Syntactic, or SemanticParse) on failure.
// The caller is responsible for stripping $$...$$ delimiters.
func (p *Parser) Parse(input string) (ast.Expr, error) {
	st := newState(lexer.New(input))
	expr, err := st.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if st.cur.Type != lexer.EOF {
		return nil, st.errorf(domerr.Syntactic, "unexpected token %s (%q) after expression", st.cur.Type, st.cur.Literal)
	}
	return expr, nil
}

type state struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

func newState(l *lexer.Lexer) *state {
	s := &state{l: l}
	s.next()
	s.next()
	return s
}

func (s *state) next() {
	s.cur = s.peek
	s.peek = s.l.NextToken()
}

func (s *state) errorf(kind domerr.Kind, format string, args ...interface{}) error {
	return domerr.At(kind, domerr.Pos(s.cur.Pos), format, args...)
}

func (s *state) expect(t lexer.TokenType) error {
	if s.cur.Type != t {
		return s.errorf(domerr.Syntactic, "expected %s, got %s (%q)", t, s.cur.Type, s.cur.Literal)
	}
	s.next()
	return nil
}

func (s *state) curPrecedence() int {
	if s.cur.Type == lexer.COMMAND && s.cur.Literal == "cdot" {
		return multiplicative
	}
	if p, ok := binPrecedence[s.cur.Type]; ok {
		return p
	}
	return lowest
}

// parseExpression implements precedence-climbing: parse a prefix atom,
// then repeatedly fold in infix/postfix operators whose precedence
// exceeds the caller's floor.
func (s *state) parseExpression(precedenceFloor int) (ast.Expr, error) {
	left, err := s.parsePrefix()
	if err != nil {
		return nil, err
	}
	for s.cur.Type != lexer.EOF && precedenceFloor < s.curPrecedence() {
		switch s.cur.Type {
		case lexer.EXCLAMATION:
			s.next() // consume '!'
			left = &ast.FuncCall{Name: "factorial", Args: []ast.Expr{left}, ExpectedArity: 1}
		case lexer.CARET:
			s.next()
			right, err := s.parseExpression(exponent - 1) // right-associative
			if err != nil {
				return nil, err
			}
			left = &ast.Binary{Op: ast.OpPow, Left: left, Right: right}
		case lexer.IMPLICIT_MUL:
			s.next() // consume marker, leaves cur at the next atom's first token
			if s.cur.Type == lexer.COMMAND && s.cur.Literal == "cdot" {
				s.next() // "2 \cdot x" lexes a marker ahead of \cdot
			}
			right, err := s.parseExpression(multiplicative)
			if err != nil {
				return nil, err
			}
			left = &ast.Binary{Op: ast.OpMul, Left: left, Right: right}
		case lexer.COMMAND:
			if s.cur.Literal != "cdot" {
				return left, nil
			}
			s.next()
			right, err := s.parseExpression(multiplicative)
			if err != nil {
				return nil, err
			}
			left = &ast.Binary{Op: ast.OpMul, Left: left, Right: right}
		default:
			op, ok := binOpFor[s.cur.Type]
			if !ok {
				return left, nil
			}
			prec := binPrecedence[s.cur.Type]
			s.next()
			right, err := s.parseExpression(prec)
			if err != nil {
				return nil, err
			}
			if op == ast.OpDiv {
				left = &ast.Fraction{Num: left, Den: right}
			} else {
				left = &ast.Binary{Op: op, Left: left, Right: right}
			}
		}
	}
	return left, nil
}

func (s *state) parsePrefix() (ast.Expr, error) {
	switch s.cur.Type {
	case lexer.NUMBER:
		return s.parseNumber()
	case lexer.IDENT:
		return s.parseIdentifier()
	case lexer.MINUS:
		s.next()
		operand, err := s.parseExpression(unaryPrec)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.UnaryMinus, Operand: operand}, nil
	case lexer.PLUS:
		s.next()
		operand, err := s.parseExpression(unaryPrec)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.UnaryPlus, Operand: operand}, nil
	case lexer.LPAREN:
		s.next()
		inner, err := s.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := s.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.COMMAND:
		return s.parseCommand()
	case lexer.BEGIN:
		return s.parsePiecewiseLike()
	default:
		return nil, s.errorf(domerr.Syntactic, "unexpected token %s (%q)", s.cur.Type, s.cur.Literal)
	}
}

func (s *state) parseNumber() (ast.Expr, error) {
	lit := s.cur.Literal
	r, ok := rational.FromString(lit)
	if !ok {
		return nil, s.errorf(domerr.Syntactic, "invalid numeric literal %q", lit)
	}
	s.next()
	return &ast.Number{Value: r}, nil
}

func (s *state) parseIdentifier() (ast.Expr, error) {
	name := s.cur.Literal
	if ast.IsReservedName(name) {
		return nil, s.errorf(domerr.SemanticParse, "%q is a reserved name and cannot be used as a variable", name)
	}
	s.next()
	return &ast.Identifier{Name: name, Scope: ast.ScopeUnresolved}, nil
}

// parsePiecewiseLike handles a \begin{...} token: piecewise
// (\begin{cases}...\end{cases}) input is not parsed and is rejected with
// a Syntactic error.
func (s *state) parsePiecewiseLike() (ast.Expr, error) {
	return nil, s.errorf(domerr.Syntactic, "piecewise (\\begin{cases}) expressions are not supported by the core engine")
}
