package parser

import (
	"fmt"
	"strings"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	domerr "github.com/Stasshe/Latexium-sub002/internal/domain/errors"
	"github.com/Stasshe/Latexium-sub002/internal/domain/lexer"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

// parseCommand dispatches a \command token to its specific grammar:
// \frac, \sqrt/\sqrt[n], \int, \sum/\prod, \cdot (infix, handled by the
// caller's loop, never reached here), Greek-letter atoms, and the
// generic named-function commands (\sin, \cos, ..., \log, \ln, \exp).
func (s *state) parseCommand() (ast.Expr, error) {
	name := s.cur.Literal
	switch name {
	case "frac":
		return s.parseFrac()
	case "sqrt":
		return s.parseSqrt()
	case "cbrt":
		return s.parseUnaryFunc("cbrt")
	case "int":
		return s.parseIntegral()
	case "sum":
		return s.parseSumProduct(false)
	case "prod":
		return s.parseSumProduct(true)
	case "pi", "alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
		"iota", "kappa", "lambda", "mu", "nu", "xi", "omicron", "rho", "sigma", "tau",
		"upsilon", "phi", "chi", "psi", "omega",
		"Gamma", "Delta", "Theta", "Lambda", "Xi", "Sigma", "Upsilon", "Phi", "Psi", "Omega", "Pi":
		s.next()
		return &ast.Identifier{Name: name, Scope: ast.ScopeFree}, nil
	case "infty", "infinity", "emptyset":
		return nil, s.errorf(domerr.SemanticParse, "%q cannot appear as a value in this engine", name)
	default:
		if arity, ok := ast.FunctionArity[name]; ok && arity == 1 {
			return s.parseUnaryFunc(name)
		}
		return nil, s.errorf(domerr.SemanticParse, "unknown command \\%s", name)
	}
}

// parseUnaryFunc parses a single-argument function command's argument,
// accepting either a braced group (\sin{x}) or a parenthesized one
// (\sin(x)), matching how renderFuncCall prints named function calls
// so re-parsing rendered output round-trips.
func (s *state) parseUnaryFunc(name string) (ast.Expr, error) {
	s.next() // consume command
	arg, err := s.parseUnaryFuncArg()
	if err != nil {
		return nil, err
	}
	return &ast.FuncCall{Name: name, Args: []ast.Expr{arg}, ExpectedArity: 1}, nil
}

func (s *state) parseUnaryFuncArg() (ast.Expr, error) {
	if s.cur.Type == lexer.LPAREN {
		s.next()
		if s.cur.Type == lexer.RPAREN {
			return nil, s.errorf(domerr.Syntactic, "argument expression cannot be empty inside ()")
		}
		inner, err := s.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := s.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return s.parseBraceGroup()
}

// parseBraceGroup parses a mandatory `{ expr }` argument.
func (s *state) parseBraceGroup() (ast.Expr, error) {
	if err := s.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	if s.cur.Type == lexer.RBRACE {
		return nil, s.errorf(domerr.Syntactic, "argument expression cannot be empty inside {}")
	}
	inner, err := s.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := s.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return inner, nil
}

// parseBracketGroup parses an optional `[ expr ]` argument.
func (s *state) parseBracketGroup() (ast.Expr, bool, error) {
	if s.cur.Type != lexer.LBRACKET {
		return nil, false, nil
	}
	s.next()
	inner, err := s.parseExpression(lowest)
	if err != nil {
		return nil, false, err
	}
	if err := s.expect(lexer.RBRACKET); err != nil {
		return nil, false, err
	}
	return inner, true, nil
}

func (s *state) parseFrac() (ast.Expr, error) {
	s.next() // consume 'frac'
	num, err := s.parseBraceGroup()
	if err != nil {
		return nil, fmt.Errorf("\\frac numerator: %w", err)
	}
	den, err := s.parseBraceGroup()
	if err != nil {
		return nil, fmt.Errorf("\\frac denominator: %w", err)
	}
	return &ast.Fraction{Num: num, Den: den}, nil
}

func (s *state) parseSqrt() (ast.Expr, error) {
	s.next() // consume 'sqrt'
	index, hasIndex, err := s.parseBracketGroup()
	if err != nil {
		return nil, err
	}
	radicand, err := s.parseBraceGroup()
	if err != nil {
		return nil, err
	}
	if hasIndex {
		return &ast.FuncCall{Name: "sqrt", Args: []ast.Expr{index, radicand}, ExpectedArity: 2}, nil
	}
	return &ast.FuncCall{Name: "sqrt", Args: []ast.Expr{radicand}, ExpectedArity: 1}, nil
}

func (s *state) parseIntegral() (ast.Expr, error) {
	s.next() // consume 'int'

	var lower, upper ast.Expr
	if s.cur.Type == lexer.UNDERSCORE {
		s.next()
		var err error
		lower, err = s.parseBraceGroup()
		if err != nil {
			return nil, fmt.Errorf("\\int lower bound: %w", err)
		}
		if err := s.expect(lexer.CARET); err != nil {
			return nil, fmt.Errorf("\\int expected '^' for upper bound: %w", err)
		}
		upper, err = s.parseBraceGroup()
		if err != nil {
			return nil, fmt.Errorf("\\int upper bound: %w", err)
		}
		if s.cur.Type == lexer.IMPLICIT_MUL {
			s.next() // the lexer marks "}" followed by the integrand as a product
		}
	}

	body, err := s.parseExpression(lowest)
	if err != nil {
		return nil, err
	}

	integrand, diffVar, ok := peelDifferential(body)
	if !ok {
		return nil, s.errorf(domerr.Syntactic, "\\int requires a differential (e.g. dx)")
	}

	return &ast.Integral{Integrand: integrand, Var: diffVar, Lower: lower, Upper: upper}, nil
}

func (s *state) parseSumProduct(isProduct bool) (ast.Expr, error) {
	cmdName := "sum"
	if isProduct {
		cmdName = "prod"
	}
	s.next() // consume 'sum'/'prod'

	if err := s.expect(lexer.UNDERSCORE); err != nil {
		return nil, fmt.Errorf("\\%s expected '_' for lower bound: %w", cmdName, err)
	}
	if err := s.expect(lexer.LBRACE); err != nil {
		return nil, fmt.Errorf("\\%s expected '{' after '_': %w", cmdName, err)
	}
	if s.cur.Type != lexer.IDENT {
		return nil, s.errorf(domerr.Syntactic, "expected identifier for \\%s bound variable", cmdName)
	}
	varName := s.cur.Literal
	s.next()
	if err := s.expect(lexer.EQUALS); err != nil {
		return nil, fmt.Errorf("\\%s expected '=' after bound variable: %w", cmdName, err)
	}
	lower, err := s.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := s.expect(lexer.RBRACE); err != nil {
		return nil, fmt.Errorf("\\%s expected '}' after lower bound: %w", cmdName, err)
	}
	if err := s.expect(lexer.CARET); err != nil {
		return nil, fmt.Errorf("\\%s expected '^' for upper bound: %w", cmdName, err)
	}
	upper, err := s.parseBraceGroup()
	if err != nil {
		return nil, fmt.Errorf("\\%s upper bound: %w", cmdName, err)
	}
	if s.cur.Type == lexer.IMPLICIT_MUL {
		s.next() // the lexer marks "}" followed by the body as a product
	}
	body, err := s.parseExpression(lowest)
	if err != nil {
		return nil, err
	}

	if isProduct {
		return &ast.Product{Body: body, Var: varName, Lower: lower, Upper: upper}, nil
	}
	return &ast.Sum{Body: body, Var: varName, Lower: lower, Upper: upper}, nil
}

// peelDifferential splices a trailing "d"+variable factor (produced by
// implicit multiplication, e.g. "f(x) dx") off the rightmost spine of a
// parsed expression, returning the remaining integrand and the bound
// variable name. Recurses down the right side of +/- /* so that
// "x + 1 dx" (which precedence makes Add(x, Mul(1, dx))) still yields
// integrand "x + 1" and var "x".
func peelDifferential(e ast.Expr) (ast.Expr, string, bool) {
	if id, ok := e.(*ast.Identifier); ok {
		if v, ok := differentialVar(id.Name); ok {
			return &ast.Number{Value: rational.FromInt64(1)}, v, true
		}
		return e, "", false
	}
	bin, ok := e.(*ast.Binary)
	if !ok {
		return e, "", false
	}
	if bin.Op == ast.OpMul {
		if id, ok := bin.Right.(*ast.Identifier); ok {
			if v, ok := differentialVar(id.Name); ok {
				return bin.Left, v, true
			}
		}
	}
	if newRight, v, ok := peelDifferential(bin.Right); ok {
		return &ast.Binary{Op: bin.Op, Left: bin.Left, Right: newRight}, v, true
	}
	return e, "", false
}

func differentialVar(name string) (string, bool) {
	if len(name) < 2 || name[0] != 'd' {
		return "", false
	}
	rest := name[1:]
	for _, r := range rest {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ", r) {
			return "", false
		}
	}
	return rest, true
}
