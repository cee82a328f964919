package factor

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

func intNode(n int64) ast.Expr {
	return &ast.Number{Value: rational.FromInt64(n)}
}

func intNodeBig(n *big.Int) ast.Expr {
	return &ast.Number{Value: rational.FromBigInt(n)}
}

func zeroRat() rational.Rational { return rational.Zero }
