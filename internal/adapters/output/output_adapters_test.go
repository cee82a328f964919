package output_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/Stasshe/Latexium-sub002/internal/app"
	"github.com/Stasshe/Latexium-sub002/internal/adapters/output"
)

func TestRender_Simplify(t *testing.T) {
	result := app.AnalyzeResult{
		Input:    "x+x",
		Rendered: "2x",
		Steps:    []string{"combined like terms: x + x -> 2x"},
	}
	snaps.MatchSnapshot(t, output.Render(result))
}

func TestRender_Evaluate(t *testing.T) {
	result := app.AnalyzeResult{
		Input:    "\\frac{1}{2}+\\frac{1}{2}",
		Rendered: "1",
		Value:    &app.ResultValue{IsExact: true, Exact: "1", Approximate: 1},
	}
	snaps.MatchSnapshot(t, output.Render(result))
}

func TestRender_AnalyzePolynomial(t *testing.T) {
	result := app.AnalyzeResult{
		Input:    "x^2-1",
		Rendered: "x^2-1",
		PolynomialInfo: &app.PolynomialInfo{
			Variable:     "x",
			Degree:       2,
			LeadingCoeff: "1",
			FactoredForm: "(x-1)(x+1)",
		},
	}
	snaps.MatchSnapshot(t, output.Render(result))
}
