package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Stasshe/Latexium-sub002/internal/config"
)

func TestNewLimits_Defaults(t *testing.T) {
	l := config.NewLimits()
	assert.Equal(t, 15, l.MaxSimplifyPasses)
	assert.Equal(t, 10, l.MaxFactorIterations)
	assert.Equal(t, 20, l.MaxPolynomialDegree)
	assert.Equal(t, 100000, l.HenselRecombineCap)
}

func TestNewLimits_Overrides(t *testing.T) {
	l := config.NewLimits(
		config.WithMaxSimplifyPasses(5),
		config.WithMaxFactorIterations(3),
		config.WithMaxPolynomialDegree(8),
		config.WithHenselRecombineCap(100),
	)
	assert.Equal(t, 5, l.MaxSimplifyPasses)
	assert.Equal(t, 3, l.MaxFactorIterations)
	assert.Equal(t, 8, l.MaxPolynomialDegree)
	assert.Equal(t, 100, l.HenselRecombineCap)
}
