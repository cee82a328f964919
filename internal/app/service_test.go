package app_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Stasshe/Latexium-sub002/internal/app"
	app_mocks "github.com/Stasshe/Latexium-sub002/internal/app/mocks"
	"github.com/Stasshe/Latexium-sub002/internal/config"
	domerr "github.com/Stasshe/Latexium-sub002/internal/domain/errors"
)

func newService() *app.AnalysisService {
	return app.NewAnalysisService(config.NewLimits())
}

func TestAnalysisService_Run_Success(t *testing.T) {
	mockProvider := app_mocks.NewMockLatexProvider(t)
	mockWriter := app_mocks.NewMockResultWriter(t)

	mockProvider.On("GetInput").Return("2+2", app.AnalyzeOptions{Task: app.TaskSimplify}, nil).Once()
	mockWriter.On("WriteResult", mock.Anything).Return(nil).Once()

	service := newService()
	err := service.Run(mockProvider, mockWriter)

	require.NoError(t, err)
}

func TestAnalysisService_Run_GetInputError(t *testing.T) {
	mockProvider := app_mocks.NewMockLatexProvider(t)
	mockWriter := app_mocks.NewMockResultWriter(t)

	expected := errors.New("flag parse failure")
	mockProvider.On("GetInput").Return("", app.AnalyzeOptions{}, expected).Once()
	mockWriter.On("WriteError", mock.Anything).Return(nil).Once()

	service := newService()
	err := service.Run(mockProvider, mockWriter)

	require.NoError(t, err)
}

func TestAnalysisService_Run_WriteResultError(t *testing.T) {
	mockProvider := app_mocks.NewMockLatexProvider(t)
	mockWriter := app_mocks.NewMockResultWriter(t)

	mockProvider.On("GetInput").Return("x", app.AnalyzeOptions{Task: app.TaskParse}, nil).Once()
	writeErr := errors.New("disk full")
	mockWriter.On("WriteResult", mock.Anything).Return(writeErr).Once()

	service := newService()
	err := service.Run(mockProvider, mockWriter)

	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
}

func TestAnalysisService_Analyze_ParseError(t *testing.T) {
	service := newService()
	_, err := service.Analyze("\\frac{1}{", app.AnalyzeOptions{Task: app.TaskParse})
	require.Error(t, err)
}

func TestAnalysisService_Analyze_Simplify(t *testing.T) {
	service := newService()
	result, err := service.Analyze("x+x", app.AnalyzeOptions{Task: app.TaskSimplify})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Rendered)
}

func TestAnalysisService_Analyze_AnalyzePolynomial(t *testing.T) {
	service := newService()
	result, err := service.Analyze("x^2-1", app.AnalyzeOptions{Task: app.TaskAnalyzePolynomial})
	require.NoError(t, err)
	require.NotNil(t, result.PolynomialInfo)
	assert.Equal(t, "x", result.PolynomialInfo.Variable)
	assert.Equal(t, 2, result.PolynomialInfo.Degree)
}

func TestAnalysisService_Analyze_Evaluate(t *testing.T) {
	service := newService()
	result, err := service.Analyze("x+1", app.AnalyzeOptions{
		Task:   app.TaskEvaluate,
		Values: map[string]float64{"x": 4},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Value)
}

func TestAnalysisService_Analyze_Evaluate_MissingVariable(t *testing.T) {
	service := newService()
	_, err := service.Analyze("x+1", app.AnalyzeOptions{Task: app.TaskEvaluate})
	require.Error(t, err)
	var domErr *domerr.Error
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domerr.Scope, domErr.Kind)
}

func TestAnalysisService_Analyze_Differentiate(t *testing.T) {
	service := newService()
	result, err := service.Analyze("x^2", app.AnalyzeOptions{Task: app.TaskDifferentiate, Variable: "x"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Rendered)
}

func TestAnalysisService_Analyze_NotImplemented(t *testing.T) {
	service := newService()
	_, err := service.Analyze("x+1", app.AnalyzeOptions{Task: app.TaskIntegrate})
	require.Error(t, err)
	var domErr *domerr.Error
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domerr.Algorithmic, domErr.Kind)
}
