package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

// MockLatexProvider is a mock type for the LatexProvider type
type MockLatexProvider struct {
	mock.Mock
}

// GetInput provides a mock function with given fields:
func (_m *MockLatexProvider) GetInput() (string, app.AnalyzeOptions, error) {
	ret := _m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	var r1 app.AnalyzeOptions
	if rf, ok := ret.Get(1).(func() app.AnalyzeOptions); ok {
		r1 = rf()
	} else {
		r1 = ret.Get(1).(app.AnalyzeOptions)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func() error); ok {
		r2 = rf()
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// NewMockLatexProvider creates a new instance of MockLatexProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLatexProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLatexProvider {
	mock := &MockLatexProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
