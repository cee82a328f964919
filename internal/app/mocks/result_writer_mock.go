package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Stasshe/Latexium-sub002/internal/app"
	domerr "github.com/Stasshe/Latexium-sub002/internal/domain/errors"
)

// MockResultWriter is a mock type for the ResultWriter type
type MockResultWriter struct {
	mock.Mock
}

// WriteResult provides a mock function with given fields: result
func (_m *MockResultWriter) WriteResult(result app.AnalyzeResult) error {
	ret := _m.Called(result)

	var r0 error
	if rf, ok := ret.Get(0).(func(app.AnalyzeResult) error); ok {
		r0 = rf(result)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// WriteError provides a mock function with given fields: err
func (_m *MockResultWriter) WriteError(err *domerr.Error) error {
	ret := _m.Called(err)

	var r0 error
	if rf, ok := ret.Get(0).(func(*domerr.Error) error); ok {
		r0 = rf(err)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockResultWriter creates a new instance of MockResultWriter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockResultWriter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockResultWriter {
	mock := &MockResultWriter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
