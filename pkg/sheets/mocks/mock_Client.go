// Package mocks provides test doubles for the sheets client.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	sheets "github.com/sells-group/listing-tracker/pkg/sheets"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// Worksheets provides a mock function with given fields: ctx
func (_m *MockClient) Worksheets(ctx context.Context) ([]sheets.Worksheet, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Worksheets")
	}

	var r0 []sheets.Worksheet
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]sheets.Worksheet, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []sheets.Worksheet); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]sheets.Worksheet)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Worksheet provides a mock function with given fields: ctx, title
func (_m *MockClient) Worksheet(ctx context.Context, title string) (*sheets.Worksheet, error) {
	ret := _m.Called(ctx, title)

	if len(ret) == 0 {
		panic("no return value specified for Worksheet")
	}

	var r0 *sheets.Worksheet
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*sheets.Worksheet, error)); ok {
		return rf(ctx, title)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *sheets.Worksheet); ok {
		r0 = rf(ctx, title)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*sheets.Worksheet)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, title)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// AddWorksheet provides a mock function with given fields: ctx, title, rows, cols
func (_m *MockClient) AddWorksheet(ctx context.Context, title string, rows int, cols int) (*sheets.Worksheet, error) {
	ret := _m.Called(ctx, title, rows, cols)

	if len(ret) == 0 {
		panic("no return value specified for AddWorksheet")
	}

	var r0 *sheets.Worksheet
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int, int) (*sheets.Worksheet, error)); ok {
		return rf(ctx, title, rows, cols)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, int, int) *sheets.Worksheet); ok {
		r0 = rf(ctx, title, rows, cols)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*sheets.Worksheet)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, int, int) error); ok {
		r1 = rf(ctx, title, rows, cols)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// DeleteWorksheet provides a mock function with given fields: ctx, ws
func (_m *MockClient) DeleteWorksheet(ctx context.Context, ws sheets.Worksheet) error {
	ret := _m.Called(ctx, ws)

	if len(ret) == 0 {
		panic("no return value specified for DeleteWorksheet")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, sheets.Worksheet) error); ok {
		r0 = rf(ctx, ws)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MoveWorksheet provides a mock function with given fields: ctx, ws, index
func (_m *MockClient) MoveWorksheet(ctx context.Context, ws sheets.Worksheet, index int) error {
	ret := _m.Called(ctx, ws, index)

	if len(ret) == 0 {
		panic("no return value specified for MoveWorksheet")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, sheets.Worksheet, int) error); ok {
		r0 = rf(ctx, ws, index)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Update provides a mock function with given fields: ctx, rng, values, mode
func (_m *MockClient) Update(ctx context.Context, rng string, values [][]any, mode sheets.InputMode) error {
	ret := _m.Called(ctx, rng, values, mode)

	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, [][]any, sheets.InputMode) error); ok {
		r0 = rf(ctx, rng, values, mode)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Get provides a mock function with given fields: ctx, rng
func (_m *MockClient) Get(ctx context.Context, rng string) ([][]string, error) {
	ret := _m.Called(ctx, rng)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 [][]string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([][]string, error)); ok {
		return rf(ctx, rng)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) [][]string); ok {
		r0 = rf(ctx, rng)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([][]string)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, rng)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// AppendRows provides a mock function with given fields: ctx, rng, values, mode
func (_m *MockClient) AppendRows(ctx context.Context, rng string, values [][]any, mode sheets.InputMode) error {
	ret := _m.Called(ctx, rng, values, mode)

	if len(ret) == 0 {
		panic("no return value specified for AppendRows")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, [][]any, sheets.InputMode) error); ok {
		r0 = rf(ctx, rng, values, mode)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Close provides a mock function with no fields
func (_m *MockClient) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockClient creates a new instance of MockClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

var _ sheets.Client = (*MockClient)(nil)
