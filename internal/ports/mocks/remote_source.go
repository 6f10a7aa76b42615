package mocks

import (
	"context"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRemoteSource[K domain.Key, R domain.Record[K, R]] struct {
	mock.Mock
}

type MockRemoteSource_Expecter[K domain.Key, R domain.Record[K, R]] struct {
	mock *mock.Mock
}

func (_m *MockRemoteSource[K, R]) EXPECT() *MockRemoteSource_Expecter[K, R] {
	return &MockRemoteSource_Expecter[K, R]{mock: &_m.Mock}
}

func (_m *MockRemoteSource[K, R]) Fetch(ctx context.Context) ([]R, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Fetch")
	}

	var r0 []R
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]R)
	}

	return r0, ret.Error(1)
}

type MockRemoteSource_Fetch_Call[K domain.Key, R domain.Record[K, R]] struct {
	*mock.Call
}

func (_e *MockRemoteSource_Expecter[K, R]) Fetch(ctx interface{}) *MockRemoteSource_Fetch_Call[K, R] {
	return &MockRemoteSource_Fetch_Call[K, R]{Call: _e.mock.On("Fetch", ctx)}
}

func (_c *MockRemoteSource_Fetch_Call[K, R]) Return(records []R, err error) *MockRemoteSource_Fetch_Call[K, R] {
	_c.Call.Return(records, err)
	return _c
}

func (_m *MockRemoteSource[K, R]) Push(ctx context.Context, record R) error {
	ret := _m.Called(ctx, record)

	if len(ret) == 0 {
		panic("no return value specified for Push")
	}

	return ret.Error(0)
}

type MockRemoteSource_Push_Call[K domain.Key, R domain.Record[K, R]] struct {
	*mock.Call
}

func (_e *MockRemoteSource_Expecter[K, R]) Push(ctx interface{}, record interface{}) *MockRemoteSource_Push_Call[K, R] {
	return &MockRemoteSource_Push_Call[K, R]{Call: _e.mock.On("Push", ctx, record)}
}

func (_c *MockRemoteSource_Push_Call[K, R]) Return(err error) *MockRemoteSource_Push_Call[K, R] {
	_c.Call.Return(err)
	return _c
}

func NewMockRemoteSource[K domain.Key, R domain.Record[K, R]](t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRemoteSource[K, R] {
	m := &MockRemoteSource[K, R]{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
