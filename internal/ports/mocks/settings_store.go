package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSettingsStore struct {
	mock.Mock
}

type MockSettingsStore_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSettingsStore) EXPECT() *MockSettingsStore_Expecter {
	return &MockSettingsStore_Expecter{mock: &_m.Mock}
}

func (_m *MockSettingsStore) Get(ctx context.Context, key string) (string, error) {
	ret := _m.Called(ctx, key)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	return ret.String(0), ret.Error(1)
}

type MockSettingsStore_Get_Call struct {
	*mock.Call
}

func (_e *MockSettingsStore_Expecter) Get(ctx interface{}, key interface{}) *MockSettingsStore_Get_Call {
	return &MockSettingsStore_Get_Call{Call: _e.mock.On("Get", ctx, key)}
}

func (_c *MockSettingsStore_Get_Call) Return(value string, err error) *MockSettingsStore_Get_Call {
	_c.Call.Return(value, err)
	return _c
}

func (_m *MockSettingsStore) Put(ctx context.Context, key string, value string) error {
	ret := _m.Called(ctx, key, value)

	if len(ret) == 0 {
		panic("no return value specified for Put")
	}

	return ret.Error(0)
}

type MockSettingsStore_Put_Call struct {
	*mock.Call
}

func (_e *MockSettingsStore_Expecter) Put(ctx interface{}, key interface{}, value interface{}) *MockSettingsStore_Put_Call {
	return &MockSettingsStore_Put_Call{Call: _e.mock.On("Put", ctx, key, value)}
}

func (_c *MockSettingsStore_Put_Call) Return(err error) *MockSettingsStore_Put_Call {
	_c.Call.Return(err)
	return _c
}

func (_m *MockSettingsStore) PutAll(ctx context.Context, values map[string]string) error {
	ret := _m.Called(ctx, values)

	if len(ret) == 0 {
		panic("no return value specified for PutAll")
	}

	return ret.Error(0)
}

type MockSettingsStore_PutAll_Call struct {
	*mock.Call
}

func (_e *MockSettingsStore_Expecter) PutAll(ctx interface{}, values interface{}) *MockSettingsStore_PutAll_Call {
	return &MockSettingsStore_PutAll_Call{Call: _e.mock.On("PutAll", ctx, values)}
}

func (_c *MockSettingsStore_PutAll_Call) Return(err error) *MockSettingsStore_PutAll_Call {
	_c.Call.Return(err)
	return _c
}

func (_m *MockSettingsStore) Delete(ctx context.Context, keys ...string) error {
	args := []interface{}{ctx}
	for _, key := range keys {
		args = append(args, key)
	}
	ret := _m.Called(args...)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	return ret.Error(0)
}

type MockSettingsStore_Delete_Call struct {
	*mock.Call
}

func (_e *MockSettingsStore_Expecter) Delete(ctx interface{}, keys ...interface{}) *MockSettingsStore_Delete_Call {
	return &MockSettingsStore_Delete_Call{Call: _e.mock.On("Delete", append([]interface{}{ctx}, keys...)...)}
}

func (_c *MockSettingsStore_Delete_Call) Return(err error) *MockSettingsStore_Delete_Call {
	_c.Call.Return(err)
	return _c
}

func NewMockSettingsStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSettingsStore {
	m := &MockSettingsStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
