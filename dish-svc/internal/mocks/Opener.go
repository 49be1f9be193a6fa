package mocks

import (
	"context"

	"overcooked-restaurant/dish-svc/internal/storage"

	mock "github.com/stretchr/testify/mock"
)

// Opener is a mock type for the Opener type.
type Opener struct {
	mock.Mock
}

// Begin provides a mock function with given fields: ctx
func (_m *Opener) Begin(ctx context.Context) (storage.Session, error) {
	ret := _m.Called(ctx)

	var r0 storage.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(storage.Session)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// NewOpener creates a new instance of Opener. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewOpener(t interface {
	mock.TestingT
	Cleanup(func())
}) *Opener {
	m := &Opener{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
