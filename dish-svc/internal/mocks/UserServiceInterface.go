package mocks

import (
	"context"

	"overcooked-restaurant/dish-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// UserServiceInterface is a mock type for the UserServiceInterface type.
type UserServiceInterface struct {
	mock.Mock
}

// GetAll provides a mock function with given fields: ctx
func (_m *UserServiceInterface) GetAll(ctx context.Context) ([]domain.User, error) {
	ret := _m.Called(ctx)

	var r0 []domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.User)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *UserServiceInterface) GetByID(ctx context.Context, id int) (*domain.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// AddOrUpdate provides a mock function with given fields: ctx, user
func (_m *UserServiceInterface) AddOrUpdate(ctx context.Context, user *domain.User) error {
	ret := _m.Called(ctx, user)

	r0 := ret.Error(0)

	return r0
}

// DeleteAddress provides a mock function with given fields: ctx, addressID
func (_m *UserServiceInterface) DeleteAddress(ctx context.Context, addressID int) error {
	ret := _m.Called(ctx, addressID)

	r0 := ret.Error(0)

	return r0
}

// AddAddress provides a mock function with given fields: ctx, userID, address
func (_m *UserServiceInterface) AddAddress(ctx context.Context, userID int, address *domain.Address) error {
	ret := _m.Called(ctx, userID, address)

	r0 := ret.Error(0)

	return r0
}

// NewUserServiceInterface creates a new instance of UserServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserServiceInterface {
	m := &UserServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
