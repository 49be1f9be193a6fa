package mocks

import (
	"context"

	"overcooked-restaurant/dish-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// DishServiceInterface is a mock type for the DishServiceInterface type.
type DishServiceInterface struct {
	mock.Mock
}

// GetAll provides a mock function with given fields: ctx
func (_m *DishServiceInterface) GetAll(ctx context.Context) ([]domain.Dish, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Dish)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *DishServiceInterface) GetByID(ctx context.Context, id int) (*domain.Dish, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Dish)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// Search provides a mock function with given fields: ctx, query, useRegex
func (_m *DishServiceInterface) Search(ctx context.Context, query string, useRegex bool) ([]domain.Dish, error) {
	ret := _m.Called(ctx, query, useRegex)

	var r0 []domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Dish)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// AddOrUpdate provides a mock function with given fields: ctx, dish
func (_m *DishServiceInterface) AddOrUpdate(ctx context.Context, dish *domain.Dish) error {
	ret := _m.Called(ctx, dish)

	r0 := ret.Error(0)

	return r0
}

// Delete provides a mock function with given fields: ctx, id
func (_m *DishServiceInterface) Delete(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

// AddReview provides a mock function with given fields: ctx, review
func (_m *DishServiceInterface) AddReview(ctx context.Context, review *domain.Review) error {
	ret := _m.Called(ctx, review)

	r0 := ret.Error(0)

	return r0
}

// NewDishServiceInterface creates a new instance of DishServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewDishServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *DishServiceInterface {
	m := &DishServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
