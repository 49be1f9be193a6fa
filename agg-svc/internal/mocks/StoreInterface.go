package mocks

import (
	"context"

	"overcooked-restaurant/agg-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// StoreInterface is a mock type for the StoreInterface type.
type StoreInterface struct {
	mock.Mock
}

// AddRating provides a mock function with given fields: ctx, dishID, rating
func (_m *StoreInterface) AddRating(ctx context.Context, dishID int, rating int) (*domain.DishRating, error) {
	ret := _m.Called(ctx, dishID, rating)

	var r0 *domain.DishRating
	if rf, ok := ret.Get(0).(func(context.Context, int, int) *domain.DishRating); ok {
		r0 = rf(ctx, dishID, rating)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DishRating)
	}

	return r0, ret.Error(1)
}

// ForgetEvent provides a mock function with given fields: ctx, eventID
func (_m *StoreInterface) ForgetEvent(ctx context.Context, eventID string) error {
	ret := _m.Called(ctx, eventID)

	return ret.Error(0)
}

// GetDishRating provides a mock function with given fields: ctx, dishID
func (_m *StoreInterface) GetDishRating(ctx context.Context, dishID int) (*domain.DishRating, error) {
	ret := _m.Called(ctx, dishID)

	var r0 *domain.DishRating
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DishRating)
	}

	return r0, ret.Error(1)
}

// MarkProcessed provides a mock function with given fields: ctx, eventID
func (_m *StoreInterface) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ret := _m.Called(ctx, eventID)

	return ret.Bool(0), ret.Error(1)
}

// TopDishes provides a mock function with given fields: ctx, limit
func (_m *StoreInterface) TopDishes(ctx context.Context, limit int) ([]domain.DishRating, error) {
	ret := _m.Called(ctx, limit)

	var r0 []domain.DishRating
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.DishRating)
	}

	return r0, ret.Error(1)
}

// NewStoreInterface creates a new instance of StoreInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewStoreInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
