package mocks

import (
	"context"

	"overcooked-restaurant/dish-svc/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// OrderServiceInterface is a mock type for the OrderServiceInterface type.
type OrderServiceInterface struct {
	mock.Mock
}

// Place provides a mock function with given fields: ctx, order
func (_m *OrderServiceInterface) Place(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)

	r0 := ret.Error(0)

	return r0
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *OrderServiceInterface) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListForUser provides a mock function with given fields: ctx, userID
func (_m *OrderServiceInterface) ListForUser(ctx context.Context, userID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, userID)

	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// UpdateStatus provides a mock function with given fields: ctx, id, status
func (_m *OrderServiceInterface) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) error {
	ret := _m.Called(ctx, id, status)

	r0 := ret.Error(0)

	return r0
}

// QRCode provides a mock function with given fields: ctx, id
func (_m *OrderServiceInterface) QRCode(ctx context.Context, id int) ([]byte, error) {
	ret := _m.Called(ctx, id)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// QRLink provides a mock function with given fields: orderID
func (_m *OrderServiceInterface) QRLink(orderID int) string {
	ret := _m.Called(orderID)

	r0 := ret.Get(0).(string)

	return r0
}

// NewOrderServiceInterface creates a new instance of OrderServiceInterface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewOrderServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
