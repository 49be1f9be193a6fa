package mocks

import (
	"context"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/storage"

	mock "github.com/stretchr/testify/mock"
)

// Session is a mock type for the Session type.
type Session struct {
	mock.Mock
}

// ListDishes provides a mock function with given fields: ctx
func (_m *Session) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Dish)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListDishesAfter provides a mock function with given fields: ctx, afterID, limit
func (_m *Session) ListDishesAfter(ctx context.Context, afterID int, limit int) ([]domain.Dish, error) {
	ret := _m.Called(ctx, afterID, limit)

	var r0 []domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Dish)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// SearchDishesByName provides a mock function with given fields: ctx, fragment
func (_m *Session) SearchDishesByName(ctx context.Context, fragment string) ([]domain.Dish, error) {
	ret := _m.Called(ctx, fragment)

	var r0 []domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Dish)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// GetDish provides a mock function with given fields: ctx, id
func (_m *Session) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Dish
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Dish)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// InsertDish provides a mock function with given fields: ctx, dish
func (_m *Session) InsertDish(ctx context.Context, dish *domain.Dish) error {
	ret := _m.Called(ctx, dish)

	r0 := ret.Error(0)

	return r0
}

// UpdateDish provides a mock function with given fields: ctx, dish
func (_m *Session) UpdateDish(ctx context.Context, dish *domain.Dish) (int64, error) {
	ret := _m.Called(ctx, dish)

	r0 := ret.Get(0).(int64)
	r1 := ret.Error(1)

	return r0, r1
}

// DeleteDish provides a mock function with given fields: ctx, id
func (_m *Session) DeleteDish(ctx context.Context, id int) (int64, error) {
	ret := _m.Called(ctx, id)

	r0 := ret.Get(0).(int64)
	r1 := ret.Error(1)

	return r0, r1
}

// ListReviews provides a mock function with given fields: ctx, dishIDs
func (_m *Session) ListReviews(ctx context.Context, dishIDs []int) ([]domain.Review, error) {
	ret := _m.Called(ctx, dishIDs)

	var r0 []domain.Review
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Review)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// InsertReview provides a mock function with given fields: ctx, review
func (_m *Session) InsertReview(ctx context.Context, review *domain.Review) error {
	ret := _m.Called(ctx, review)

	r0 := ret.Error(0)

	return r0
}

// ListUsers provides a mock function with given fields: ctx
func (_m *Session) ListUsers(ctx context.Context) ([]domain.User, error) {
	ret := _m.Called(ctx)

	var r0 []domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.User)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// GetUser provides a mock function with given fields: ctx, id
func (_m *Session) GetUser(ctx context.Context, id int) (*domain.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// InsertUser provides a mock function with given fields: ctx, user
func (_m *Session) InsertUser(ctx context.Context, user *domain.User) error {
	ret := _m.Called(ctx, user)

	r0 := ret.Error(0)

	return r0
}

// UpdateUser provides a mock function with given fields: ctx, user
func (_m *Session) UpdateUser(ctx context.Context, user *domain.User) (int64, error) {
	ret := _m.Called(ctx, user)

	r0 := ret.Get(0).(int64)
	r1 := ret.Error(1)

	return r0, r1
}

// ListAddresses provides a mock function with given fields: ctx, userIDs
func (_m *Session) ListAddresses(ctx context.Context, userIDs []int) ([]domain.Address, error) {
	ret := _m.Called(ctx, userIDs)

	var r0 []domain.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Address)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// LockAddress provides a mock function with given fields: ctx, id
func (_m *Session) LockAddress(ctx context.Context, id int) (*domain.Address, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Address)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// InsertAddress provides a mock function with given fields: ctx, address
func (_m *Session) InsertAddress(ctx context.Context, address *domain.Address) error {
	ret := _m.Called(ctx, address)

	r0 := ret.Error(0)

	return r0
}

// DeleteAddress provides a mock function with given fields: ctx, id
func (_m *Session) DeleteAddress(ctx context.Context, id int) (int64, error) {
	ret := _m.Called(ctx, id)

	r0 := ret.Get(0).(int64)
	r1 := ret.Error(1)

	return r0, r1
}

// AddressInUse provides a mock function with given fields: ctx, id
func (_m *Session) AddressInUse(ctx context.Context, id int) (bool, error) {
	ret := _m.Called(ctx, id)

	r0 := ret.Get(0).(bool)
	r1 := ret.Error(1)

	return r0, r1
}

// InsertOrder provides a mock function with given fields: ctx, order
func (_m *Session) InsertOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)

	r0 := ret.Error(0)

	return r0
}

// InsertOrderItem provides a mock function with given fields: ctx, item
func (_m *Session) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	ret := _m.Called(ctx, item)

	r0 := ret.Error(0)

	return r0
}

// GetOrder provides a mock function with given fields: ctx, id
func (_m *Session) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListOrdersByUser provides a mock function with given fields: ctx, userID
func (_m *Session) ListOrdersByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, userID)

	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// ListOrderItems provides a mock function with given fields: ctx, orderIDs
func (_m *Session) ListOrderItems(ctx context.Context, orderIDs []int) ([]domain.OrderItem, error) {
	ret := _m.Called(ctx, orderIDs)

	var r0 []domain.OrderItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OrderItem)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// UpdateOrderStatus provides a mock function with given fields: ctx, id, status
func (_m *Session) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (int64, error) {
	ret := _m.Called(ctx, id, status)

	r0 := ret.Get(0).(int64)
	r1 := ret.Error(1)

	return r0, r1
}

// SaveOrderQRCode provides a mock function with given fields: ctx, id, qr
func (_m *Session) SaveOrderQRCode(ctx context.Context, id int, qr []byte) error {
	ret := _m.Called(ctx, id, qr)

	r0 := ret.Error(0)

	return r0
}

// GetOrderQRCode provides a mock function with given fields: ctx, id
func (_m *Session) GetOrderQRCode(ctx context.Context, id int) ([]byte, bool, error) {
	ret := _m.Called(ctx, id)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	r1 := ret.Get(1).(bool)
	r2 := ret.Error(2)

	return r0, r1, r2
}

// Count provides a mock function with given fields: ctx, table
func (_m *Session) Count(ctx context.Context, table storage.Table) (int, error) {
	ret := _m.Called(ctx, table)

	r0 := ret.Get(0).(int)
	r1 := ret.Error(1)

	return r0, r1
}

// Flush provides a mock function with given fields: ctx
func (_m *Session) Flush(ctx context.Context) error {
	ret := _m.Called(ctx)

	r0 := ret.Error(0)

	return r0
}

// Commit provides a mock function with given fields: 
func (_m *Session) Commit() error {
	ret := _m.Called()

	r0 := ret.Error(0)

	return r0
}

// Rollback provides a mock function with given fields: 
func (_m *Session) Rollback() error {
	ret := _m.Called()

	r0 := ret.Error(0)

	return r0
}

// NewSession creates a new instance of Session. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSession(t interface {
	mock.TestingT
	Cleanup(func())
}) *Session {
	m := &Session{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
