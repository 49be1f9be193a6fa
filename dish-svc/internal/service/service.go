package service

import (
	"context"

	"overcooked-restaurant/dish-svc/internal/domain"
)

// ReviewPublisher announces committed reviews to other services.
type ReviewPublisher interface {
	PublishReview(ctx context.Context, event domain.ReviewEvent) error
}

type DishServiceInterface interface {
	GetAll(ctx context.Context) ([]domain.Dish, error)
	GetByID(ctx context.Context, id int) (*domain.Dish, error)
	Search(ctx context.Context, query string, useRegex bool) ([]domain.Dish, error)
	AddOrUpdate(ctx context.Context, dish *domain.Dish) error
	Delete(ctx context.Context, id int) error
	AddReview(ctx context.Context, review *domain.Review) error
}

type UserServiceInterface interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	AddOrUpdate(ctx context.Context, user *domain.User) error
	DeleteAddress(ctx context.Context, addressID int) error
	AddAddress(ctx context.Context, userID int, address *domain.Address) error
}

type OrderServiceInterface interface {
	Place(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) error
	QRCode(ctx context.Context, id int) ([]byte, error)
	QRLink(orderID int) string
}

var (
	_ DishServiceInterface  = (*DishService)(nil)
	_ UserServiceInterface  = (*UserService)(nil)
	_ OrderServiceInterface = (*OrderService)(nil)
)
