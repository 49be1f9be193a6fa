package service

import (
	"context"

	"overcooked-restaurant/agg-svc/internal/domain"
	"overcooked-restaurant/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type RatingReader interface {
	GetDishRating(ctx context.Context, dishID int) (*domain.DishRating, error)
	TopDishes(ctx context.Context, limit int) ([]domain.DishRating, error)
}

type StoreInterface interface {
	RatingReader
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	ForgetEvent(ctx context.Context, eventID string) error
	AddRating(ctx context.Context, dishID, rating int) (*domain.DishRating, error)
}

// MessageReader is the part of *kafka.Reader the consumer needs. Offsets
// are committed explicitly, never on read.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	ProcessReview(ctx context.Context, event domain.ReviewEvent) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
