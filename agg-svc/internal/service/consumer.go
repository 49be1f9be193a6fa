package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"overcooked-restaurant/agg-svc/internal/domain"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

var ErrInvalidEvent = errors.New("invalid review event")

const (
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	// RetryDelay is the first wait after a reader or store failure. It
	// doubles on each further failure up to 30s.
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader:     reader,
		Store:      store,
		RetryDelay: defaultRetryDelay,
	}
}

// Start reads until ctx is cancelled or the reader is closed. An offset is
// committed only once its message is applied, skipped, or rejected as
// invalid. Store failures retry the same message, so stopping mid retry
// leaves it uncommitted for the next run.
func (c *Consumer) Start(ctx context.Context) error {
	log.Info().Msg("Starting rating consumer")
	delay := c.firstDelay()
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				log.Info().Msg("Rating consumer stopped")
				return nil
			}
			log.Error().Err(err).Dur("retry_in", delay).Msg("consumer: failed to read message")
			if !wait(ctx, delay) {
				log.Info().Msg("Rating consumer stopped")
				return nil
			}
			delay = nextDelay(delay)
			continue
		}
		delay = c.firstDelay()

		if !c.handle(ctx, message) {
			log.Info().Int64("offset", message.Offset).Msg("Rating consumer stopped before commit")
			return nil
		}
		if err := c.Reader.CommitMessages(ctx, message); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error().Err(err).Int64("offset", message.Offset).Msg("consumer: failed to commit offset")
		}
	}
}

// handle processes one message until its offset may be committed. It
// returns false when ctx ends first.
func (c *Consumer) handle(ctx context.Context, message kafka.Message) bool {
	var event domain.ReviewEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		log.Error().Err(err).Int64("offset", message.Offset).Msg("consumer: failed to decode message")
		return true
	}
	if event.Type != domain.EventNewReview {
		return true
	}

	delay := c.firstDelay()
	for {
		err := c.ProcessReview(ctx, event)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrInvalidEvent) {
			log.Warn().Err(err).Str("event_id", event.EventID).Int64("offset", message.Offset).
				Msg("consumer: invalid review dropped")
			return true
		}
		log.Error().Err(err).Str("event_id", event.EventID).Int("dish_id", event.DishID).
			Dur("retry_in", delay).Msg("consumer: failed to process review")
		if !wait(ctx, delay) {
			return false
		}
		delay = nextDelay(delay)
	}
}

func (c *Consumer) firstDelay() time.Duration {
	if c.RetryDelay <= 0 {
		return defaultRetryDelay
	}
	return c.RetryDelay
}

func nextDelay(d time.Duration) time.Duration {
	if d *= 2; d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

// wait sleeps for d and reports false if ctx ended first.
func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// ProcessReview applies one review to the aggregates. An event id seen
// before is skipped; events without an id are applied as is.
func (c *Consumer) ProcessReview(ctx context.Context, event domain.ReviewEvent) error {
	if event.Type != domain.EventNewReview {
		return nil
	}
	if event.DishID <= 0 {
		return fmt.Errorf("%w: dish id %d", ErrInvalidEvent, event.DishID)
	}
	if event.Rating < 1 || event.Rating > 5 {
		return fmt.Errorf("%w: rating %d", ErrInvalidEvent, event.Rating)
	}

	if event.EventID != "" {
		fresh, err := c.Store.MarkProcessed(ctx, event.EventID)
		if err != nil {
			return err
		}
		if !fresh {
			log.Debug().Str("event_id", event.EventID).Msg("consumer: duplicate review skipped")
			return nil
		}
	}

	rating, err := c.Store.AddRating(ctx, event.DishID, event.Rating)
	if err != nil {
		if event.EventID != "" {
			if ferr := c.Store.ForgetEvent(ctx, event.EventID); ferr != nil {
				log.Error().Err(ferr).Str("event_id", event.EventID).Msg("consumer: failed to clear event marker")
			}
		}
		return err
	}

	log.Info().
		Int("dish_id", rating.DishID).
		Int64("review_count", rating.ReviewCount).
		Float64("avg_rating", rating.AvgRating).
		Msg("Processed review")
	return nil
}
