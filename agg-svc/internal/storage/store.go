package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"overcooked-restaurant/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey  = "rating:leaderboard"
	DefaultEventTTL = 7 * 24 * time.Hour
)

// addRating bumps count and sum and re-scores the dish in one step, so
// concurrent consumers never write a stale average to the leaderboard.
var addRating = redis.NewScript(`
local count = redis.call('HINCRBY', KEYS[1], 'count', 1)
local sum = redis.call('HINCRBY', KEYS[1], 'sum', ARGV[1])
redis.call('ZADD', KEYS[2], sum / count, ARGV[2])
return {count, sum}
`)

// Store keeps per-dish rating aggregates in Redis:
//
//	rating:dish:{id}     hash with count and sum
//	rating:leaderboard   sorted set of dish ids scored by average
//	rating:event:{uuid}  processed marker, expires after the event TTL
type Store struct {
	rdb      *redis.Client
	eventTTL time.Duration
}

func NewStore(rdb *redis.Client, eventTTL time.Duration) *Store {
	if eventTTL <= 0 {
		eventTTL = DefaultEventTTL
	}
	return &Store{
		rdb:      rdb,
		eventTTL: eventTTL,
	}
}

func dishKey(dishID int) string {
	return fmt.Sprintf("rating:dish:%d", dishID)
}

func eventKey(eventID string) string {
	return "rating:event:" + eventID
}

// MarkProcessed reports false when the event id was already recorded.
func (s *Store) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, eventKey(eventID), 1, s.eventTTL).Result()
	if err != nil {
		return false, fmt.Errorf("mark event %s: %w", eventID, err)
	}
	return ok, nil
}

// ForgetEvent drops the processed marker so a redelivery is applied again.
func (s *Store) ForgetEvent(ctx context.Context, eventID string) error {
	return s.rdb.Del(ctx, eventKey(eventID)).Err()
}

func (s *Store) AddRating(ctx context.Context, dishID, rating int) (*domain.DishRating, error) {
	res, err := addRating.Run(ctx, s.rdb,
		[]string{dishKey(dishID), leaderboardKey},
		rating, strconv.Itoa(dishID),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("add rating for dish %d: %w", dishID, err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("add rating for dish %d: unexpected reply %v", dishID, res)
	}
	return newDishRating(dishID, res[0], res[1]), nil
}

// GetDishRating returns nil when the dish has no recorded reviews.
func (s *Store) GetDishRating(ctx context.Context, dishID int) (*domain.DishRating, error) {
	fields, err := s.rdb.HGetAll(ctx, dishKey(dishID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get rating for dish %d: %w", dishID, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return parseDishRating(dishID, fields)
}

// TopDishes lists up to limit dishes by average rating, best first.
func (s *Store) TopDishes(ctx context.Context, limit int) ([]domain.DishRating, error) {
	if limit <= 0 {
		return []domain.DishRating{}, nil
	}
	entries, err := s.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	ids := make([]int, 0, len(entries))
	for _, z := range entries {
		member, _ := z.Member.(string)
		id, err := strconv.Atoi(member)
		if err != nil {
			return nil, fmt.Errorf("leaderboard member %v: %w", z.Member, err)
		}
		ids = append(ids, id)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, dishKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read dish ratings: %w", err)
	}

	ratings := make([]domain.DishRating, 0, len(ids))
	for i, id := range ids {
		fields := cmds[i].Val()
		if len(fields) == 0 {
			continue
		}
		rating, err := parseDishRating(id, fields)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, *rating)
	}
	return ratings, nil
}

func parseDishRating(dishID int, fields map[string]string) (*domain.DishRating, error) {
	count, err := strconv.ParseInt(fields["count"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("dish %d count: %w", dishID, err)
	}
	sum, err := strconv.ParseInt(fields["sum"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("dish %d sum: %w", dishID, err)
	}
	return newDishRating(dishID, count, sum), nil
}

func newDishRating(dishID int, count, sum int64) *domain.DishRating {
	return &domain.DishRating{
		DishID:      dishID,
		ReviewCount: count,
		RatingSum:   sum,
		AvgRating:   domain.Average(sum, count),
	}
}
