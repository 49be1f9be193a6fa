package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSearchBatchSize = 500

	publishTimeout = 5 * time.Second
)

type DishService struct {
	store           storage.Opener
	publisher       ReviewPublisher
	searchBatchSize int
	now             func() time.Time
}

// NewDishService wires the dish operations. publisher may be nil, in which
// case no review events are sent.
func NewDishService(store storage.Opener, publisher ReviewPublisher, searchBatchSize int) *DishService {
	if searchBatchSize <= 0 {
		searchBatchSize = DefaultSearchBatchSize
	}
	return &DishService{
		store:           store,
		publisher:       publisher,
		searchBatchSize: searchBatchSize,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *DishService) GetAll(ctx context.Context) ([]domain.Dish, error) {
	var dishes []domain.Dish
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		var err error
		if dishes, err = sess.ListDishes(ctx); err != nil {
			return err
		}
		return attachReviews(ctx, sess, dishes)
	})
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list dishes")
		return nil, fmt.Errorf("service: failed to list dishes: %w", err)
	}
	return dishes, nil
}

// GetByID returns nil without error when the dish does not exist.
func (s *DishService) GetByID(ctx context.Context, id int) (*domain.Dish, error) {
	var dish *domain.Dish
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		var err error
		if dish, err = sess.GetDish(ctx, id); err != nil || dish == nil {
			return err
		}
		dish.Reviews, err = sess.ListReviews(ctx, []int{id})
		return err
	})
	if err != nil {
		log.Error().Err(err).Int("dish_id", id).Msg("service: failed to get dish")
		return nil, fmt.Errorf("service: failed to get dish: %w", err)
	}
	return dish, nil
}

// Search filters dishes by query. Without useRegex the query is a literal,
// case-insensitive fragment of the name. With useRegex it is a
// case-insensitive pattern tested against name and description; a pattern
// that does not compile matches nothing.
func (s *DishService) Search(ctx context.Context, query string, useRegex bool) ([]domain.Dish, error) {
	if query == "" {
		return s.GetAll(ctx)
	}

	if !useRegex {
		var dishes []domain.Dish
		err := storage.Run(ctx, s.store, func(sess storage.Session) error {
			var err error
			if dishes, err = sess.SearchDishesByName(ctx, query); err != nil {
				return err
			}
			return attachReviews(ctx, sess, dishes)
		})
		if err != nil {
			log.Error().Err(err).Str("query", query).Msg("service: failed to search dishes")
			return nil, fmt.Errorf("service: failed to search dishes: %w", err)
		}
		return dishes, nil
	}

	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		log.Debug().Err(err).Str("pattern", query).Msg("service: search pattern does not compile")
		return []domain.Dish{}, nil
	}

	dishes := []domain.Dish{}
	err = storage.Run(ctx, s.store, func(sess storage.Session) error {
		afterID := 0
		for {
			page, err := sess.ListDishesAfter(ctx, afterID, s.searchBatchSize)
			if err != nil {
				return err
			}
			for _, d := range page {
				if re.MatchString(d.Name) || re.MatchString(d.Description) {
					dishes = append(dishes, d)
				}
			}
			if len(page) < s.searchBatchSize {
				break
			}
			afterID = page[len(page)-1].ID
		}
		return attachReviews(ctx, sess, dishes)
	})
	if err != nil {
		log.Error().Err(err).Str("pattern", query).Msg("service: failed to scan dishes")
		return nil, fmt.Errorf("service: failed to search dishes: %w", err)
	}
	return dishes, nil
}

// AddOrUpdate inserts the dish when its ID is zero and replaces the stored
// dish with the same ID otherwise.
func (s *DishService) AddOrUpdate(ctx context.Context, dish *domain.Dish) error {
	if err := dish.Validate(); err != nil {
		return err
	}

	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		if dish.ID == 0 {
			return sess.InsertDish(ctx, dish)
		}
		affected, err := sess.UpdateDish(ctx, dish)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrDishNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDishNotFound) {
			log.Warn().Int("dish_id", dish.ID).Msg("service: dish not found, cannot update")
			return domain.ErrDishNotFound
		}
		log.Error().Err(err).Int("dish_id", dish.ID).Msg("service: failed to save dish")
		return fmt.Errorf("service: failed to save dish: %w", err)
	}

	log.Info().Int("dish_id", dish.ID).Str("name", dish.Name).Msg("service: dish saved")
	return nil
}

// Delete removes the dish and its reviews. Dishes that appear on an order
// cannot be deleted.
func (s *DishService) Delete(ctx context.Context, id int) error {
	var affected int64
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		var err error
		affected, err = sess.DeleteDish(ctx, id)
		return err
	})
	if err != nil {
		if storage.IsForeignKeyViolation(err) {
			log.Warn().Err(err).Int("dish_id", id).Msg("service: dish is referenced by orders")
			return domain.ErrDishInUse
		}
		log.Error().Err(err).Int("dish_id", id).Msg("service: failed to delete dish")
		return fmt.Errorf("service: failed to delete dish: %w", err)
	}
	if affected == 0 {
		return domain.ErrDishNotFound
	}

	log.Info().Int("dish_id", id).Msg("service: dish deleted")
	return nil
}

func (s *DishService) AddReview(ctx context.Context, review *domain.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}
	if review.ReviewDate.IsZero() {
		review.ReviewDate = s.now()
	}

	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		return sess.InsertReview(ctx, review)
	})
	if err != nil {
		if storage.IsForeignKeyViolation(err) {
			log.Warn().Err(err).Int("dish_id", review.DishID).Int("user_id", review.UserID).Msg("service: review references missing rows")
			return domain.ErrMissingReference
		}
		log.Error().Err(err).Int("dish_id", review.DishID).Msg("service: failed to add review")
		return fmt.Errorf("service: failed to add review: %w", err)
	}

	log.Info().Int("review_id", review.ID).Int("dish_id", review.DishID).Int("rating", review.Rating).Msg("service: review added")
	s.publishReview(ctx, review)
	return nil
}

func (s *DishService) publishReview(ctx context.Context, review *domain.Review) {
	if s.publisher == nil {
		return
	}

	event := domain.ReviewEvent{
		EventID:   uuid.NewString(),
		Type:      domain.EventNewReview,
		ReviewID:  review.ID,
		DishID:    review.DishID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Timestamp: s.now(),
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.PublishReview(ctx, event); err != nil {
		log.Error().Err(err).Int("review_id", review.ID).Msg("service: failed to publish review event")
	}
}

func attachReviews(ctx context.Context, sess storage.Session, dishes []domain.Dish) error {
	if len(dishes) == 0 {
		return nil
	}

	ids := make([]int, len(dishes))
	for i, d := range dishes {
		ids[i] = d.ID
	}
	reviews, err := sess.ListReviews(ctx, ids)
	if err != nil {
		return err
	}

	byDish := make(map[int][]domain.Review, len(dishes))
	for _, r := range reviews {
		byDish[r.DishID] = append(byDish[r.DishID], r)
	}
	for i := range dishes {
		dishes[i].Reviews = byDish[dishes[i].ID]
		if dishes[i].Reviews == nil {
			dishes[i].Reviews = []domain.Review{}
		}
	}
	return nil
}
