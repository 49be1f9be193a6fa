package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"overcooked-restaurant/dish-svc/internal/domain"
)

const dishColumns = `id, name, description, price, image_path`

func (s *sqlSession) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	dishes := []domain.Dish{}
	query := `SELECT ` + dishColumns + ` FROM dishes ORDER BY id`
	if err := s.tx.SelectContext(ctx, &dishes, query); err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	return dishes, nil
}

// ListDishesAfter returns up to limit dishes with id greater than afterID.
func (s *sqlSession) ListDishesAfter(ctx context.Context, afterID, limit int) ([]domain.Dish, error) {
	dishes := []domain.Dish{}
	query := s.rebind(`SELECT ` + dishColumns + ` FROM dishes WHERE id > ? ORDER BY id LIMIT ?`)
	if err := s.tx.SelectContext(ctx, &dishes, query, afterID, limit); err != nil {
		return nil, fmt.Errorf("failed to page dishes after %d: %w", afterID, err)
	}
	return dishes, nil
}

// SearchDishesByName matches fragment against dish names as a
// case-insensitive substring. Wildcards in fragment match literally.
func (s *sqlSession) SearchDishesByName(ctx context.Context, fragment string) ([]domain.Dish, error) {
	dishes := []domain.Dish{}
	query := s.rebind(`SELECT ` + dishColumns + ` FROM dishes WHERE ` + s.nameMatch() + ` ORDER BY id`)
	pattern := "%" + escapeLike(strings.ToLower(fragment)) + "%"
	if err := s.tx.SelectContext(ctx, &dishes, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search dishes: %w", err)
	}
	return dishes, nil
}

func (s *sqlSession) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	var dish domain.Dish
	query := s.rebind(`SELECT ` + dishColumns + ` FROM dishes WHERE id = ?`)
	if err := s.tx.GetContext(ctx, &dish, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dish %d: %w", id, err)
	}
	return &dish, nil
}

func (s *sqlSession) InsertDish(ctx context.Context, dish *domain.Dish) error {
	query := s.rebind(`INSERT INTO dishes (name, description, price, image_path)
		VALUES (?, ?, ?, ?) RETURNING id`)
	err := s.tx.QueryRowxContext(ctx, query,
		dish.Name, dish.Description, dish.Price, dish.ImagePath,
	).Scan(&dish.ID)
	if err != nil {
		return fmt.Errorf("failed to insert dish: %w", err)
	}
	return nil
}

func (s *sqlSession) UpdateDish(ctx context.Context, dish *domain.Dish) (int64, error) {
	query := s.rebind(`UPDATE dishes SET name = ?, description = ?, price = ?, image_path = ? WHERE id = ?`)
	res, err := s.tx.ExecContext(ctx, query,
		dish.Name, dish.Description, dish.Price, dish.ImagePath, dish.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update dish %d: %w", dish.ID, err)
	}
	return res.RowsAffected()
}

// DeleteDish removes the dish and, through the schema, its reviews.
func (s *sqlSession) DeleteDish(ctx context.Context, id int) (int64, error) {
	res, err := s.tx.ExecContext(ctx, s.rebind(`DELETE FROM dishes WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete dish %d: %w", id, err)
	}
	return res.RowsAffected()
}

func (s *sqlSession) ListReviews(ctx context.Context, dishIDs []int) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if len(dishIDs) == 0 {
		return reviews, nil
	}

	query, args, err := s.in(`SELECT id, dish_id, user_id, rating, comment, review_date
		FROM reviews WHERE dish_id IN (?) ORDER BY dish_id, id`, dishIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build review query: %w", err)
	}
	if err := s.tx.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *sqlSession) InsertReview(ctx context.Context, review *domain.Review) error {
	query := s.rebind(`INSERT INTO reviews (dish_id, user_id, rating, comment, review_date)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	err := s.tx.QueryRowxContext(ctx, query,
		review.DishID, review.UserID, review.Rating, review.Comment, review.ReviewDate,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// nameMatch compares name against a lowercased LIKE pattern, folding case
// beyond ASCII on both engines.
func (s *sqlSession) nameMatch() string {
	if s.gateway.dialect == DialectPostgres {
		return `name ILIKE ? ESCAPE '\'`
	}
	return unicodeLowerFunc + `(name) LIKE ? ESCAPE '\'`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
