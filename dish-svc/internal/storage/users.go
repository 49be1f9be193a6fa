package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"overcooked-restaurant/dish-svc/internal/domain"
)

const addressColumns = `id, user_id, street, city, postal_code`

func (s *sqlSession) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := s.tx.SelectContext(ctx, &users, `SELECT id, name FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *sqlSession) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	if err := s.tx.GetContext(ctx, &user, s.rebind(`SELECT id, name FROM users WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

func (s *sqlSession) InsertUser(ctx context.Context, user *domain.User) error {
	query := s.rebind(`INSERT INTO users (name) VALUES (?) RETURNING id`)
	if err := s.tx.QueryRowxContext(ctx, query, user.Name).Scan(&user.ID); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *sqlSession) UpdateUser(ctx context.Context, user *domain.User) (int64, error) {
	res, err := s.tx.ExecContext(ctx, s.rebind(`UPDATE users SET name = ? WHERE id = ?`), user.Name, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return res.RowsAffected()
}

func (s *sqlSession) ListAddresses(ctx context.Context, userIDs []int) ([]domain.Address, error) {
	addresses := []domain.Address{}
	if len(userIDs) == 0 {
		return addresses, nil
	}

	query, args, err := s.in(`SELECT `+addressColumns+` FROM addresses WHERE user_id IN (?) ORDER BY user_id, id`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build address query: %w", err)
	}
	if err := s.tx.SelectContext(ctx, &addresses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// LockAddress reads the address and, where the engine supports it, holds a
// row lock on it until the session ends. Returns nil when absent.
func (s *sqlSession) LockAddress(ctx context.Context, id int) (*domain.Address, error) {
	var address domain.Address
	query := s.rebind(`SELECT ` + addressColumns + ` FROM addresses WHERE id = ?` + s.lockClause())
	if err := s.tx.GetContext(ctx, &address, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock address %d: %w", id, err)
	}
	return &address, nil
}

func (s *sqlSession) InsertAddress(ctx context.Context, address *domain.Address) error {
	query := s.rebind(`INSERT INTO addresses (user_id, street, city, postal_code)
		VALUES (?, ?, ?, ?) RETURNING id`)
	err := s.tx.QueryRowxContext(ctx, query,
		address.UserID, address.Street, address.City, address.PostalCode,
	).Scan(&address.ID)
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

func (s *sqlSession) DeleteAddress(ctx context.Context, id int) (int64, error) {
	res, err := s.tx.ExecContext(ctx, s.rebind(`DELETE FROM addresses WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete address %d: %w", id, err)
	}
	return res.RowsAffected()
}

// AddressInUse reports whether any order delivers to the address.
func (s *sqlSession) AddressInUse(ctx context.Context, id int) (bool, error) {
	var inUse bool
	query := s.rebind(`SELECT EXISTS (SELECT 1 FROM orders WHERE delivery_address_id = ?)`)
	if err := s.tx.GetContext(ctx, &inUse, query, id); err != nil {
		return false, fmt.Errorf("failed to check address %d usage: %w", id, err)
	}
	return inUse, nil
}
