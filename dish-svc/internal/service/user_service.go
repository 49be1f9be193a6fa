package service

import (
	"context"
	"errors"
	"fmt"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/storage"

	"github.com/rs/zerolog/log"
)

type UserService struct {
	store storage.Opener
}

func NewUserService(store storage.Opener) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		var err error
		if users, err = sess.ListUsers(ctx); err != nil {
			return err
		}
		return attachAddresses(ctx, sess, users)
	})
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list users")
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}
	return users, nil
}

// GetByID returns nil without error when the user does not exist.
func (s *UserService) GetByID(ctx context.Context, id int) (*domain.User, error) {
	var user *domain.User
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		var err error
		if user, err = sess.GetUser(ctx, id); err != nil || user == nil {
			return err
		}
		user.Addresses, err = sess.ListAddresses(ctx, []int{id})
		return err
	})
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("service: failed to get user")
		return nil, fmt.Errorf("service: failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) AddOrUpdate(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		if user.ID == 0 {
			return sess.InsertUser(ctx, user)
		}
		affected, err := sess.UpdateUser(ctx, user)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			log.Warn().Int("user_id", user.ID).Msg("service: user not found, cannot update")
			return domain.ErrUserNotFound
		}
		log.Error().Err(err).Int("user_id", user.ID).Msg("service: failed to save user")
		return fmt.Errorf("service: failed to save user: %w", err)
	}

	log.Info().Int("user_id", user.ID).Msg("service: user saved")
	return nil
}

// DeleteAddress removes an address that no order delivers to. Deleting an
// address that does not exist succeeds without doing anything.
func (s *UserService) DeleteAddress(ctx context.Context, addressID int) error {
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		address, err := sess.LockAddress(ctx, addressID)
		if err != nil {
			return err
		}

		inUse, err := sess.AddressInUse(ctx, addressID)
		if err != nil {
			return err
		}
		if inUse {
			return domain.ErrAddressInUse
		}

		if address == nil {
			return nil
		}
		_, err = sess.DeleteAddress(ctx, addressID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAddressInUse) || storage.IsForeignKeyViolation(err) {
			log.Warn().Int("address_id", addressID).Msg("service: address is used by orders, not deleted")
			return domain.ErrAddressInUse
		}
		log.Error().Err(err).Int("address_id", addressID).Msg("service: failed to delete address")
		return fmt.Errorf("service: failed to delete address: %w", err)
	}

	log.Info().Int("address_id", addressID).Msg("service: address deleted")
	return nil
}

// AddAddress attaches a new address to an existing user.
func (s *UserService) AddAddress(ctx context.Context, userID int, address *domain.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		user, err := sess.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		address.UserID = userID
		return sess.InsertAddress(ctx, address)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || storage.IsForeignKeyViolation(err) {
			log.Warn().Int("user_id", userID).Msg("service: user not found, address not added")
			return domain.ErrUserNotFound
		}
		log.Error().Err(err).Int("user_id", userID).Msg("service: failed to add address")
		return fmt.Errorf("service: failed to add address: %w", err)
	}

	log.Info().Int("user_id", userID).Int("address_id", address.ID).Msg("service: address added")
	return nil
}

func attachAddresses(ctx context.Context, sess storage.Session, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]int, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	addresses, err := sess.ListAddresses(ctx, ids)
	if err != nil {
		return err
	}

	byUser := make(map[int][]domain.Address, len(users))
	for _, a := range addresses {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}
	for i := range users {
		users[i].Addresses = byUser[users[i].ID]
		if users[i].Addresses == nil {
			users[i].Addresses = []domain.Address{}
		}
	}
	return nil
}
