package service_test

import (
	"context"
	"testing"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/seed"
	"overcooked-restaurant/dish-svc/internal/storage"
	"overcooked-restaurant/dish-svc/internal/storage/storagetest"

	"github.com/stretchr/testify/require"
)

// newSeededStore returns a fresh in-memory store holding the default data.
func newSeededStore(t *testing.T) *storage.Gateway {
	t.Helper()
	gw := storagetest.NewSQLite(t)
	data, err := seed.Defaults()
	require.NoError(t, err)
	require.NoError(t, seed.NewSeeder(gw, data).Run(context.Background()))
	return gw
}

func countRows(t *testing.T, gw *storage.Gateway, table storage.Table) int {
	t.Helper()
	var n int
	err := storage.Run(context.Background(), gw, func(s storage.Session) error {
		var err error
		n, err = s.Count(context.Background(), table)
		return err
	})
	require.NoError(t, err)
	return n
}

func dishNamed(t *testing.T, gw *storage.Gateway, name string) domain.Dish {
	t.Helper()
	var found *domain.Dish
	err := storage.Run(context.Background(), gw, func(s storage.Session) error {
		dishes, err := s.ListDishes(context.Background())
		for i := range dishes {
			if dishes[i].Name == name {
				found = &dishes[i]
			}
		}
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, found, "dish %q not seeded", name)
	return *found
}

func userNamed(t *testing.T, gw *storage.Gateway, name string) domain.User {
	t.Helper()
	var found *domain.User
	err := storage.Run(context.Background(), gw, func(s storage.Session) error {
		users, err := s.ListUsers(context.Background())
		for i := range users {
			if users[i].Name == name {
				found = &users[i]
			}
		}
		if found != nil {
			found.Addresses, err = s.ListAddresses(context.Background(), []int{found.ID})
		}
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, found, "user %q not seeded", name)
	return *found
}

func names(dishes []domain.Dish) []string {
	out := make([]string, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, d.Name)
	}
	return out
}
