package seed_test

import (
	"context"
	"testing"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/seed"
	"overcooked-restaurant/dish-svc/internal/storage"
	"overcooked-restaurant/dish-svc/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTables = []storage.Table{
	storage.TableDishes, storage.TableUsers, storage.TableAddresses,
	storage.TableOrders, storage.TableOrderItems, storage.TableReviews,
}

func counts(t *testing.T, gw *storage.Gateway) map[storage.Table]int {
	t.Helper()
	out := make(map[storage.Table]int, len(allTables))
	err := storage.Run(context.Background(), gw, func(s storage.Session) error {
		for _, table := range allTables {
			n, err := s.Count(context.Background(), table)
			if err != nil {
				return err
			}
			out[table] = n
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestDefaults(t *testing.T) {
	data, err := seed.Defaults()
	require.NoError(t, err)

	require.Len(t, data.Dishes, 3)
	assert.Equal(t, "Margherita Pizza", data.Dishes[0].Name)
	assert.Equal(t, 5.50, data.Dishes[2].Price)
	assert.Len(t, data.Users, 2)
	assert.Len(t, data.Addresses, 2)
	require.Len(t, data.Orders, 1)
	assert.Equal(t, "123 Main St", data.Orders[0].DeliveryAddress)
	assert.Len(t, data.Reviews, 2)
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	gw := storagetest.NewSQLite(t)
	ctx := context.Background()

	data, err := seed.Defaults()
	require.NoError(t, err)
	seeder := seed.NewSeeder(gw, data)

	require.NoError(t, seeder.Run(ctx))
	first := counts(t, gw)
	assert.Equal(t, map[storage.Table]int{
		storage.TableDishes:     3,
		storage.TableUsers:      2,
		storage.TableAddresses:  2,
		storage.TableOrders:     1,
		storage.TableOrderItems: 1,
		storage.TableReviews:    2,
	}, first)

	require.NoError(t, seeder.Run(ctx))
	assert.Equal(t, first, counts(t, gw))
}

func TestSeeder_ResolvesReferences(t *testing.T) {
	gw := storagetest.NewSQLite(t)
	ctx := context.Background()

	data, err := seed.Defaults()
	require.NoError(t, err)
	require.NoError(t, seed.NewSeeder(gw, data).Run(ctx))

	err = storage.Run(ctx, gw, func(s storage.Session) error {
		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		alice := users[0]
		assert.Equal(t, "Alice", alice.Name)

		orders, err := s.ListOrdersByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		order := orders[0]
		assert.Equal(t, domain.StatusDelivered, order.Status)
		assert.True(t, order.IsDelivery)
		assert.Equal(t, 13.99, order.TotalPrice)
		require.NotNil(t, order.DeliveryAddressID)

		address, err := s.LockAddress(ctx, *order.DeliveryAddressID)
		require.NoError(t, err)
		assert.Equal(t, "123 Main St", address.Street)
		assert.Equal(t, alice.ID, address.UserID)

		items, err := s.ListOrderItems(ctx, []int{order.ID})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 8.99, items[0].LineTotal)

		dishes, err := s.SearchDishesByName(ctx, "margherita")
		require.NoError(t, err)
		require.Len(t, dishes, 1)
		reviews, err := s.ListReviews(ctx, []int{dishes[0].ID})
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.True(t, reviews[0].ReviewDate.After(reviews[1].ReviewDate))
		return nil
	})
	require.NoError(t, err)
}

func TestSeeder_KeepsExistingRows(t *testing.T) {
	gw := storagetest.NewSQLite(t)
	ctx := context.Background()

	err := storage.Run(ctx, gw, func(s storage.Session) error {
		return s.InsertDish(ctx, &domain.Dish{Name: "Margherita Pizza", Price: 9.50})
	})
	require.NoError(t, err)

	data, err := seed.Defaults()
	require.NoError(t, err)
	require.NoError(t, seed.NewSeeder(gw, data).Run(ctx))

	c := counts(t, gw)
	assert.Equal(t, 1, c[storage.TableDishes])
	assert.Equal(t, 2, c[storage.TableUsers])
	assert.Equal(t, 2, c[storage.TableReviews])

	err = storage.Run(ctx, gw, func(s storage.Session) error {
		users, err := s.ListUsers(ctx)
		require.NoError(t, err)
		orders, err := s.ListOrdersByUser(ctx, users[0].ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, 14.50, orders[0].TotalPrice)
		return nil
	})
	require.NoError(t, err)
}

func TestSeeder_FailureKeepsFlushedGroups(t *testing.T) {
	gw := storagetest.NewSQLite(t)
	ctx := context.Background()

	data, err := seed.Defaults()
	require.NoError(t, err)
	data.Reviews = append(data.Reviews, seed.ReviewSeed{Dish: "Sushi", User: "Alice", Rating: 3})

	err = seed.NewSeeder(gw, data).Run(ctx)
	require.ErrorContains(t, err, `unknown dish "Sushi"`)

	c := counts(t, gw)
	assert.Equal(t, 3, c[storage.TableDishes])
	assert.Equal(t, 2, c[storage.TableAddresses])
	assert.Equal(t, 1, c[storage.TableOrders])
	assert.Zero(t, c[storage.TableOrderItems])
	assert.Zero(t, c[storage.TableReviews])
}

func TestSeeder_RejectsInvalidRows(t *testing.T) {
	gw := storagetest.NewSQLite(t)

	data := &seed.Data{Dishes: []seed.DishSeed{{Name: "Free lunch", Price: 0}}}
	err := seed.NewSeeder(gw, data).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, counts(t, gw)[storage.TableDishes])
}

func TestParse_Malformed(t *testing.T) {
	_, err := seed.Parse([]byte("dishes: [name: x"))
	assert.Error(t, err)
}
