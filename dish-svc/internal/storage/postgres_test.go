package storage_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresMock(t *testing.T) (*storage.Gateway, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return storage.NewGateway(sqlx.NewDb(mockDB, "postgres"), storage.DialectPostgres), mock
}

func TestPostgres_LockAddressUsesRowLock(t *testing.T) {
	gw, mock := setupPostgresMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, street, city, postal_code FROM addresses WHERE id = $1 FOR UPDATE`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "street", "city", "postal_code"}).
			AddRow(7, 1, "123 Main St", "Springfield", "12345"))
	mock.ExpectCommit()

	err := storage.Run(ctx, gw, func(s storage.Session) error {
		address, err := s.LockAddress(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Springfield", address.City)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SearchEscapesWildcards(t *testing.T) {
	gw, mock := setupPostgresMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE name ILIKE $1 ESCAPE '\' ORDER BY id`)).
		WithArgs(`%50\% off\_deal%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "image_path"}))
	mock.ExpectCommit()

	err := storage.Run(ctx, gw, func(s storage.Session) error {
		dishes, err := s.SearchDishesByName(ctx, "50% OFF_deal")
		require.NoError(t, err)
		assert.Empty(t, dishes)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListReviewsExpandsIDs(t *testing.T) {
	gw, mock := setupPostgresMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE dish_id IN ($1, $2) ORDER BY dish_id, id`)).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "dish_id", "user_id", "rating", "comment", "review_date"}))
	mock.ExpectCommit()

	err := storage.Run(ctx, gw, func(s storage.Session) error {
		_, err := s.ListReviews(ctx, []int{1, 2})
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RunRollsBackOnError(t *testing.T) {
	gw, mock := setupPostgresMock(t)
	ctx := context.Background()

	fkErr := &pq.Error{Code: pq.ErrorCode(pgerrcode.ForeignKeyViolation), Constraint: "orders_delivery_address_id_fkey"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM addresses WHERE id = $1`)).
		WithArgs(3).
		WillReturnError(fkErr)
	mock.ExpectRollback()

	err := storage.Run(ctx, gw, func(s storage.Session) error {
		_, err := s.DeleteAddress(ctx, 3)
		return err
	})
	require.Error(t, err)
	assert.True(t, storage.IsForeignKeyViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CommitFailureSurfaces(t *testing.T) {
	gw, mock := setupPostgresMock(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1 WHERE id = $2`)).
		WithArgs("Preparing", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err := storage.Run(ctx, gw, func(s storage.Session) error {
		_, err := s.UpdateOrderStatus(ctx, 4, domain.StatusPreparing)
		return err
	})
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_BeginFailure(t *testing.T) {
	gw, mock := setupPostgresMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := storage.Run(context.Background(), gw, func(storage.Session) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: errors.New("fk"), want: false},
		{name: "pq fk", err: &pq.Error{Code: pq.ErrorCode(pgerrcode.ForeignKeyViolation)}, want: true},
		{name: "pq wrapped", err: fmt.Errorf("delete: %w", &pq.Error{Code: pq.ErrorCode(pgerrcode.ForeignKeyViolation)}), want: true},
		{name: "pq unique", err: &pq.Error{Code: pq.ErrorCode(pgerrcode.UniqueViolation)}, want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, storage.IsForeignKeyViolation(testCase.err))
		})
	}
}
