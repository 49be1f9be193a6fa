package storage

import (
	"context"
	"fmt"

	"overcooked-restaurant/dish-svc/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Table string

const (
	TableDishes     Table = "dishes"
	TableUsers      Table = "users"
	TableAddresses  Table = "addresses"
	TableOrders     Table = "orders"
	TableOrderItems Table = "order_items"
	TableReviews    Table = "reviews"
)

type DishStore interface {
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	ListDishesAfter(ctx context.Context, afterID, limit int) ([]domain.Dish, error)
	SearchDishesByName(ctx context.Context, fragment string) ([]domain.Dish, error)
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
	InsertDish(ctx context.Context, dish *domain.Dish) error
	UpdateDish(ctx context.Context, dish *domain.Dish) (int64, error)
	DeleteDish(ctx context.Context, id int) (int64, error)
	ListReviews(ctx context.Context, dishIDs []int) ([]domain.Review, error)
	InsertReview(ctx context.Context, review *domain.Review) error
}

type UserStore interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
	InsertUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) (int64, error)
	ListAddresses(ctx context.Context, userIDs []int) ([]domain.Address, error)
	LockAddress(ctx context.Context, id int) (*domain.Address, error)
	InsertAddress(ctx context.Context, address *domain.Address) error
	DeleteAddress(ctx context.Context, id int) (int64, error)
	AddressInUse(ctx context.Context, id int) (bool, error)
}

type OrderStore interface {
	InsertOrder(ctx context.Context, order *domain.Order) error
	InsertOrderItem(ctx context.Context, item *domain.OrderItem) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]domain.Order, error)
	ListOrderItems(ctx context.Context, orderIDs []int) ([]domain.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (int64, error)
	SaveOrderQRCode(ctx context.Context, id int, qr []byte) error
	GetOrderQRCode(ctx context.Context, id int) ([]byte, bool, error)
}

// Session is one isolated unit of work against the store. Everything done
// through it becomes visible to other sessions only on Flush or Commit.
type Session interface {
	DishStore
	UserStore
	OrderStore

	Count(ctx context.Context, table Table) (int, error)
	Flush(ctx context.Context) error
	Commit() error
	Rollback() error
}

type Opener interface {
	Begin(ctx context.Context) (Session, error)
}

// Run executes fn inside a fresh session. The session is committed when fn
// returns nil and rolled back on error or panic.
func Run(ctx context.Context, opener Opener, fn func(Session) error) (err error) {
	session, err := opener.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := session.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("storage: failed to rollback session after panic")
			}
			panic(p)
		}
		if err != nil {
			if rbErr := session.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("storage: failed to rollback session")
			}
			return
		}
		if commitErr := session.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit session: %w", commitErr)
		}
	}()

	return fn(session)
}

type sqlSession struct {
	gateway *Gateway
	tx      *sqlx.Tx
}

func (s *sqlSession) Flush(ctx context.Context) error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to flush session: %w", err)
	}
	tx, err := s.gateway.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen session: %w", err)
	}
	s.tx = tx
	return nil
}

func (s *sqlSession) Commit() error {
	return s.tx.Commit()
}

func (s *sqlSession) Rollback() error {
	return s.tx.Rollback()
}

func (s *sqlSession) Count(ctx context.Context, table Table) (int, error) {
	switch table {
	case TableDishes, TableUsers, TableAddresses, TableOrders, TableOrderItems, TableReviews:
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var count int
	if err := s.tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+string(table)); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

func (s *sqlSession) rebind(query string) string {
	return s.tx.Rebind(query)
}

// in expands an IN (?) clause for ids and rebinds it for the driver.
func (s *sqlSession) in(query string, ids []int) (string, []interface{}, error) {
	expanded, args, err := sqlx.In(query, ids)
	if err != nil {
		return "", nil, err
	}
	return s.rebind(expanded), args, nil
}

func (s *sqlSession) lockClause() string {
	if s.gateway.dialect == DialectPostgres {
		return " FOR UPDATE"
	}
	return ""
}

var _ Session = (*sqlSession)(nil)
