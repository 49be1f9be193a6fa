package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"overcooked-restaurant/dish-svc/internal/domain"
)

const orderColumns = `id, user_id, order_date, status, is_delivery, delivery_address_id, delivery_fee, total_price`

func (s *sqlSession) InsertOrder(ctx context.Context, order *domain.Order) error {
	query := s.rebind(`INSERT INTO orders
		(user_id, order_date, status, is_delivery, delivery_address_id, delivery_fee, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err := s.tx.QueryRowxContext(ctx, query,
		order.UserID, order.OrderDate, string(order.Status), order.IsDelivery,
		order.DeliveryAddressID, order.DeliveryFee, order.TotalPrice,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (s *sqlSession) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	query := s.rebind(`INSERT INTO order_items (order_id, dish_id, quantity, unit_price, line_total)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	err := s.tx.QueryRowxContext(ctx, query,
		item.OrderID, item.DishID, item.Quantity, item.UnitPrice, item.LineTotal,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}
	return nil
}

func (s *sqlSession) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := s.tx.GetContext(ctx, &order, s.rebind(`SELECT `+orderColumns+` FROM orders WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// ListOrdersByUser returns the user's orders, newest first.
func (s *sqlSession) ListOrdersByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	orders := []domain.Order{}
	query := s.rebind(`SELECT ` + orderColumns + ` FROM orders WHERE user_id = ? ORDER BY order_date DESC, id DESC`)
	if err := s.tx.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list orders for user %d: %w", userID, err)
	}
	return orders, nil
}

func (s *sqlSession) ListOrderItems(ctx context.Context, orderIDs []int) ([]domain.OrderItem, error) {
	items := []domain.OrderItem{}
	if len(orderIDs) == 0 {
		return items, nil
	}

	query, args, err := s.in(`SELECT id, order_id, dish_id, quantity, unit_price, line_total
		FROM order_items WHERE order_id IN (?) ORDER BY order_id, id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build order item query: %w", err)
	}
	if err := s.tx.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}

func (s *sqlSession) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (int64, error) {
	res, err := s.tx.ExecContext(ctx, s.rebind(`UPDATE orders SET status = ? WHERE id = ?`), string(status), id)
	if err != nil {
		return 0, fmt.Errorf("failed to update order %d status: %w", id, err)
	}
	return res.RowsAffected()
}

func (s *sqlSession) SaveOrderQRCode(ctx context.Context, id int, qr []byte) error {
	if _, err := s.tx.ExecContext(ctx, s.rebind(`UPDATE orders SET qr_code = ? WHERE id = ?`), qr, id); err != nil {
		return fmt.Errorf("failed to save qr code for order %d: %w", id, err)
	}
	return nil
}

// GetOrderQRCode returns the stored PNG. found is false when the order
// does not exist; a nil slice with found true means no code was stored yet.
func (s *sqlSession) GetOrderQRCode(ctx context.Context, id int) ([]byte, bool, error) {
	var qr []byte
	if err := s.tx.QueryRowxContext(ctx, s.rebind(`SELECT qr_code FROM orders WHERE id = ?`), id).Scan(&qr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get qr code for order %d: %w", id, err)
	}
	return qr, true, nil
}
