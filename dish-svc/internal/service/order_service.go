package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/storage"

	"github.com/rs/zerolog/log"
)

type OrderService struct {
	store     storage.Opener
	qrEncoder QRGenerator
	now       func() time.Time
}

// NewOrderService wires order placement. qr may be nil, in which case no
// codes are generated.
func NewOrderService(store storage.Opener, qr QRGenerator) *OrderService {
	return &OrderService{
		store:     store,
		qrEncoder: qr,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Place prices and stores a new order. Unit prices are taken from the current
// dish rows; whatever the caller put into prices and totals is overwritten.
func (s *OrderService) Place(ctx context.Context, order *domain.Order) error {
	if err := validateNewOrder(order); err != nil {
		log.Warn().Err(err).Int("user_id", order.UserID).Msg("service: rejected order")
		return err
	}

	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		user, err := sess.GetUser(ctx, order.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrMissingReference
		}

		if order.IsDelivery {
			address, err := sess.LockAddress(ctx, *order.DeliveryAddressID)
			if err != nil {
				return err
			}
			if address == nil {
				return domain.ErrMissingReference
			}
			if address.UserID != order.UserID {
				return &domain.ValidationError{Field: "delivery_address_id", Reason: "must belong to the ordering user"}
			}
		}

		prices := make(map[int]float64, len(order.Items))
		for i := range order.Items {
			item := &order.Items[i]
			price, ok := prices[item.DishID]
			if !ok {
				dish, err := sess.GetDish(ctx, item.DishID)
				if err != nil {
					return err
				}
				if dish == nil {
					return domain.ErrMissingReference
				}
				price = dish.Price
				prices[item.DishID] = price
			}
			item.ID, item.OrderID = 0, 0
			item.UnitPrice = price
		}

		order.ID = 0
		order.Status = domain.StatusPlaced
		order.OrderDate = s.now()
		order.CalculateTotal()

		if err := sess.InsertOrder(ctx, order); err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := sess.InsertOrderItem(ctx, &order.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			log.Warn().Err(err).Int("user_id", order.UserID).Msg("service: rejected order")
			return err
		case errors.Is(err, domain.ErrMissingReference) || storage.IsForeignKeyViolation(err):
			log.Warn().Int("user_id", order.UserID).Msg("service: order references missing rows")
			return domain.ErrMissingReference
		}
		log.Error().Err(err).Int("user_id", order.UserID).Msg("service: failed to place order")
		return fmt.Errorf("service: failed to place order: %w", err)
	}

	log.Info().Int("order_id", order.ID).Int("user_id", order.UserID).Float64("total", order.TotalPrice).Msg("service: order placed")
	s.storeQRCode(ctx, order.ID)
	return nil
}

func validateNewOrder(order *domain.Order) error {
	if len(order.Items) == 0 {
		return &domain.ValidationError{Field: "items", Reason: "order must contain at least one item"}
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return &domain.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
		}
	}

	if !order.IsDelivery {
		order.DeliveryAddressID = nil
		order.DeliveryFee = 0
		return nil
	}
	if order.DeliveryAddressID == nil {
		return &domain.ValidationError{Field: "delivery_address_id", Reason: "required for delivery orders"}
	}
	if order.DeliveryFee < 0 {
		return &domain.ValidationError{Field: "delivery_fee", Reason: "must not be negative"}
	}
	if !domain.WholeCents(order.DeliveryFee) {
		return &domain.ValidationError{Field: "delivery_fee", Reason: "must not have more than two decimals"}
	}
	return nil
}

func (s *OrderService) storeQRCode(ctx context.Context, orderID int) {
	if s.qrEncoder == nil {
		return
	}

	qr, err := s.qrEncoder.Generate(orderID)
	if err != nil {
		log.Error().Err(err).Int("order_id", orderID).Msg("service: failed to generate qr code")
		return
	}
	err = storage.Run(ctx, s.store, func(sess storage.Session) error {
		return sess.SaveOrderQRCode(ctx, orderID, qr)
	})
	if err != nil {
		log.Error().Err(err).Int("order_id", orderID).Msg("service: failed to store qr code")
	}
}

// GetByID returns nil without error when the order does not exist.
func (s *OrderService) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	var order *domain.Order
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		var err error
		if order, err = sess.GetOrder(ctx, id); err != nil || order == nil {
			return err
		}
		order.Items, err = sess.ListOrderItems(ctx, []int{id})
		return err
	})
	if err != nil {
		log.Error().Err(err).Int("order_id", id).Msg("service: failed to get order")
		return nil, fmt.Errorf("service: failed to get order: %w", err)
	}
	return order, nil
}

// ListForUser returns the user's orders with their items, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID int) ([]domain.Order, error) {
	var orders []domain.Order
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		var err error
		if orders, err = sess.ListOrdersByUser(ctx, userID); err != nil || len(orders) == 0 {
			return err
		}

		ids := make([]int, len(orders))
		for i, o := range orders {
			ids[i] = o.ID
		}
		items, err := sess.ListOrderItems(ctx, ids)
		if err != nil {
			return err
		}

		byOrder := make(map[int][]domain.OrderItem, len(orders))
		for _, item := range items {
			byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
		}
		for i := range orders {
			orders[i].Items = byOrder[orders[i].ID]
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("service: failed to list user orders")
		return nil, fmt.Errorf("service: failed to list user orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) error {
	if !status.Valid() {
		return &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown order status %q", status)}
	}

	var current domain.OrderStatus
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		order, err := sess.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}

		current = order.Status
		if !current.CanTransitionTo(status) {
			return domain.ErrInvalidStatusTransition
		}

		affected, err := sess.UpdateOrderStatus(ctx, id, status)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			log.Warn().Int("order_id", id).Stringer("new_status", status).Msg("service: order not found, cannot update status")
			return domain.ErrOrderNotFound
		case errors.Is(err, domain.ErrInvalidStatusTransition):
			log.Warn().Int("order_id", id).Stringer("current_status", current).Stringer("new_status", status).Msg("service: invalid status transition")
			return fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatusTransition, current, status)
		}
		log.Error().Err(err).Int("order_id", id).Msg("service: failed to update order status")
		return fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Int("order_id", id).Stringer("status", status).Msg("service: order status updated")
	return nil
}

// QRCode returns the order's review QR code as a PNG, generating and storing
// it first when none was saved at placement time.
func (s *OrderService) QRCode(ctx context.Context, id int) ([]byte, error) {
	var qr []byte
	err := storage.Run(ctx, s.store, func(sess storage.Session) error {
		stored, found, err := sess.GetOrderQRCode(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrOrderNotFound
		}
		qr = stored
		if len(qr) > 0 || s.qrEncoder == nil {
			return nil
		}

		if qr, err = s.qrEncoder.Generate(id); err != nil {
			return fmt.Errorf("failed to generate qr code: %w", err)
		}
		return sess.SaveOrderQRCode(ctx, id, qr)
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		log.Error().Err(err).Int("order_id", id).Msg("service: failed to load qr code")
		return nil, fmt.Errorf("service: failed to load qr code: %w", err)
	}
	return qr, nil
}

func (s *OrderService) QRLink(orderID int) string {
	return fmt.Sprintf("/api/orders/%d/qrcode", orderID)
}
