package domain_test

import (
	"errors"
	"testing"

	"overcooked-restaurant/dish-svc/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDish_Validate(t *testing.T) {
	tests := []struct {
		name    string
		dish    domain.Dish
		wantErr bool
		field   string
	}{
		{name: "valid", dish: domain.Dish{Name: "Soup", Price: 4.5}},
		{name: "lower bound", dish: domain.Dish{Name: "Mint", Price: 0.01}},
		{name: "upper bound", dish: domain.Dish{Name: "Truffle", Price: 1000}},
		{name: "empty name", dish: domain.Dish{Name: "  ", Price: 3}, wantErr: true, field: "name"},
		{name: "zero price", dish: domain.Dish{Name: "Water", Price: 0}, wantErr: true, field: "price"},
		{name: "negative price", dish: domain.Dish{Name: "Refund", Price: -1}, wantErr: true, field: "price"},
		{name: "too expensive", dish: domain.Dish{Name: "Gold", Price: 1000.01}, wantErr: true, field: "price"},
		{name: "cents", dish: domain.Dish{Name: "Pizza", Price: 8.99}},
		{name: "sub-cent price", dish: domain.Dish{Name: "Pizza", Price: 8.999}, wantErr: true, field: "price"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.dish.Validate()
			if !testCase.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
			var validationErr *domain.ValidationError
			if assert.True(t, errors.As(err, &validationErr)) {
				assert.Equal(t, testCase.field, validationErr.Field)
			}
		})
	}
}

func TestReview_Validate(t *testing.T) {
	for rating := 0; rating <= 6; rating++ {
		err := (&domain.Review{Rating: rating}).Validate()
		if rating >= 1 && rating <= 5 {
			assert.NoError(t, err, "rating %d", rating)
		} else {
			assert.ErrorIs(t, err, domain.ErrValidation, "rating %d", rating)
		}
	}
}

func TestUserAndAddress_Validate(t *testing.T) {
	assert.NoError(t, (&domain.User{Name: "Alice"}).Validate())
	assert.ErrorIs(t, (&domain.User{}).Validate(), domain.ErrValidation)

	assert.NoError(t, (&domain.Address{Street: "1 Road", City: "Town"}).Validate())
	assert.ErrorIs(t, (&domain.Address{City: "Town"}).Validate(), domain.ErrValidation)
	assert.ErrorIs(t, (&domain.Address{Street: "1 Road"}).Validate(), domain.ErrValidation)
}

func TestOrder_CalculateTotal(t *testing.T) {
	order := domain.Order{
		IsDelivery:  true,
		DeliveryFee: 5,
		Items: []domain.OrderItem{
			{Quantity: 2, UnitPrice: 8.99},
			{Quantity: 1, UnitPrice: 5.50},
		},
	}
	order.CalculateTotal()

	assert.Equal(t, 17.98, order.Items[0].LineTotal)
	assert.Equal(t, 5.50, order.Items[1].LineTotal)
	assert.Equal(t, 28.48, order.TotalPrice)

	order.IsDelivery = false
	order.CalculateTotal()
	assert.Equal(t, 23.48, order.TotalPrice)
}

func TestOrderStatus_Transitions(t *testing.T) {
	assert.True(t, domain.StatusPlaced.CanTransitionTo(domain.StatusPreparing))
	assert.True(t, domain.StatusPreparing.CanTransitionTo(domain.StatusDelivered))
	assert.False(t, domain.StatusDelivered.CanTransitionTo(domain.StatusPlaced))
	assert.False(t, domain.StatusCancelled.CanTransitionTo(domain.StatusPreparing))
	assert.True(t, domain.StatusOutForDelivery.Valid())
	assert.False(t, domain.OrderStatus("Lost").Valid())
}

func TestConstraintError(t *testing.T) {
	assert.ErrorIs(t, domain.ErrAddressInUse, domain.ErrConstraint)
	assert.ErrorIs(t, domain.ErrDishInUse, domain.ErrConstraint)
	assert.NotErrorIs(t, domain.ErrAddressInUse, domain.ErrDishInUse)
	assert.Equal(t, "Cannot delete address because it is used in one or more orders.", domain.ErrAddressInUse.Error())
}

func TestWholeCents(t *testing.T) {
	for _, v := range []float64{0, 0.01, 5.5, 8.99, 13.99, 999.99} {
		assert.True(t, domain.WholeCents(v), "%v", v)
	}
	for _, v := range []float64{0.001, 8.999, 4.125} {
		assert.False(t, domain.WholeCents(v), "%v", v)
	}
}
