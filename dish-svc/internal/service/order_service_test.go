package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"overcooked-restaurant/dish-svc/internal/domain"
	"overcooked-restaurant/dish-svc/internal/mocks"
	"overcooked-restaurant/dish-svc/internal/service"
	"overcooked-restaurant/dish-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fakePNG = []byte{0x89, 'P', 'N', 'G', 1}

func TestOrderService_PlaceDeliveryOrder(t *testing.T) {
	gw := newSeededStore(t)
	ctx := context.Background()
	qr := mocks.NewQRGenerator(t)
	svc := service.NewOrderService(gw, qr)

	pizza := dishNamed(t, gw, "Margherita Pizza")
	alice := userNamed(t, gw, "Alice")
	addressID := alice.Addresses[0].ID

	order := &domain.Order{
		UserID:            alice.ID,
		IsDelivery:        true,
		DeliveryAddressID: &addressID,
		DeliveryFee:       5,
		TotalPrice:        1,
		Status:            domain.StatusDelivered,
		Items:             []domain.OrderItem{{DishID: pizza.ID, Quantity: 2, UnitPrice: 0.5}},
	}
	qr.On("Generate", mock.AnythingOfType("int")).Return(fakePNG, nil).Once()

	require.NoError(t, svc.Place(ctx, order))

	assert.NotZero(t, order.ID)
	assert.Equal(t, domain.StatusPlaced, order.Status)
	assert.False(t, order.OrderDate.IsZero())
	assert.Equal(t, 8.99, order.Items[0].UnitPrice)
	assert.Equal(t, 17.98, order.Items[0].LineTotal)
	assert.Equal(t, 22.98, order.TotalPrice)

	stored, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 22.98, stored.TotalPrice)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 17.98, stored.Items[0].LineTotal)

	png, err := svc.QRCode(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, fakePNG, png)
}

func TestOrderService_PlacePickupOrderDropsDeliveryFields(t *testing.T) {
	gw := newSeededStore(t)
	svc := service.NewOrderService(gw, nil)
	burger := dishNamed(t, gw, "Cheeseburger")
	bob := userNamed(t, gw, "Bob")
	addressID := bob.Addresses[0].ID

	order := &domain.Order{
		UserID:            bob.ID,
		DeliveryAddressID: &addressID,
		DeliveryFee:       5,
		Items: []domain.OrderItem{
			{DishID: burger.ID, Quantity: 1},
			{DishID: burger.ID, Quantity: 3},
		},
	}
	require.NoError(t, svc.Place(context.Background(), order))

	assert.Nil(t, order.DeliveryAddressID)
	assert.Zero(t, order.DeliveryFee)
	assert.Equal(t, 29.96, order.TotalPrice)
	assert.Equal(t, 22.47, order.Items[1].LineTotal)
}

func TestOrderService_PlaceRejects(t *testing.T) {
	gw := newSeededStore(t)
	ctx := context.Background()
	pizza := dishNamed(t, gw, "Margherita Pizza")
	alice := userNamed(t, gw, "Alice")
	bob := userNamed(t, gw, "Bob")
	aliceAddress := alice.Addresses[0].ID
	bobAddress := bob.Addresses[0].ID
	missingAddress := 9999

	item := []domain.OrderItem{{DishID: pizza.ID, Quantity: 1}}

	tests := []struct {
		name    string
		order   domain.Order
		wantErr error
	}{
		{name: "no items", order: domain.Order{UserID: alice.ID}, wantErr: domain.ErrValidation},
		{name: "zero quantity", order: domain.Order{UserID: alice.ID, Items: []domain.OrderItem{{DishID: pizza.ID}}}, wantErr: domain.ErrValidation},
		{name: "delivery without address", order: domain.Order{UserID: alice.ID, IsDelivery: true, Items: item}, wantErr: domain.ErrValidation},
		{name: "negative fee", order: domain.Order{UserID: alice.ID, IsDelivery: true, DeliveryAddressID: &aliceAddress, DeliveryFee: -1, Items: item}, wantErr: domain.ErrValidation},
		{name: "sub-cent fee", order: domain.Order{UserID: alice.ID, IsDelivery: true, DeliveryAddressID: &aliceAddress, DeliveryFee: 2.005, Items: item}, wantErr: domain.ErrValidation},
		{name: "foreign address", order: domain.Order{UserID: alice.ID, IsDelivery: true, DeliveryAddressID: &bobAddress, Items: item}, wantErr: domain.ErrValidation},
		{name: "missing address", order: domain.Order{UserID: alice.ID, IsDelivery: true, DeliveryAddressID: &missingAddress, Items: item}, wantErr: domain.ErrMissingReference},
		{name: "missing user", order: domain.Order{UserID: 9999, Items: item}, wantErr: domain.ErrMissingReference},
		{name: "missing dish", order: domain.Order{UserID: alice.ID, Items: []domain.OrderItem{{DishID: 9999, Quantity: 1}}}, wantErr: domain.ErrMissingReference},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := service.NewOrderService(gw, mocks.NewQRGenerator(t))
			before := countRows(t, gw, storage.TableOrders)

			order := testCase.order
			err := svc.Place(ctx, &order)

			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Equal(t, before, countRows(t, gw, storage.TableOrders))
		})
	}
}

func TestOrderService_ListForUser(t *testing.T) {
	gw := newSeededStore(t)
	svc := service.NewOrderService(gw, nil)
	ctx := context.Background()
	alice := userNamed(t, gw, "Alice")
	salad := dishNamed(t, gw, "Caesar Salad")

	newer := &domain.Order{UserID: alice.ID, Items: []domain.OrderItem{{DishID: salad.ID, Quantity: 2}}}
	require.NoError(t, svc.Place(ctx, newer))

	orders, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, 11.0, orders[0].TotalPrice)
	require.Len(t, orders[1].Items, 1)
	assert.Equal(t, 13.99, orders[1].TotalPrice)

	none, err := svc.ListForUser(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	gw := newSeededStore(t)
	svc := service.NewOrderService(gw, nil)
	ctx := context.Background()
	alice := userNamed(t, gw, "Alice")
	pizza := dishNamed(t, gw, "Margherita Pizza")

	order := &domain.Order{UserID: alice.ID, Items: []domain.OrderItem{{DishID: pizza.ID, Quantity: 1}}}
	require.NoError(t, svc.Place(ctx, order))

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, domain.StatusPreparing))

	err := svc.UpdateStatus(ctx, order.ID, domain.StatusPlaced)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, domain.StatusDelivered))
	assert.ErrorIs(t, svc.UpdateStatus(ctx, order.ID, domain.StatusCancelled), domain.ErrInvalidStatusTransition)

	got, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, got.Status)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, 9999, domain.StatusPreparing), domain.ErrOrderNotFound)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, order.ID, domain.OrderStatus("Lost")), domain.ErrValidation)
}

func TestOrderService_QRCodeRegeneratesOnce(t *testing.T) {
	gw := newSeededStore(t)
	ctx := context.Background()
	qr := mocks.NewQRGenerator(t)
	svc := service.NewOrderService(gw, qr)

	orders, err := svc.ListForUser(ctx, userNamed(t, gw, "Alice").ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	id := orders[0].ID

	qr.On("Generate", id).Return(fakePNG, nil).Once()

	first, err := svc.QRCode(ctx, id)
	require.NoError(t, err)
	second, err := svc.QRCode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, fakePNG, first)
	assert.Equal(t, first, second)

	_, err = svc.QRCode(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_QRFailureDoesNotFailPlacement(t *testing.T) {
	gw := newSeededStore(t)
	ctx := context.Background()
	qr := mocks.NewQRGenerator(t)
	svc := service.NewOrderService(gw, qr)

	order := &domain.Order{
		UserID: userNamed(t, gw, "Bob").ID,
		Items:  []domain.OrderItem{{DishID: dishNamed(t, gw, "Cheeseburger").ID, Quantity: 1}},
	}
	qr.On("Generate", mock.Anything).Return(nil, errors.New("too much data")).Once()

	require.NoError(t, svc.Place(ctx, order))
	assert.NotZero(t, order.ID)
}

func TestDefaultQRGenerator(t *testing.T) {
	gen := service.DefaultQRGenerator{BaseURL: "http://localhost:8080"}

	assert.Equal(t, "http://localhost:8080/review.html?order_id=7", gen.Link(7))

	png, err := gen.Generate(7)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestOrderService_QRLink(t *testing.T) {
	assert.Equal(t, "/api/orders/12/qrcode", service.NewOrderService(nil, nil).QRLink(12))
}
