package integration

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	basketapp "github.com/lewisgroup/storefront/internal/application/basket"
	orderapp "github.com/lewisgroup/storefront/internal/application/order"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/order"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"github.com/lewisgroup/storefront/internal/infrastructure/email"
	"github.com/lewisgroup/storefront/internal/infrastructure/payment"
	"github.com/lewisgroup/storefront/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	db        *persistence.Database
	products  *persistence.GormProductRepository
	baskets   *persistence.GormBasketRepository
	orders    *persistence.GormOrderRepository
	basketSvc *basketapp.BasketService
	orderSvc  *orderapp.OrderService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()

	products := persistence.NewGormProductRepository(db.DB)
	baskets := persistence.NewGormBasketRepository(db.DB)
	orders := persistence.NewGormOrderRepository(db.DB)
	users := persistence.NewGormUserRepository(db.DB)

	return &checkoutFixture{
		db:        db,
		products:  products,
		baskets:   baskets,
		orders:    orders,
		basketSvc: basketapp.NewBasketService(baskets, products, log),
		orderSvc: orderapp.NewOrderService(
			orders, baskets, products, users, db,
			payment.NewLocalIntentProvider(log), email.NewNoopMailer(log),
			0.12, log,
		),
	}
}

func (f *checkoutFixture) seedProduct(t *testing.T, name string, price, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, name+" description", price, "Audio", "Guitars", stock)
	require.NoError(t, err)
	require.NoError(t, f.products.Save(t.Context(), p))
	return p
}

func shippingAddress() orderapp.ShippingAddressDTO {
	return orderapp.ShippingAddressDTO{
		FullName: "Nazim Hassan",
		Address1: "12 Rose Lane",
		City:     "London",
		Zip:      "E1 6AN",
		Country:  "United Kingdom",
	}
}

func TestCheckoutFlow_PlaceAndCancel(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()
	buyerID := uuid.NewString()

	guitar := f.seedProduct(t, "Les Paul", 89900, 10)
	pedal := f.seedProduct(t, "Overdrive Pedal", 12000, 2)

	// Fill the basket; the pedal request exceeds stock and gets clamped
	added, err := f.basketSvc.AddItem(ctx, buyerID, basketapp.AddItemRequest{ProductID: guitar.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), added.Applied)
	assert.Empty(t, added.Warning)

	added, err = f.basketSvc.AddItem(ctx, buyerID, basketapp.AddItemRequest{ProductID: pedal.ID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), added.Requested)
	assert.Equal(t, int64(2), added.Applied)
	assert.NotEmpty(t, added.Warning)

	placed, err := f.orderSvc.Place(ctx, buyerID, orderapp.CreateOrderRequest{
		ShippingAddress: shippingAddress(),
		DeliveryOption:  "standard",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(89900+2*12000), placed.Subtotal)
	// Subtotal clears the free shipping threshold
	assert.Equal(t, int64(0), placed.DeliveryFee)
	assert.Equal(t, string(order.StatusPending), placed.Status)
	assert.NotEmpty(t, placed.PaymentIntentID)
	require.Len(t, placed.Items, 2)

	// Stock committed alongside the order
	got, err := f.products.FindByID(ctx, guitar.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.QuantityInStock)
	got, err = f.products.FindByID(ctx, pedal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.QuantityInStock)

	// Checkout consumed the basket
	_, err = f.baskets.FindByBuyerID(ctx, buyerID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// A second checkout has nothing to place
	_, err = f.orderSvc.Place(ctx, buyerID, orderapp.CreateOrderRequest{
		ShippingAddress: shippingAddress(),
		DeliveryOption:  "standard",
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Cancelling restores the stock exactly once
	cancelled, err := f.orderSvc.Cancel(ctx, buyerID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCancelled), cancelled.Status)

	got, err = f.products.FindByID(ctx, guitar.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.QuantityInStock)
	got, err = f.products.FindByID(ctx, pedal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.QuantityInStock)

	_, err = f.orderSvc.Cancel(ctx, buyerID, placed.ID)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	// Stock is untouched by the rejected second cancel
	got, err = f.products.FindByID(ctx, pedal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.QuantityInStock)
}

func TestCheckoutFlow_ExpressDeliveryFee(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()
	buyerID := uuid.NewString()

	strings := f.seedProduct(t, "String Set", 1500, 20)

	_, err := f.basketSvc.AddItem(ctx, buyerID, basketapp.AddItemRequest{ProductID: strings.ID, Quantity: 2})
	require.NoError(t, err)

	placed, err := f.orderSvc.Place(ctx, buyerID, orderapp.CreateOrderRequest{
		ShippingAddress: shippingAddress(),
		DeliveryOption:  "express",
	})
	require.NoError(t, err)
	// Express is never waived, whatever the subtotal
	assert.Equal(t, order.FeeExpress, placed.DeliveryFee)
	assert.Equal(t, int64(3000)+order.FeeExpress, placed.Total)
}

func TestCheckoutFlow_Installments(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()
	buyerID := uuid.NewString()

	guitar := f.seedProduct(t, "Stratocaster", 120000, 3)
	_, err := f.basketSvc.AddItem(ctx, buyerID, basketapp.AddItemRequest{ProductID: guitar.ID, Quantity: 1})
	require.NoError(t, err)

	placed, err := f.orderSvc.Place(ctx, buyerID, orderapp.CreateOrderRequest{
		ShippingAddress: shippingAddress(),
		DeliveryOption:  "standard",
	})
	require.NoError(t, err)

	schedule, err := f.orderSvc.Installments(ctx, buyerID, placed.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, schedule.Months)
	require.Len(t, schedule.Lines, 6)
	// The plan pays off completely
	assert.True(t, schedule.Lines[5].Balance.IsZero(),
		"final balance should close at zero, got %s", schedule.Lines[5].Balance)

	// Another buyer cannot pull a schedule for this order
	_, err = f.orderSvc.Installments(ctx, uuid.NewString(), placed.ID, 6)
	assert.Error(t, err)
}
