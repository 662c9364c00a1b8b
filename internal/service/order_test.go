package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
)

func TestCheckoutHappyPath(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", false)
	jacket := seedProduct(t, db, "Jacket", 800, 10)
	dress := seedProduct(t, db, "Dress", 500, 3)

	order, err := svc.Checkout(ctx, user, []CheckoutItem{
		{ProductID: jacket.ID, Quantity: 2},
		{ProductID: dress.ID, Quantity: 1},
	}, "221B Baker Street")
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "221B Baker Street", order.ShippingAddress)
	assert.InDelta(t, 2100.0, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)

	// Sum of line totals equals the order total
	sum := 0.0
	for _, item := range order.Items {
		sum += item.Price * float64(item.Quantity)
	}
	assert.InDelta(t, order.TotalAmount, sum, 0.001)

	// Product snapshots are attached
	require.NotNil(t, order.Items[0].Product)
	assert.Equal(t, "Jacket", order.Items[0].Product.Name)

	// Stock decreased by exactly the requested quantities
	var j, d model.Product
	require.NoError(t, db.First(&j, jacket.ID).Error)
	require.NoError(t, db.First(&d, dress.ID).Error)
	assert.Equal(t, 8, j.Stock)
	assert.Equal(t, 2, d.Stock)
}

func TestCheckoutEmptyOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	user := seedUser(t, db, "buyer@example.com", false)

	_, err := svc.Checkout(context.Background(), user, nil, "somewhere")
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	user := seedUser(t, db, "buyer@example.com", false)

	_, err := svc.Checkout(context.Background(), user, []CheckoutItem{
		{ProductID: 424242, Quantity: 1},
	}, "somewhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutAtomicRollback(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", false)
	jacket := seedProduct(t, db, "Jacket", 800, 10)
	dress := seedProduct(t, db, "Dress", 500, 1)

	// Second line exceeds stock: the first line's decrement must be rolled
	// back and no order may exist afterwards.
	_, err := svc.Checkout(ctx, user, []CheckoutItem{
		{ProductID: jacket.ID, Quantity: 3},
		{ProductID: dress.ID, Quantity: 5},
	}, "somewhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, dress.ID, stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	var j, d model.Product
	require.NoError(t, db.First(&j, jacket.ID).Error)
	require.NoError(t, db.First(&d, dress.ID).Error)
	assert.Equal(t, 10, j.Stock)
	assert.Equal(t, 1, d.Stock)

	var orders int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
	var items int64
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestCheckoutLastUnitContention(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com", false)
	bob := seedUser(t, db, "bob@example.com", false)
	product := seedProduct(t, db, "Jacket", 800, 1)

	_, firstErr := svc.Checkout(ctx, alice, []CheckoutItem{{ProductID: product.ID, Quantity: 1}}, "a")
	_, secondErr := svc.Checkout(ctx, bob, []CheckoutItem{{ProductID: product.ID, Quantity: 1}}, "b")

	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, ErrInsufficientStock)

	// Exactly one order exists and stock never went negative
	var orders int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), orders)

	var p model.Product
	require.NoError(t, db.First(&p, product.ID).Error)
	assert.Equal(t, 0, p.Stock)
}

func TestCheckoutFreezesUnitPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", false)
	product := seedProduct(t, db, "Jacket", 800, 10)

	order, err := svc.Checkout(ctx, user, []CheckoutItem{{ProductID: product.ID, Quantity: 1}}, "somewhere")
	require.NoError(t, err)

	// A later price change must not affect the persisted line
	require.NoError(t, db.Model(product).Update("discount_price", 100).Error)

	reloaded, err := svc.Get(ctx, user, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.InDelta(t, 800.0, reloaded.Items[0].Price, 0.001)
}

func TestGetOrderAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com", false)
	stranger := seedUser(t, db, "stranger@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	product := seedProduct(t, db, "Jacket", 800, 10)

	order, err := svc.Checkout(ctx, owner, []CheckoutItem{{ProductID: product.ID, Quantity: 1}}, "somewhere")
	require.NoError(t, err)

	_, err = svc.Get(ctx, owner, order.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, admin, order.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, owner, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMine(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com", false)
	bob := seedUser(t, db, "bob@example.com", false)
	product := seedProduct(t, db, "Jacket", 800, 10)

	_, err := svc.Checkout(ctx, alice, []CheckoutItem{{ProductID: product.ID, Quantity: 1}}, "a")
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, bob, []CheckoutItem{{ProductID: product.ID, Quantity: 1}}, "b")
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, alice, []CheckoutItem{{ProductID: product.ID, Quantity: 2}}, "a")
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, alice, 0, 100)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Less(t, mine[0].ID, mine[1].ID)
	for _, order := range mine {
		assert.Equal(t, alice.ID, order.UserID)
	}

	all, err := svc.ListAll(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAdminViewTransitionsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", false)
	product := seedProduct(t, db, "Jacket", 800, 10)

	order, err := svc.Checkout(ctx, user, []CheckoutItem{{ProductID: product.ID, Quantity: 1}}, "somewhere")
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, order.Status)

	viewed, err := svc.AdminView(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, viewed.Status)

	// Repeat view leaves the status alone
	viewed, err = svc.AdminView(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessing, viewed.Status)

	// Later stages are never reset by a view
	require.NoError(t, db.Model(&model.Order{}).Where("id = ?", order.ID).Update("status", model.StatusShipped).Error)
	viewed, err = svc.AdminView(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, viewed.Status)

	_, err = svc.AdminView(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
