package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafakamar/hafla-store/pkg/domain"
)

func TestSeededCatalogOrder(t *testing.T) {
	store := NewSeeded()

	products, err := store.FindAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, products)
	assert.Equal(t, "prd-1001", products[0].ID, "catalog order must be stable")
}

func TestUpdatePrice(t *testing.T) {
	store := NewSeeded()
	ctx := context.Background()

	require.NoError(t, store.UpdatePrice(ctx, "prd-1001", 150))

	p, err := store.FindByID(ctx, "prd-1001")
	require.NoError(t, err)
	assert.Equal(t, 150.0, p.Price)

	assert.Error(t, store.UpdatePrice(ctx, "no-such-id", 10))
}

func TestUpdateStockRejectsNegative(t *testing.T) {
	store := NewSeeded()
	ctx := context.Background()

	require.NoError(t, store.UpdateStock(ctx, "prd-1007", -8))
	assert.Error(t, store.UpdateStock(ctx, "prd-1007", -1))

	p, err := store.FindByID(ctx, "prd-1007")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestOrderCheckoutDecrementsStock(t *testing.T) {
	store := NewSeeded()
	ctx := context.Background()
	now := time.Now()

	order := &domain.Order{
		ID:         "ord-1",
		CustomerID: "cus-1",
		Total:      400,
		Status:     "pending",
		Items: []domain.OrderItem{
			{ID: "itm-1", OrderID: "ord-1", ProductID: "prd-1001", Quantity: 2, Price: 200, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, store.Orders().Create(ctx, order))

	p, err := store.FindByID(ctx, "prd-1001")
	require.NoError(t, err)
	assert.Equal(t, 98, p.Stock)
}

func TestOrderCheckoutInsufficientStockIsAtomic(t *testing.T) {
	store := NewSeeded()
	ctx := context.Background()
	now := time.Now()

	order := &domain.Order{
		ID:         "ord-2",
		CustomerID: "cus-1",
		Status:     "pending",
		Items: []domain.OrderItem{
			{ID: "itm-1", OrderID: "ord-2", ProductID: "prd-1001", Quantity: 2, Price: 200, CreatedAt: now},
			{ID: "itm-2", OrderID: "ord-2", ProductID: "prd-1007", Quantity: 999, Price: 600, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.Error(t, store.Orders().Create(ctx, order))

	p, err := store.FindByID(ctx, "prd-1001")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Stock, "no line may be applied when any line fails")

	_, err = store.Orders().FindByID(ctx, "ord-2")
	assert.Error(t, err)
}

func TestUserPhoneUniqueness(t *testing.T) {
	store := New()
	ctx := context.Background()

	u := &domain.User{ID: "usr-1", Name: "Mona", Phone: "+201000000001", Role: "customer", Active: true}
	require.NoError(t, store.Users().Create(ctx, u))

	dup := &domain.User{ID: "usr-2", Name: "Mona Again", Phone: "+201000000001", Role: "customer", Active: true}
	assert.Error(t, store.Users().Create(ctx, dup))

	found, err := store.Users().FindByPhone(ctx, "+201000000001")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", found.ID)
}

func TestAuditLogs(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.LogNotification(ctx, domain.Notification{ID: "ntf-1", TargetAdmin: "Walid"}))
	require.NoError(t, store.LogPurchaseOrder(ctx, domain.PurchaseOrder{ID: "po-1", Status: "pending"}))
	require.NoError(t, store.LogPromotion(ctx, domain.Promotion{ID: "prm-1", Code: "HAFLA20"}))

	assert.Len(t, store.Notifications(), 1)
	assert.Len(t, store.PurchaseOrders(), 1)
	assert.Len(t, store.Promotions(), 1)
}
