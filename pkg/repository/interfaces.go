package repository

import (
	"context"

	"github.com/mostafakamar/hafla-store/pkg/domain"
)

// ProductRepository defines data access for catalog products
type ProductRepository interface {
	// Create stores a new product
	Create(ctx context.Context, product *domain.Product) error

	// Update updates an existing product
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by id
	Delete(ctx context.Context, productID string) error

	// FindByID fetches a product by id
	FindByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindAll returns the full catalog in insertion order
	FindAll(ctx context.Context) ([]domain.Product, error)

	// UpdatePrice sets a product's price
	UpdatePrice(ctx context.Context, productID string, newPrice float64) error

	// UpdateStock adjusts a product's stock by delta (negative to decrement)
	UpdateStock(ctx context.Context, productID string, delta int) error
}

// UserRepository defines data access for accounts
type UserRepository interface {
	// Create stores a new user
	Create(ctx context.Context, user *domain.User) error

	// FindByID fetches a user by id
	FindByID(ctx context.Context, userID string) (*domain.User, error)

	// FindByPhone fetches a user by phone number
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// OrderRepository defines data access for storefront orders
type OrderRepository interface {
	// Create stores an order with its items
	Create(ctx context.Context, order *domain.Order) error

	// FindByID fetches an order with its items
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)

	// FindByCustomer returns a customer's orders, newest first
	FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

// AuditRepository logs the back-office records produced when an assistant
// proposal is confirmed
type AuditRepository interface {
	// LogNotification stores an admin notification record
	LogNotification(ctx context.Context, n domain.Notification) error

	// LogPurchaseOrder stores a purchase order record
	LogPurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error

	// LogPromotion stores a promotion record
	LogPromotion(ctx context.Context, p domain.Promotion) error
}
