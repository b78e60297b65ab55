package repository

import (
	"context"

	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

// Mutator adapts the product and audit repositories to the mutation
// interface the assistant lifecycle executes confirmed actions against
type Mutator struct {
	products repository.ProductRepository
	audit    repository.AuditRepository
}

// NewMutator creates a new Mutator instance
func NewMutator(products repository.ProductRepository, audit repository.AuditRepository) *Mutator {
	return &Mutator{
		products: products,
		audit:    audit,
	}
}

// UpdateProductPrice applies a confirmed price change
func (m *Mutator) UpdateProductPrice(ctx context.Context, productID string, newPrice float64) error {
	return m.products.UpdatePrice(ctx, productID, newPrice)
}

// LogNotification records a confirmed admin notification
func (m *Mutator) LogNotification(ctx context.Context, n domain.Notification) error {
	return m.audit.LogNotification(ctx, n)
}

// LogPurchaseOrder records a confirmed purchase order
func (m *Mutator) LogPurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error {
	return m.audit.LogPurchaseOrder(ctx, po)
}

// LogPromotion records a confirmed promotion
func (m *Mutator) LogPromotion(ctx context.Context, p domain.Promotion) error {
	return m.audit.LogPromotion(ctx, p)
}
