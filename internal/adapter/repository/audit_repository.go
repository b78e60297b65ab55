package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

// AuditRepository implements repository.AuditRepository using PostgreSQL
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository instance
func NewAuditRepository(db *pgxpool.Pool) repository.AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

// LogNotification implements repository.AuditRepository.LogNotification
func (r *AuditRepository) LogNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (id, target_admin, channel, template_id, preview, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.ID, n.TargetAdmin, n.Channel, n.TemplateID, n.Preview, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// LogPurchaseOrder implements repository.AuditRepository.LogPurchaseOrder
func (r *AuditRepository) LogPurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO purchase_orders (
			id, product_id, product_name, supplier_id, quantity, estimated_cost, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, po.ID, po.ProductID, po.ProductName, po.SupplierID, po.Quantity, po.EstimatedCost, po.Status, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert purchase order: %w", err)
	}

	return nil
}

// LogPromotion implements repository.AuditRepository.LogPromotion
func (r *AuditRepository) LogPromotion(ctx context.Context, p domain.Promotion) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO promotions (
			id, code, category, discount_percent, duration_hours, expected_uplift, starts_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.Code, string(p.Category), p.DiscountPercent, p.DurationHours, p.ExpectedUplift, p.StartsAt, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert promotion: %w", err)
	}

	return nil
}
