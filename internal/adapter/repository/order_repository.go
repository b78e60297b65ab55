package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mostafakamar/hafla-store/internal/infrastructure/database"
	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

// Repository errors
var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository implements repository.OrderRepository using PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *pgxpool.Pool) repository.OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// Create implements repository.OrderRepository.Create. The order, its items
// and the stock decrements are applied in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (id, customer_id, total, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID, o.CustomerID, o.Total, o.Status, o.CreatedAt, o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for _, item := range o.Items {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, item.ID, o.ID, item.ProductID, item.Quantity, item.Price, item.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}

			tag, err := tx.Exec(ctx, `
				UPDATE products SET stock = stock - $2, updated_at = NOW()
				WHERE id = $1 AND stock >= $2
			`, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("insufficient stock for product %s", item.ProductID)
			}
		}

		return nil
	})
}

// FindByID implements repository.OrderRepository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	o := &domain.Order{}
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, total, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(&o.ID, &o.CustomerID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	items, err := r.findItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

// FindByCustomer implements repository.OrderRepository.FindByCustomer
func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_id, total, status, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for i := range orders {
		items, err := r.findItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *OrderRepository) findItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}

	return items, nil
}
