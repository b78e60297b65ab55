package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

// Repository errors
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductDuplicate = errors.New("a product with this id already exists")
)

// ProductRepository implements repository.ProductRepository using PostgreSQL
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *pgxpool.Pool) repository.ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

// Create implements repository.ProductRepository.Create
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (
			id, name, name_ar, price, cost_price, stock, category, active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.NameAr,
		p.Price,
		p.CostPrice,
		p.Stock,
		string(p.Category),
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return ErrProductDuplicate
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Update implements repository.ProductRepository.Update
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products SET
			name = $2, name_ar = $3, price = $4, cost_price = $5,
			stock = $6, category = $7, active = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.NameAr,
		p.Price,
		p.CostPrice,
		p.Stock,
		string(p.Category),
		p.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete implements repository.ProductRepository.Delete
func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID implements repository.ProductRepository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT id, name, name_ar, price, cost_price, stock, category, active, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	p := &domain.Product{}
	var category string

	err := r.db.QueryRow(ctx, query, productID).Scan(
		&p.ID,
		&p.Name,
		&p.NameAr,
		&p.Price,
		&p.CostPrice,
		&p.Stock,
		&category,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	p.Category = domain.Category(category)
	return p, nil
}

// FindAll implements repository.ProductRepository.FindAll
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, name_ar, price, cost_price, stock, category, active, created_at, updated_at
		FROM products
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var category string
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.NameAr,
			&p.Price,
			&p.CostPrice,
			&p.Stock,
			&category,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Category = domain.Category(category)
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// UpdatePrice implements repository.ProductRepository.UpdatePrice
func (r *ProductRepository) UpdatePrice(ctx context.Context, productID string, newPrice float64) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE products SET price = $2, updated_at = NOW() WHERE id = $1",
		productID, newPrice)
	if err != nil {
		return fmt.Errorf("failed to update product price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// UpdateStock implements repository.ProductRepository.UpdateStock
func (r *ProductRepository) UpdateStock(ctx context.Context, productID string, delta int) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE id = $1 AND stock + $2 >= 0",
		productID, delta)
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
