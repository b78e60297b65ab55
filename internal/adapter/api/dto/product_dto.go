package dto

import (
	"time"

	"github.com/mostafakamar/hafla-store/pkg/domain"
)

// ProductRequest is the body for creating or updating a product
type ProductRequest struct {
	ID        string  `json:"id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	NameAr    string  `json:"name_ar"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	CostPrice float64 `json:"cost_price"`
	Stock     int     `json:"stock" binding:"gte=0"`
	Category  string  `json:"category" binding:"required"`
	Active    *bool   `json:"active"`
}

// ProductResponse mirrors a catalog product
type ProductResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NameAr    string  `json:"name_ar,omitempty"`
	Price     float64 `json:"price"`
	CostPrice float64 `json:"cost_price,omitempty"`
	Stock     int     `json:"stock"`
	Category  string  `json:"category"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ToProduct converts a request to a domain product
func (r ProductRequest) ToProduct() *domain.Product {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	now := time.Now()
	return &domain.Product{
		ID:        r.ID,
		Name:      r.Name,
		NameAr:    r.NameAr,
		Price:     r.Price,
		CostPrice: r.CostPrice,
		Stock:     r.Stock,
		Category:  domain.Category(r.Category),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FromProduct converts a domain product to its response shape
func FromProduct(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		NameAr:    p.NameAr,
		Price:     p.Price,
		CostPrice: p.CostPrice,
		Stock:     p.Stock,
		Category:  string(p.Category),
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromProducts converts a product list to its response shape
func FromProducts(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

// ValidCategory reports whether the category name is one of the known
// catalog categories
func ValidCategory(name string) bool {
	for _, c := range domain.Categories() {
		if string(c) == name {
			return true
		}
	}
	return false
}
