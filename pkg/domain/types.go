package domain

import (
	"time"
)

// Category is the closed set of product categories carried by the catalog.
type Category string

const (
	CategoryBalloons    Category = "balloons"
	CategoryDecorations Category = "decorations"
	CategoryTableware   Category = "tableware"
	CategoryCostumes    Category = "costumes"
	CategoryFavors      Category = "favors"
	CategoryLighting    Category = "lighting"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryBalloons,
		CategoryDecorations,
		CategoryTableware,
		CategoryCostumes,
		CategoryFavors,
		CategoryLighting,
	}
}

// Product represents a catalog item
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameAr    string    `json:"name_ar,omitempty"`
	Price     float64   `json:"price"`
	CostPrice float64   `json:"cost_price,omitempty"`
	Stock     int       `json:"stock"`
	Category  Category  `json:"category"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User represents an account in the system (admin, staff or customer)
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Order represents a storefront checkout
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Total      float64     `json:"total"`
	Status     string      `json:"status"` // pending, confirmed, delivered, cancelled
	Items      []OrderItem `json:"items,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OrderItem represents a line in an order
type OrderItem struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	ProductID string    `json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"` // price at checkout time
	CreatedAt time.Time `json:"created_at"`
}

// Notification represents a message logged for an admin (e.g. a low-stock
// alert proposed by the assistant and confirmed by a user)
type Notification struct {
	ID          string    `json:"id"`
	TargetAdmin string    `json:"target_admin"`
	Channel     string    `json:"channel"`
	TemplateID  string    `json:"template_id"`
	Preview     string    `json:"preview"`
	CreatedAt   time.Time `json:"created_at"`
}

// PurchaseOrder represents a restock order sent to a supplier
type PurchaseOrder struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SupplierID    string    `json:"supplier_id"`
	Quantity      int       `json:"quantity"`
	EstimatedCost float64   `json:"estimated_cost"`
	Status        string    `json:"status"` // pending, received, cancelled
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Promotion represents a store-wide discount campaign
type Promotion struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Category        Category  `json:"category"`
	DiscountPercent int       `json:"discount_percent"`
	DurationHours   int       `json:"duration_hours"`
	ExpectedUplift  int       `json:"expected_uplift_percent"`
	StartsAt        time.Time `json:"starts_at"`
	CreatedAt       time.Time `json:"created_at"`
}
