package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mostafakamar/hafla-store/pkg/domain"
)

// Store is an in-memory implementation of the repository interfaces, used by
// tests and by dev mode when no DATABASE_URL is configured.
type Store struct {
	mu             sync.RWMutex
	products       map[string]domain.Product
	productOrder   []string
	usersByID      map[string]domain.User
	usersByPhone   map[string]string
	ordersByID     map[string]domain.Order
	notifications  []domain.Notification
	purchaseOrders []domain.PurchaseOrder
	promotions     []domain.Promotion
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		products:     map[string]domain.Product{},
		usersByID:    map[string]domain.User{},
		usersByPhone: map[string]string{},
		ordersByID:   map[string]domain.Order{},
	}
}

// NewSeeded creates a store pre-loaded with the demo party-supplies catalog.
func NewSeeded() *Store {
	s := New()
	now := time.Now()
	seed := []domain.Product{
		{ID: "prd-1001", Name: "Cub 2025 (Blue Party Cups)", NameAr: "أكواب الحفلة الزرقاء", Price: 200, CostPrice: 120, Stock: 100, Category: domain.CategoryTableware, Active: true},
		{ID: "prd-1002", Name: "Golden Balloon Pack", NameAr: "حزمة بالونات ذهبية", Price: 150, CostPrice: 80, Stock: 45, Category: domain.CategoryBalloons, Active: true},
		{ID: "prd-1003", Name: "Helium Balloon Jumbo", NameAr: "بالون هيليوم كبير", Price: 320, CostPrice: 190, Stock: 12, Category: domain.CategoryBalloons, Active: true},
		{ID: "prd-1004", Name: "Birthday Banner Classic", NameAr: "لافتة عيد ميلاد كلاسيكية", Price: 95, CostPrice: 40, Stock: 60, Category: domain.CategoryDecorations, Active: true},
		{ID: "prd-1005", Name: "LED String Lights 10m", NameAr: "حبل إضاءة ليد ١٠ متر", Price: 450, CostPrice: 260, Stock: 25, Category: domain.CategoryLighting, Active: true},
		{ID: "prd-1006", Name: "Paper Plates Rainbow", NameAr: "أطباق ورقية ملونة", Price: 120, CostPrice: 55, Stock: 80, Category: domain.CategoryTableware, Active: true},
		{ID: "prd-1007", Name: "Pharaoh Costume Kids", NameAr: "زي فرعوني للأطفال", Price: 600, CostPrice: 350, Stock: 8, Category: domain.CategoryCostumes, Active: true},
		{ID: "prd-1008", Name: "Candy Favor Boxes", NameAr: "علب حلوى للتوزيعات", Price: 75, CostPrice: 30, Stock: 150, Category: domain.CategoryFavors, Active: true},
	}
	for _, p := range seed {
		p.CreatedAt = now
		p.UpdatedAt = now
		s.products[p.ID] = p
		s.productOrder = append(s.productOrder, p.ID)
	}
	return s
}

// Products implements repository.ProductRepository.

func (s *Store) Create(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; ok {
		return errors.New("a product with this id already exists")
	}
	s.products[p.ID] = *p
	s.productOrder = append(s.productOrder, p.ID)
	return nil
}

func (s *Store) Update(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return errors.New("product not found")
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Store) Delete(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return errors.New("product not found")
	}
	delete(s.products, productID)
	for i, id := range s.productOrder {
		if id == productID {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, errors.New("product not found")
	}
	return &p, nil
}

func (s *Store) FindAll(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *Store) UpdatePrice(ctx context.Context, productID string, newPrice float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return errors.New("product not found")
	}
	p.Price = newPrice
	p.UpdatedAt = time.Now()
	s.products[productID] = p
	return nil
}

func (s *Store) UpdateStock(ctx context.Context, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return errors.New("product not found")
	}
	if p.Stock+delta < 0 {
		return fmt.Errorf("insufficient stock for product %s", productID)
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	s.products[productID] = p
	return nil
}

// UserStore wraps Store with the user repository methods. A separate type is
// needed because Create collides with the product method.
type UserStore struct {
	s *Store
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserStore {
	return &UserStore{s: s}
}

func (u *UserStore) Create(ctx context.Context, user *domain.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.usersByPhone[user.Phone]; ok {
		return errors.New("a user with this phone number already exists")
	}
	u.s.usersByID[user.ID] = *user
	u.s.usersByPhone[user.Phone] = user.ID
	return nil
}

func (u *UserStore) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	usr, ok := u.s.usersByID[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &usr, nil
}

func (u *UserStore) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	id, ok := u.s.usersByPhone[phone]
	if !ok {
		return nil, errors.New("user not found")
	}
	usr := u.s.usersByID[id]
	return &usr, nil
}

// OrderStore wraps Store with the order repository methods.
type OrderStore struct {
	s *Store
}

// Orders returns the order repository view of the store.
func (s *Store) Orders() *OrderStore {
	return &OrderStore{s: s}
}

func (o *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	for _, item := range order.Items {
		p, ok := o.s.products[item.ProductID]
		if !ok {
			return errors.New("product not found")
		}
		if p.Stock < item.Quantity {
			return fmt.Errorf("insufficient stock for product %s", item.ProductID)
		}
	}
	for _, item := range order.Items {
		p := o.s.products[item.ProductID]
		p.Stock -= item.Quantity
		o.s.products[item.ProductID] = p
	}
	o.s.ordersByID[order.ID] = *order
	return nil
}

func (o *OrderStore) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	order, ok := o.s.ordersByID[orderID]
	if !ok {
		return nil, errors.New("order not found")
	}
	return &order, nil
}

func (o *OrderStore) FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	var out []domain.Order
	for _, order := range o.s.ordersByID {
		if order.CustomerID == customerID {
			out = append(out, order)
		}
	}
	return out, nil
}

// Audit methods implement repository.AuditRepository.

func (s *Store) LogNotification(ctx context.Context, n domain.Notification) error {
	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	s.mu.Unlock()
	return nil
}

func (s *Store) LogPurchaseOrder(ctx context.Context, po domain.PurchaseOrder) error {
	s.mu.Lock()
	s.purchaseOrders = append(s.purchaseOrders, po)
	s.mu.Unlock()
	return nil
}

func (s *Store) LogPromotion(ctx context.Context, p domain.Promotion) error {
	s.mu.Lock()
	s.promotions = append(s.promotions, p)
	s.mu.Unlock()
	return nil
}

// Notifications returns a snapshot of the logged notifications.
func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// PurchaseOrders returns a snapshot of the logged purchase orders.
func (s *Store) PurchaseOrders() []domain.PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PurchaseOrder, len(s.purchaseOrders))
	copy(out, s.purchaseOrders)
	return out
}

// Promotions returns a snapshot of the logged promotions.
func (s *Store) Promotions() []domain.Promotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Promotion, len(s.promotions))
	copy(out, s.promotions)
	return out
}
