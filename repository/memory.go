package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"adega-delivery/catalog"
	"adega-delivery/models"
)

// MemoryProductRepository serves a fixed product list, used when no database is configured
type MemoryProductRepository struct {
	products []models.CatalogProduct
}

// Ensure MemoryProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*MemoryProductRepository)(nil)

// NewMemoryProductRepository classifies products once and serves them sorted by category and name
func NewMemoryProductRepository(classifier *catalog.Classifier, products []models.CatalogProduct) *MemoryProductRepository {
	list := make([]models.CatalogProduct, len(products))
	copy(list, products)
	for i := range list {
		classifier.Assign(&list[i])
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Category != list[j].Category {
			return list[i].Category < list[j].Category
		}
		return list[i].Name < list[j].Name
	})
	return &MemoryProductRepository{products: list}
}

type productsFile struct {
	Products []models.CatalogProduct `json:"products"`
}

// LoadProductsFile reads a {"products": [...]} JSON file into a MemoryProductRepository
func LoadProductsFile(path string, classifier *catalog.Classifier) (*MemoryProductRepository, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}
	var file productsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse products file: %w", err)
	}
	seen := map[int64]bool{}
	for _, p := range file.Products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be greater than 0", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.BasePrice.IsNegative() {
			return nil, fmt.Errorf("product %d: basePrice must not be negative", p.ID)
		}
		seen[p.ID] = true
	}
	return NewMemoryProductRepository(classifier, file.Products), nil
}

// List returns a copy of every product
func (r *MemoryProductRepository) List(ctx context.Context) ([]models.CatalogProduct, error) {
	out := make([]models.CatalogProduct, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns one product
func (r *MemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.CatalogProduct, error) {
	for _, p := range r.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
}

// MemoryOrderRepository keeps checked-out orders in memory
type MemoryOrderRepository struct {
	mu     sync.Mutex
	orders []models.Order
}

// Ensure MemoryOrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*MemoryOrderRepository)(nil)

// NewMemoryOrderRepository creates an empty in-memory order store
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

// Save stores a copy of order
func (r *MemoryOrderRepository) Save(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	cp.Lines = make([]models.CartLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		cp.Lines = append(cp.Lines, *line.Clone())
	}
	r.orders = append(r.orders, cp)
	return nil
}

// Orders returns the saved orders in insertion order
func (r *MemoryOrderRepository) Orders() []models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Order(nil), r.orders...)
}
