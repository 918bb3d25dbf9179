package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"adega-delivery/catalog"
	"adega-delivery/db"
	"adega-delivery/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct {
	classifier *catalog.Classifier
	logger     *zap.Logger
}

// NewProductRepository creates a new ProductRepository that classifies every record it reads
func NewProductRepository(classifier *catalog.Classifier, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{classifier: classifier, logger: logger}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

type productScanner interface {
	Scan(dest ...any) error
}

func (r *ProductRepository) scan(row productScanner) (models.CatalogProduct, error) {
	var p models.CatalogProduct
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.BasePrice); err != nil {
		return p, err
	}
	r.classifier.Assign(&p)
	return p, nil
}

// List retrieves every active product ordered by category and name
func (r *ProductRepository) List(ctx context.Context) ([]models.CatalogProduct, error) {
	query := `
		SELECT id, name, category, base_price
		FROM products
		WHERE is_active = true
		ORDER BY category ASC, name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("❌ Error querying products", zap.Error(err))
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.CatalogProduct{}
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			r.logger.Error("❌ Error scanning product", zap.Error(err))
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	r.logger.Debug("🔍 products loaded", zap.Int("count", len(products)))
	return products, nil
}

// GetByID retrieves one active product
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.CatalogProduct, error) {
	query := `
		SELECT id, name, category, base_price
		FROM products
		WHERE id = $1 AND is_active = true
	`

	p, err := r.scan(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
		}
		r.logger.Error("❌ Error fetching product", zap.Int64("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}
