package repository

import (
	"context"
	"errors"

	"adega-delivery/models"
)

// ErrProductNotFound is returned when a product id is unknown or inactive
var ErrProductNotFound = errors.New("product not found")

// ProductRepositoryInterface defines the contract for product catalog reads.
// Returned records are already classified.
type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]models.CatalogProduct, error)
	GetByID(ctx context.Context, id int64) (*models.CatalogProduct, error)
}

// OrderRepositoryInterface defines the contract for persisting checked-out orders
type OrderRepositoryInterface interface {
	Save(ctx context.Context, order *models.Order) error
}
