package service

import (
	"context"

	"adega-delivery/models"
	"adega-delivery/steps"
)

// OrderServiceInterface defines the contract for cart and configuration operations
type OrderServiceInterface interface {
	Products(ctx context.Context) ([]models.CatalogProduct, error)
	NewCart() string
	Snapshot(cartID string) (*CartView, error)
	AddProduct(ctx context.Context, cartID string, productID int64, qty int) (*CartView, error)
	UpdateLine(cartID, lineID string, delta int) (*CartView, error)
	RemoveLine(cartID, lineID string) (*CartView, error)

	UpdateIce(cartID, flavor string, delta steps.Delta) (*CartView, error)
	ChooseAlcohol(cartID, spirit string) (*CartView, error)
	ChooseMixerFlavor(cartID, flavor string) (*CartView, error)
	UpdateEnergyDrink(cartID, brand, flavor string, delta steps.Delta) (*CartView, error)
	ConfirmStep(cartID string) (*CartView, error)
	CancelConfiguration(cartID string) (*CartView, error)

	Checkout(ctx context.Context, cartID string, customer models.Customer) (*models.Order, error)
}
