package controller

import (
	"net/http"

	"go.uber.org/zap"

	"adega-delivery/models"
	"adega-delivery/service"
)

// CatalogController handles HTTP requests for the product catalog
type CatalogController struct {
	service service.OrderServiceInterface
	logger  *zap.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(svc service.OrderServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{service: svc, logger: logger}
}

type productsResponse struct {
	Products []models.CatalogProduct `json:"products"`
	Total    int                     `json:"total"`
}

// ListProducts handles GET /products
// Example response:
// {
//   "products": [
//     {"id": 2, "name": "Copão de Gin", "category": "Copão", "basePrice": "25",
//      "classes": ["requiresIce", "largeCup"]}
//   ],
//   "total": 1
// }
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Products(r.Context())
	if err != nil {
		writeError(w, c.logger, "ListProducts", err)
		return
	}
	if products == nil {
		products = []models.CatalogProduct{}
	}
	writeJSON(w, c.logger, http.StatusOK, productsResponse{Products: products, Total: len(products)})
}
