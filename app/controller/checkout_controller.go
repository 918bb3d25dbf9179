package controller

import (
	"net/http"

	"go.uber.org/zap"

	"adega-delivery/models"
	"adega-delivery/service"
)

// CheckoutController handles order placement
type CheckoutController struct {
	service service.OrderServiceInterface
	logger  *zap.Logger
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(svc service.OrderServiceInterface, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{service: svc, logger: logger}
}

// Checkout handles POST /carts/{cartID}/checkout
// Example request:
// {
//   "customerName": "Ana Souza",
//   "phone": "+5511999990000",
//   "address": "Rua das Flores, 10",
//   "notes": "Troco para 100"
// }
// The response is the placed order, including the plain-text summary.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := decodeBody(r, &customer); err != nil {
		badRequest(w, c.logger, "Checkout", err)
		return
	}

	order, err := c.service.Checkout(r.Context(), r.PathValue("cartID"), customer)
	if err != nil {
		writeError(w, c.logger, "Checkout", err)
		return
	}
	writeJSON(w, c.logger, http.StatusCreated, order)
}
