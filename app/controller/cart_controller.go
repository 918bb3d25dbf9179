package controller

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"adega-delivery/service"
)

// CartController handles HTTP requests for carts and their lines
type CartController struct {
	service service.OrderServiceInterface
	logger  *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(svc service.OrderServiceInterface, logger *zap.Logger) *CartController {
	return &CartController{service: svc, logger: logger}
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Qty       int   `json:"qty"`
}

type updateLineRequest struct {
	Delta int `json:"delta"`
}

// Create handles POST /carts
func (c *CartController) Create(w http.ResponseWriter, r *http.Request) {
	cartID := c.service.NewCart()
	view, err := c.service.Snapshot(cartID)
	if err != nil {
		writeError(w, c.logger, "CreateCart", err)
		return
	}
	writeJSON(w, c.logger, http.StatusCreated, view)
}

// Get handles GET /carts/{cartID}
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := c.service.Snapshot(r.PathValue("cartID"))
	if err != nil {
		writeError(w, c.logger, "GetCart", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, view)
}

// AddItem handles POST /carts/{cartID}/items
// Example request:
// POST /carts/9b1e.../items
// {
//   "productId": 1,
//   "qty": 12
// }
// A simple product is committed at once. A configurable product starts a
// configuration returned under "configuration".
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, c.logger, "AddItem", err)
		return
	}
	if req.ProductID <= 0 {
		badRequest(w, c.logger, "AddItem", errors.New("productId is required"))
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	view, err := c.service.AddProduct(r.Context(), r.PathValue("cartID"), req.ProductID, req.Qty)
	if err != nil {
		writeError(w, c.logger, "AddItem", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, view)
}

// UpdateLine handles PATCH /carts/{cartID}/lines/{lineID}
// Example request:
// {
//   "delta": -1
// }
func (c *CartController) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req updateLineRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, c.logger, "UpdateLine", err)
		return
	}
	if req.Delta == 0 {
		badRequest(w, c.logger, "UpdateLine", errors.New("delta must not be zero"))
		return
	}

	view, err := c.service.UpdateLine(r.PathValue("cartID"), r.PathValue("lineID"), req.Delta)
	if err != nil {
		writeError(w, c.logger, "UpdateLine", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, view)
}

// RemoveLine handles DELETE /carts/{cartID}/lines/{lineID}
func (c *CartController) RemoveLine(w http.ResponseWriter, r *http.Request) {
	view, err := c.service.RemoveLine(r.PathValue("cartID"), r.PathValue("lineID"))
	if err != nil {
		writeError(w, c.logger, "RemoveLine", err)
		return
	}
	writeJSON(w, c.logger, http.StatusOK, view)
}
