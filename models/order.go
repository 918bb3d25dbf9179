package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer identifies who the delivery/counter order is for
// Example: {"customerName": "João Silva", "phone": "+5511999990000", "address": "Rua A, 10", "notes": "sem troco"}
type Customer struct {
	Name    string `json:"customerName"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Order is a checked-out cart
type Order struct {
	ID        string            `json:"id"`
	CartID    string            `json:"cartId"`
	Customer  Customer          `json:"customer"`
	Lines     []CartLine        `json:"lines"`
	Pricing   *PricingBreakdown `json:"pricing"`
	Status    string            `json:"status"`
	Summary   string            `json:"summary"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Total returns the post-discount order total
func (o *Order) Total() decimal.Decimal {
	if o.Pricing == nil {
		return decimal.Zero
	}
	return o.Pricing.Total
}

// OrderStatusPlaced is the status of a freshly checked-out order
const OrderStatusPlaced = "placed"
