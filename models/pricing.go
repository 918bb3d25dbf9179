package models

import "github.com/shopspring/decimal"

// PricingLine represents pricing information for a single cart line
type PricingLine struct {
	LineID        string          `json:"lineId"`        // Cart line ID
	Name          string          `json:"name"`          // Product name
	Qty           int             `json:"qty"`           // Total quantity
	QtyDiscounted int             `json:"qtyDiscounted"` // Units billed at the case discount
	QtyRegular    int             `json:"qtyRegular"`    // Units billed at unit price
	UnitPrice     decimal.Decimal `json:"unitPrice"`     // Configured unit price
	LineTotal     decimal.Decimal `json:"lineTotal"`     // Total for this line after discounts
	RuleIDs       []string        `json:"ruleIds"`       // IDs of rules applied to this line
}

// PricingBreakdown represents the complete pricing calculation for a cart
type PricingBreakdown struct {
	Currency     string          `json:"currency"`
	Subtotal     decimal.Decimal `json:"subtotal"`     // Sum of qty * unit price, before discounts
	Discount     decimal.Decimal `json:"discount"`     // Subtotal - Total
	Total        decimal.Decimal `json:"total"`        // Total cart amount
	Lines        []PricingLine   `json:"lines"`        // Pricing breakdown per line
	AppliedRules []string        `json:"appliedRules"` // List of rule IDs applied
}
