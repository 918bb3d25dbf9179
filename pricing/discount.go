package pricing

import (
	"github.com/shopspring/decimal"

	"adega-delivery/models"
)

const (
	// DefaultCaseSize is the number of units in a case of beer
	DefaultCaseSize = 12
	// DefaultCaseDiscountRate is the discount applied to every unit sold in full cases
	DefaultCaseDiscountRate = "0.23"
)

// CaseDiscount bills units sold in full cases at a discounted price
type CaseDiscount struct {
	CaseSize int
	Rate     decimal.Decimal
}

// DefaultCaseDiscount returns the 12-unit, 23% law
func DefaultCaseDiscount() CaseDiscount {
	return CaseDiscount{CaseSize: DefaultCaseSize, Rate: decimal.RequireFromString(DefaultCaseDiscountRate)}
}

// Split returns how many of qty units are billed at the discounted price and how many at full price
func (d CaseDiscount) Split(qty int) (discounted, regular int) {
	if qty <= 0 {
		return 0, 0
	}
	if d.CaseSize <= 0 {
		return 0, qty
	}
	discounted = (qty / d.CaseSize) * d.CaseSize
	return discounted, qty - discounted
}

// DiscountedPrice returns price * (1 - rate)
func (d CaseDiscount) DiscountedPrice(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Sub(d.Rate))
}

// LineTotal returns the total of qty units at price under the law
func (d CaseDiscount) LineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	discounted, regular := d.Split(qty)
	if discounted == 0 {
		return price.Mul(decimal.NewFromInt(int64(regular)))
	}
	return d.DiscountedPrice(price).Mul(decimal.NewFromInt(int64(discounted))).
		Add(price.Mul(decimal.NewFromInt(int64(regular))))
}

// LineTotal applies the default case discount to case-discount products and
// bills every other product at full price
func LineTotal(price decimal.Decimal, qty int, class models.ProductClass) decimal.Decimal {
	if qty <= 0 {
		return decimal.Zero
	}
	if class.Has(models.ClassCaseDiscount) {
		return DefaultCaseDiscount().LineTotal(price, qty)
	}
	return price.Mul(decimal.NewFromInt(int64(qty)))
}
