package pricing

import (
	"github.com/shopspring/decimal"

	"adega-delivery/models"
)

// ComposeUnitPrice returns base + alcohol extra cost + the extra cost of every
// selected energy drink unit. Ice and mixer flavor carry no cost.
func ComposeUnitPrice(base, alcoholExtra decimal.Decimal, energy []models.EnergyDrinkSelection) decimal.Decimal {
	price := base.Add(alcoholExtra)
	for _, sel := range energy {
		if sel.Qty <= 0 {
			continue
		}
		price = price.Add(sel.UnitExtraCost.Mul(decimal.NewFromInt(int64(sel.Qty))))
	}
	return price
}

// UnitPrice composes the unit price of a configured descriptor
func UnitPrice(p *models.Product) decimal.Decimal {
	return ComposeUnitPrice(p.BasePrice, p.AlcoholExtraCost, p.EnergyDrinks)
}
