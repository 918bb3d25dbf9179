package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// EnergyDrinkSelection is a chosen energy drink with the units picked and
// the extra cost charged per unit in the product's context
type EnergyDrinkSelection struct {
	Brand         string          `json:"brand"`
	Flavor        string          `json:"flavor"`
	Qty           int             `json:"qty"`
	LargeFormat   bool            `json:"largeFormat,omitempty"`
	UnitExtraCost decimal.Decimal `json:"unitExtraCost"`
}

// Product is a product descriptor, possibly customized.
// Price is the final unit price once every required step is complete.
type Product struct {
	ProductID        int64                  `json:"productId"`
	Name             string                 `json:"name"`
	Category         string                 `json:"category"`
	Class            ProductClass           `json:"-"`
	BasePrice        decimal.Decimal        `json:"basePrice"`
	Ice              map[string]int         `json:"ice,omitempty"`
	Alcohol          string                 `json:"alcohol,omitempty"`
	AlcoholExtraCost decimal.Decimal        `json:"alcoholExtraCost"`
	MixerFlavor      string                 `json:"mixerFlavor,omitempty"`
	EnergyDrinks     []EnergyDrinkSelection `json:"energyDrinkSelections,omitempty"`
	Price            decimal.Decimal        `json:"price"`
	Qty              int                    `json:"qty"`
}

// NewProduct creates an unconfigured descriptor from a catalog record
func NewProduct(p CatalogProduct) *Product {
	return &Product{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Class:     p.Class,
		BasePrice: p.BasePrice,
		Price:     p.BasePrice,
	}
}

// IceTotal returns the total ice units selected
func (p *Product) IceTotal() int {
	total := 0
	for _, qty := range p.Ice {
		total += qty
	}
	return total
}

// EnergyDrinkTotal returns the total energy drink units selected
func (p *Product) EnergyDrinkTotal() int {
	total := 0
	for _, sel := range p.EnergyDrinks {
		total += sel.Qty
	}
	return total
}

// HasCustomization reports whether the descriptor carries ice or energy drink content
func (p *Product) HasCustomization() bool {
	return p.IceTotal() > 0 || p.EnergyDrinkTotal() > 0
}

// IceFlavorsSorted returns the selected ice flavors with qty > 0, sorted by name
func (p *Product) IceFlavorsSorted() []string {
	flavors := make([]string, 0, len(p.Ice))
	for flavor, qty := range p.Ice {
		if qty > 0 {
			flavors = append(flavors, flavor)
		}
	}
	sort.Strings(flavors)
	return flavors
}

// Clone returns a deep copy so that callers never share maps or slices with the owner
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Ice != nil {
		cp.Ice = make(map[string]int, len(p.Ice))
		for k, v := range p.Ice {
			cp.Ice[k] = v
		}
	}
	if p.EnergyDrinks != nil {
		cp.EnergyDrinks = append([]EnergyDrinkSelection(nil), p.EnergyDrinks...)
	}
	return &cp
}

// CartLine is a committed cart entry
type CartLine struct {
	ID string `json:"id"`
	Product
}

// Clone returns a deep copy of the line
func (l *CartLine) Clone() *CartLine {
	return &CartLine{ID: l.ID, Product: *l.Product.Clone()}
}
