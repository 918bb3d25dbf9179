package models

import "github.com/shopspring/decimal"

// ProductClass is the set of configuration classes a product belongs to.
// It is assigned once when the catalog is loaded.
type ProductClass uint8

const (
	ClassRequiresIce ProductClass = 1 << iota
	ClassRequiresAlcohol
	ClassLargeCup
	ClassCombo
	ClassReferencesMixerBrand
	ClassCaseDiscount
)

// ClassSimple is a product with no configuration steps
const ClassSimple ProductClass = 0

// Has reports whether every flag in other is set
func (c ProductClass) Has(other ProductClass) bool {
	return other != 0 && c&other == other
}

// IsDrinkMix reports whether the product is a large cup or a combo
func (c ProductClass) IsDrinkMix() bool {
	return c&(ClassLargeCup|ClassCombo) != 0
}

// Names returns the readable flag names in declaration order
func (c ProductClass) Names() []string {
	names := []string{}
	flags := []struct {
		flag ProductClass
		name string
	}{
		{ClassRequiresIce, "requiresIce"},
		{ClassRequiresAlcohol, "requiresAlcohol"},
		{ClassLargeCup, "largeCup"},
		{ClassCombo, "combo"},
		{ClassReferencesMixerBrand, "referencesMixerBrand"},
		{ClassCaseDiscount, "caseDiscount"},
	}
	for _, f := range flags {
		if c.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		names = append(names, "simple")
	}
	return names
}

// CatalogProduct is a sellable product as provided by the product catalog
type CatalogProduct struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Class     ProductClass    `json:"-"`
	Classes   []string        `json:"classes"`
}

// IceFlavor is a selectable ice flavor. Plain marks the unflavored water ice.
type IceFlavor struct {
	Name  string `json:"name"`
	Plain bool   `json:"plain,omitempty"`
}

// Spirit is a base alcohol choice for cocktail-base products.
// Categories lists the alcohol-choice category keywords offering it; empty offers it to all.
type Spirit struct {
	Name       string          `json:"name"`
	ExtraCost  decimal.Decimal `json:"extraCost"`
	Categories []string        `json:"categories,omitempty"`
}

// MixerFlavor is a flavor of the flavored-mixer brand
type MixerFlavor struct {
	Name string `json:"name"`
}

// EnergyDrink is an accompaniment offered with large cups and combos.
// ExtraCost applies to large-cup products, ComboExtraCost to combos.
// UnitCap overrides the per-brand combo cap when greater than zero.
type EnergyDrink struct {
	Brand          string          `json:"brand"`
	Flavor         string          `json:"flavor"`
	ExtraCost      decimal.Decimal `json:"extraCost"`
	ComboExtraCost decimal.Decimal `json:"comboExtraCost"`
	UnitCap        int             `json:"unitCap,omitempty"`
	LargeFormat    bool            `json:"largeFormat,omitempty"`
}

// CostFor returns the per-unit extra cost in the context of the given product class
func (d EnergyDrink) CostFor(class ProductClass) decimal.Decimal {
	if class.Has(ClassCombo) {
		return d.ComboExtraCost
	}
	return d.ExtraCost
}
