package catalog

import (
	"adega-delivery/models"
	"adega-delivery/utils"
)

// Keywords holds the tokens matched against normalized product text
type Keywords struct {
	LargeCup      []string `json:"largeCup"`      // category tokens of large-cup ("copão") products
	Combo         []string `json:"combo"`         // category tokens of combo products
	IceCategories []string `json:"iceCategories"` // other drink-mix categories that require ice
	AlcoholChoice []string `json:"alcoholChoice"` // spirit-agnostic cocktail base categories
	MixerBrand    []string `json:"mixerBrand"`    // flavored-mixer brand tokens in product names
	CaseDiscount  []string `json:"caseDiscount"`  // beverages sold in case units
}

// DefaultKeywords returns the canonical rule set
func DefaultKeywords() Keywords {
	return Keywords{
		LargeCup:      []string{"copao", "copoes"},
		Combo:         []string{"combo"},
		IceCategories: []string{"drink"},
		AlcoholChoice: []string{"caipirinha", "caipiroska", "batida"},
		MixerBrand:    []string{"baly"},
		CaseDiscount:  []string{"cerveja", "beer"},
	}
}

// withDefaults fills every empty token list from the canonical set
func (k Keywords) withDefaults() Keywords {
	d := DefaultKeywords()
	if len(k.LargeCup) == 0 {
		k.LargeCup = d.LargeCup
	}
	if len(k.Combo) == 0 {
		k.Combo = d.Combo
	}
	if k.IceCategories == nil {
		k.IceCategories = d.IceCategories
	}
	if len(k.AlcoholChoice) == 0 {
		k.AlcoholChoice = d.AlcoholChoice
	}
	if len(k.MixerBrand) == 0 {
		k.MixerBrand = d.MixerBrand
	}
	if len(k.CaseDiscount) == 0 {
		k.CaseDiscount = d.CaseDiscount
	}
	return k
}

// Classifier answers category-membership predicates from product text.
// Matching is case- and accent-insensitive.
type Classifier struct {
	keywords Keywords
}

// NewClassifier creates a classifier; empty keyword lists fall back to the defaults
func NewClassifier(keywords Keywords) *Classifier {
	return &Classifier{keywords: keywords.withDefaults()}
}

// DefaultClassifier creates a classifier with the canonical rule set
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultKeywords())
}

// IsComboProduct reports whether the category is a combo category
func (c *Classifier) IsComboProduct(category string) bool {
	return utils.ContainsAny(category, c.keywords.Combo)
}

// IsLargeCupProduct reports whether the category is a large-cup category.
// A category matching both tokens is a combo.
func (c *Classifier) IsLargeCupProduct(category string) bool {
	return !c.IsComboProduct(category) && utils.ContainsAny(category, c.keywords.LargeCup)
}

// RequiresIceFlavor reports whether products in the category need an ice selection
func (c *Classifier) RequiresIceFlavor(category string) bool {
	return c.IsComboProduct(category) ||
		c.IsLargeCupProduct(category) ||
		utils.ContainsAny(category, c.keywords.IceCategories)
}

// RequiresAlcoholChoice reports whether the category sells a spirit-agnostic base
func (c *Classifier) RequiresAlcoholChoice(category string) bool {
	return utils.ContainsAny(category, c.keywords.AlcoholChoice)
}

// ReferencesMixerBrand reports whether the product name references the mixer brand
func (c *Classifier) ReferencesMixerBrand(name string) bool {
	return utils.ContainsAny(name, c.keywords.MixerBrand)
}

// IsCaseDiscountCategory reports whether the category is sold by the dozen (beer-class)
func (c *Classifier) IsCaseDiscountCategory(category string) bool {
	return utils.ContainsAny(category, c.keywords.CaseDiscount)
}

// Classify derives the product class from its name and category
func (c *Classifier) Classify(name, category string) models.ProductClass {
	var class models.ProductClass
	if c.RequiresIceFlavor(category) {
		class |= models.ClassRequiresIce
	}
	if c.RequiresAlcoholChoice(category) {
		class |= models.ClassRequiresAlcohol
	}
	if c.IsLargeCupProduct(category) {
		class |= models.ClassLargeCup
	}
	if c.IsComboProduct(category) {
		class |= models.ClassCombo
	}
	if c.ReferencesMixerBrand(name) {
		class |= models.ClassReferencesMixerBrand
	}
	if c.IsCaseDiscountCategory(category) {
		class |= models.ClassCaseDiscount
	}
	return class
}

// Assign classifies a catalog record in place
func (c *Classifier) Assign(p *models.CatalogProduct) {
	p.Class = c.Classify(p.Name, p.Category)
	p.Classes = p.Class.Names()
}
