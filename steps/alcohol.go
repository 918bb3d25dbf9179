package steps

import (
	"strings"

	"adega-delivery/catalog"
	"adega-delivery/models"
)

// AlcoholValidator enforces the single-spirit choice among the spirits
// offered for the product category
type AlcoholValidator struct {
	catalog  *catalog.Catalog
	category string
}

// NewAlcoholValidator creates an alcohol validator for a product category
func NewAlcoholValidator(c *catalog.Catalog, category string) AlcoholValidator {
	return AlcoholValidator{catalog: c, category: category}
}

// Spirits lists the choices offered for the category
func (v AlcoholValidator) Spirits() []models.Spirit {
	return v.catalog.SpiritsFor(v.category)
}

// Validate resolves the chosen spirit; choosing again replaces the previous choice
func (v AlcoholValidator) Validate(name string) (models.Spirit, error) {
	if s, ok := v.catalog.SpiritFor(v.category, name); ok {
		return s, nil
	}
	if _, ok := v.catalog.Spirit(name); ok {
		return models.Spirit{}, models.NewValidationRejected(models.MsgAlcoholNotOffered)
	}
	return models.Spirit{}, models.NewValidationRejected(models.MsgAlcoholUnknown)
}

// Confirm requires exactly one chosen spirit offered for the category
func (v AlcoholValidator) Confirm(chosen string) error {
	if strings.TrimSpace(chosen) == "" {
		return models.NewValidationRejected(models.MsgAlcoholRequired)
	}
	_, err := v.Validate(chosen)
	return err
}
