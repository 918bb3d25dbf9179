package steps

import (
	"strings"

	"adega-delivery/catalog"
	"adega-delivery/models"
)

// MixerValidator enforces the single mixer-flavor choice. The step carries no extra cost.
type MixerValidator struct {
	catalog *catalog.Catalog
}

// NewMixerValidator creates a mixer-flavor validator
func NewMixerValidator(c *catalog.Catalog) MixerValidator {
	return MixerValidator{catalog: c}
}

// Validate resolves the chosen flavor
func (v MixerValidator) Validate(name string) (models.MixerFlavor, error) {
	m, ok := v.catalog.MixerFlavor(name)
	if !ok {
		return models.MixerFlavor{}, models.NewValidationRejected(models.MsgMixerUnknown)
	}
	return m, nil
}

// Confirm requires exactly one chosen flavor
func (v MixerValidator) Confirm(chosen string) error {
	if strings.TrimSpace(chosen) == "" {
		return models.NewValidationRejected(models.MsgMixerRequired)
	}
	if _, ok := v.catalog.MixerFlavor(chosen); !ok {
		return models.NewValidationRejected(models.MsgMixerUnknown)
	}
	return nil
}
