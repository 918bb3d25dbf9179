package steps

import (
	"adega-delivery/catalog"
	"adega-delivery/models"
)

const (
	// LargeCupIceUnits is the exact ice total of a large cup
	LargeCupIceUnits = 1
	// ComboIceUnits is the exact ice total of a combo
	ComboIceUnits = 5
	// DefaultIceCeiling applies to other ice-requiring drinks
	DefaultIceCeiling = 3
	// PlainIceBagUnits is one full bag of plain water ice
	PlainIceBagUnits = 5
)

// IceValidator enforces the ice selection rules for one product class
type IceValidator struct {
	catalog *catalog.Catalog
	class   models.ProductClass
}

// NewIceValidator creates an ice validator for the given product class
func NewIceValidator(c *catalog.Catalog, class models.ProductClass) IceValidator {
	return IceValidator{catalog: c, class: class}
}

// Ceiling returns the maximum total ice units for the product class
func (v IceValidator) Ceiling() int {
	switch {
	case v.class.Has(models.ClassCombo):
		return ComboIceUnits
	case v.class.Has(models.ClassLargeCup):
		return LargeCupIceUnits
	default:
		return DefaultIceCeiling
	}
}

func (v IceValidator) ceilingMessage() string {
	switch {
	case v.class.Has(models.ClassCombo):
		return models.MsgIceComboLimit
	case v.class.Has(models.ClassLargeCup):
		return models.MsgIceLargeCupLimit
	default:
		return models.MsgIceDefaultLimit
	}
}

func (v IceValidator) isPlain(name string) bool {
	f, ok := v.catalog.IceFlavor(name)
	return ok && f.Plain
}

// Validate checks a one-unit change of flavor against the current selection.
// It returns the canonical catalog flavor on success.
func (v IceValidator) Validate(sel map[string]int, flavor string, delta Delta) (models.IceFlavor, error) {
	if !delta.valid() {
		return models.IceFlavor{}, models.NewValidationRejected(models.MsgDeltaMustBeOneUnit)
	}
	f, ok := v.catalog.IceFlavor(flavor)
	if !ok {
		return models.IceFlavor{}, models.NewValidationRejected(models.MsgIceUnknownFlavor)
	}

	if delta == Remove {
		if sel[f.Name] <= 0 {
			return f, models.NewValidationRejected(models.MsgIceNothingToRemove)
		}
		return f, nil
	}

	total, plainQty, flavoredQty := 0, 0, 0
	for name, qty := range sel {
		if qty <= 0 {
			continue
		}
		total += qty
		if v.isPlain(name) {
			plainQty += qty
		} else {
			flavoredQty += qty
		}
	}

	if f.Plain && flavoredQty > 0 {
		return f, models.NewValidationRejected(models.MsgIcePlainWithFlavored)
	}
	if !f.Plain && plainQty > 0 {
		return f, models.NewValidationRejected(models.MsgIceFlavoredWithPlain)
	}
	// the bag cap is reported first; below it the class ceiling still applies
	if f.Plain && plainQty >= PlainIceBagUnits {
		return f, models.NewValidationRejected(models.MsgIcePlainBagLimit)
	}
	if total >= v.Ceiling() {
		return f, models.NewValidationRejected(v.ceilingMessage())
	}
	return f, nil
}

// Apply returns a copy of sel with the change applied, or the rejection
func (v IceValidator) Apply(sel map[string]int, flavor string, delta Delta) (map[string]int, error) {
	f, err := v.Validate(sel, flavor, delta)
	if err != nil {
		return sel, err
	}
	next := make(map[string]int, len(sel)+1)
	for name, qty := range sel {
		next[name] = qty
	}
	next[f.Name] += int(delta)
	if next[f.Name] <= 0 {
		delete(next, f.Name)
	}
	return next, nil
}

// Confirm checks the completion rule of the ice step
func (v IceValidator) Confirm(sel map[string]int) error {
	total := 0
	for _, qty := range sel {
		if qty > 0 {
			total += qty
		}
	}
	if total == 0 {
		return models.NewValidationRejected(models.MsgIceEmpty)
	}
	if v.class.Has(models.ClassCombo) && total != ComboIceUnits {
		return models.NewValidationRejected(models.MsgIceComboExact)
	}
	if v.class.Has(models.ClassLargeCup) && total != LargeCupIceUnits {
		return models.NewValidationRejected(models.MsgIceLargeCupExact)
	}
	return nil
}
