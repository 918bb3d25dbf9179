package steps

import (
	"adega-delivery/catalog"
	"adega-delivery/models"
	"adega-delivery/utils"
)

const (
	// LargeFormatCap is the maximum number of large-format (2L) drinks
	LargeFormatCap = 1
	// CanTotalCap is the maximum number of cans across all brands
	CanTotalCap = 5
	// LargeCupBrandCap is the per-brand can cap with a large cup
	LargeCupBrandCap = 1
	// ComboBrandCap is the default per-brand can cap with a combo
	ComboBrandCap = 5
	// LargeCupEnergyUnits is the exact energy drink total of a large cup
	LargeCupEnergyUnits = 1
	// ComboCanUnits is the exact can total of a combo served with cans
	ComboCanUnits = 5
)

// EnergyValidator enforces the energy drink combination rules for one product class
type EnergyValidator struct {
	catalog *catalog.Catalog
	class   models.ProductClass
}

// NewEnergyValidator creates an energy drink validator for the given product class
func NewEnergyValidator(c *catalog.Catalog, class models.ProductClass) EnergyValidator {
	return EnergyValidator{catalog: c, class: class}
}

type energyTotals struct {
	total, large, cans int
	byBrand            map[string]int
}

func countEnergy(sel []models.EnergyDrinkSelection) energyTotals {
	t := energyTotals{byBrand: map[string]int{}}
	for _, s := range sel {
		if s.Qty <= 0 {
			continue
		}
		t.total += s.Qty
		if s.LargeFormat {
			t.large += s.Qty
		} else {
			t.cans += s.Qty
			t.byBrand[utils.Normalize(s.Brand)] += s.Qty
		}
	}
	return t
}

func (v EnergyValidator) brandCap(d models.EnergyDrink) int {
	if v.class.Has(models.ClassCombo) {
		if d.UnitCap > 0 {
			return d.UnitCap
		}
		return ComboBrandCap
	}
	return LargeCupBrandCap
}

func findSelection(sel []models.EnergyDrinkSelection, d models.EnergyDrink) int {
	for i, s := range sel {
		if utils.EqualFold(s.Brand, d.Brand) && utils.EqualFold(s.Flavor, d.Flavor) {
			return i
		}
	}
	return -1
}

// Validate checks a one-unit change against the current selection.
// It returns the catalog drink on success.
func (v EnergyValidator) Validate(sel []models.EnergyDrinkSelection, brand, flavor string, delta Delta) (models.EnergyDrink, error) {
	if !v.class.IsDrinkMix() {
		return models.EnergyDrink{}, models.NewValidationRejected(models.MsgEnergyNotOffered)
	}
	if !delta.valid() {
		return models.EnergyDrink{}, models.NewValidationRejected(models.MsgDeltaMustBeOneUnit)
	}
	d, ok := v.catalog.EnergyDrink(brand, flavor)
	if !ok {
		return models.EnergyDrink{}, models.NewValidationRejected(models.MsgEnergyUnknown)
	}

	if delta == Remove {
		if i := findSelection(sel, d); i < 0 || sel[i].Qty <= 0 {
			return d, models.NewValidationRejected(models.MsgEnergyNothingToRemove)
		}
		return d, nil
	}

	t := countEnergy(sel)
	largeCup := v.class.Has(models.ClassLargeCup)

	if d.LargeFormat {
		if t.cans > 0 {
			return d, models.NewValidationRejected(models.MsgEnergyLargeAfterCans)
		}
		if largeCup && t.total >= LargeCupEnergyUnits {
			return d, models.NewValidationRejected(models.MsgEnergyLargeCupLimit)
		}
		if t.large >= LargeFormatCap {
			return d, models.NewValidationRejected(models.MsgEnergyLargeLimit)
		}
		return d, nil
	}

	if t.large > 0 {
		return d, models.NewValidationRejected(models.MsgEnergyCansAfterLarge)
	}
	if largeCup && t.total >= LargeCupEnergyUnits {
		return d, models.NewValidationRejected(models.MsgEnergyLargeCupLimit)
	}
	if limit := v.brandCap(d); t.byBrand[utils.Normalize(d.Brand)] >= limit {
		return d, models.NewValidationRejectedf("%s is limited to %d per order", d.Brand, limit)
	}
	if t.cans >= CanTotalCap {
		return d, models.NewValidationRejected(models.MsgEnergyCanTotalLimit)
	}
	return d, nil
}

// Apply returns a copy of sel with the change applied, or the rejection.
// The unit extra cost is fixed by the product context when the drink is first added.
func (v EnergyValidator) Apply(sel []models.EnergyDrinkSelection, brand, flavor string, delta Delta) ([]models.EnergyDrinkSelection, error) {
	d, err := v.Validate(sel, brand, flavor, delta)
	if err != nil {
		return sel, err
	}
	next := append([]models.EnergyDrinkSelection(nil), sel...)
	i := findSelection(next, d)
	if i < 0 {
		next = append(next, models.EnergyDrinkSelection{
			Brand:         d.Brand,
			Flavor:        d.Flavor,
			LargeFormat:   d.LargeFormat,
			UnitExtraCost: d.CostFor(v.class),
		})
		i = len(next) - 1
	}
	next[i].Qty += int(delta)
	if next[i].Qty <= 0 {
		next = append(next[:i], next[i+1:]...)
	}
	return next, nil
}

// Confirm checks the completion rule of the energy drink step
func (v EnergyValidator) Confirm(sel []models.EnergyDrinkSelection) error {
	if !v.class.IsDrinkMix() {
		return models.NewValidationRejected(models.MsgEnergyNotOffered)
	}
	t := countEnergy(sel)
	if v.class.Has(models.ClassCombo) {
		if (t.large == LargeFormatCap && t.cans == 0) || (t.large == 0 && t.cans == ComboCanUnits) {
			return nil
		}
		return models.NewValidationRejected(models.MsgEnergyComboExact)
	}
	if t.total != LargeCupEnergyUnits {
		return models.NewValidationRejected(models.MsgEnergyLargeCupLimit)
	}
	return nil
}
