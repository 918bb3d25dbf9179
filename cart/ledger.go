// Package cart owns the line list of a single cart and applies the merge rule.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"adega-delivery/models"
	"adega-delivery/pricing"
)

// Ledger is the single owner of a cart's lines. It is not safe for concurrent use;
// callers serialize mutations per cart.
type Ledger struct {
	lines  []*models.CartLine
	logger *zap.Logger
	newID  func() string
}

// NewLedger creates an empty ledger
func NewLedger(logger *zap.Logger) *Ledger {
	return &Ledger{logger: logger, newID: uuid.NewString}
}

// Customized reports whether p never merges: it carries ice or energy drink
// content, or it is a large cup or combo.
func Customized(p *models.Product) bool {
	return p.HasCustomization() || p.Class.IsDrinkMix()
}

// Mergeable reports whether a and b combine into one line
func Mergeable(a, b *models.Product) bool {
	if Customized(a) || Customized(b) {
		return false
	}
	return a.Name == b.Name &&
		a.Category == b.Category &&
		a.Alcohol == b.Alcohol &&
		a.MixerFlavor == b.MixerFlavor
}

// missingSteps reports whether a class-required step has no content on p
func missingSteps(p *models.Product) bool {
	class := p.Class
	switch {
	case class.Has(models.ClassRequiresIce) && p.IceTotal() == 0:
		return true
	case class.Has(models.ClassRequiresAlcohol) && p.Alcohol == "":
		return true
	case class.Has(models.ClassReferencesMixerBrand) && p.MixerFlavor == "":
		return true
	case class.IsDrinkMix() && p.EnergyDrinkTotal() == 0:
		return true
	}
	return false
}

func (l *Ledger) index(lineID string) int {
	for i, line := range l.lines {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

// MaxLineQty caps the quantity of a single line
const MaxLineQty = 999

// nextQty applies delta to a line quantity without overflowing past MaxLineQty
func nextQty(qty, delta int) (int, error) {
	if delta > MaxLineQty-qty {
		return qty, models.NewValidationRejected(models.MsgQuantityTooLarge)
	}
	return qty + delta, nil
}

func (l *Ledger) removeAt(i int) {
	removed := l.lines[i]
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
	l.logger.Debug("🗑️ cart line removed", zap.String("line", removed.ID), zap.String("product", removed.Name))
}

// AddOrIncrement commits item with a quantity change of delta.
// A simple item merges into its mergeable line; a customized item always
// becomes a new line. A line whose quantity drops to 0 or below is removed
// and the returned line is nil.
func (l *Ledger) AddOrIncrement(item *models.Product, delta int) (*models.CartLine, error) {
	if missingSteps(item) {
		return nil, models.NewConfigurationIncomplete(models.MsgCustomizedNeedsSteps)
	}

	if Customized(item) {
		if delta <= 0 {
			return nil, models.NewValidationRejected(models.MsgCustomizedLineNotFound)
		}
		if _, err := nextQty(0, delta); err != nil {
			return nil, err
		}
		return l.addLine(item, delta), nil
	}

	for i, line := range l.lines {
		if !Mergeable(&line.Product, item) {
			continue
		}
		qty, err := nextQty(line.Qty, delta)
		if err != nil {
			return nil, err
		}
		line.Qty = qty
		if line.Qty <= 0 {
			l.removeAt(i)
			return nil, nil
		}
		l.logger.Debug("➕ cart line merged",
			zap.String("line", line.ID),
			zap.String("product", line.Name),
			zap.Int("qty", line.Qty),
		)
		return line.Clone(), nil
	}

	if delta <= 0 {
		return nil, models.NewValidationRejected(models.MsgQuantityPositive)
	}
	if _, err := nextQty(0, delta); err != nil {
		return nil, err
	}
	return l.addLine(item, delta), nil
}

func (l *Ledger) addLine(item *models.Product, qty int) *models.CartLine {
	line := &models.CartLine{ID: l.newID(), Product: *item.Clone()}
	line.Qty = qty
	l.lines = append(l.lines, line)
	l.logger.Debug("🛒 cart line added",
		zap.String("line", line.ID),
		zap.String("product", line.Name),
		zap.Bool("customized", Customized(&line.Product)),
		zap.Int("qty", qty),
	)
	return line.Clone()
}

// Increment changes the quantity of a line by delta, removing it at 0.
// A delta taking the line above MaxLineQty is rejected and the line is kept.
func (l *Ledger) Increment(lineID string, delta int) (*models.CartLine, error) {
	i := l.index(lineID)
	if i < 0 {
		return nil, models.NewValidationRejected(models.MsgLineNotFound)
	}
	line := l.lines[i]
	qty, err := nextQty(line.Qty, delta)
	if err != nil {
		return nil, err
	}
	line.Qty = qty
	if line.Qty <= 0 {
		l.removeAt(i)
		return nil, nil
	}
	return line.Clone(), nil
}

// Remove deletes a line regardless of its quantity
func (l *Ledger) Remove(lineID string) error {
	i := l.index(lineID)
	if i < 0 {
		return models.NewValidationRejected(models.MsgLineNotFound)
	}
	l.removeAt(i)
	return nil
}

// Line returns a copy of one line
func (l *Ledger) Line(lineID string) (*models.CartLine, bool) {
	i := l.index(lineID)
	if i < 0 {
		return nil, false
	}
	return l.lines[i].Clone(), true
}

// Lines returns a snapshot of the lines in insertion order
func (l *Ledger) Lines() []models.CartLine {
	out := make([]models.CartLine, 0, len(l.lines))
	for _, line := range l.lines {
		out = append(out, *line.Clone())
	}
	return out
}

// Len returns the number of lines
func (l *Ledger) Len() int {
	return len(l.lines)
}

// Units returns the total quantity across lines
func (l *Ledger) Units() int {
	units := 0
	for _, line := range l.lines {
		units += line.Qty
	}
	return units
}

// Clear empties the ledger
func (l *Ledger) Clear() {
	l.lines = nil
}

// Total sums every line through the beer case discount, recomputed on every call
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		total = total.Add(pricing.LineTotal(line.Price, line.Qty, line.Class))
	}
	return total
}

// Breakdown prices the current lines with the configured rules
func (l *Ledger) Breakdown(engine *pricing.Engine) *models.PricingBreakdown {
	return engine.CalculateCartPricing(l.Lines())
}

// Verify checks that no line is empty and no two lines are mergeable
func (l *Ledger) Verify() error {
	for i, a := range l.lines {
		if a.Qty <= 0 {
			return models.NewInvariantViolation("line %s has quantity %d", a.ID, a.Qty)
		}
		for _, b := range l.lines[i+1:] {
			if Mergeable(&a.Product, &b.Product) {
				return models.NewInvariantViolation("lines %s and %s are mergeable", a.ID, b.ID)
			}
		}
	}
	return nil
}
