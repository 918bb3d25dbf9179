// Package planner sequences the configuration steps of one in-flight product.
//
// The planner is a state machine:
//
//	Idle -> AwaitingIce -> AwaitingAlcohol -> AwaitingMixerFlavor -> AwaitingEnergyDrink -> Complete
//
// Steps that do not apply to the product are skipped. The pending steps are
// re-evaluated after every confirmation because a completed ice step reveals
// the energy drink step of large cups and combos.
package planner

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"adega-delivery/catalog"
	"adega-delivery/models"
	"adega-delivery/pricing"
	"adega-delivery/steps"
)

// State is the planner state
type State int

const (
	Idle State = iota
	AwaitingIce
	AwaitingAlcohol
	AwaitingMixerFlavor
	AwaitingEnergyDrink
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingIce:
		return "awaiting_ice"
	case AwaitingAlcohol:
		return "awaiting_alcohol"
	case AwaitingMixerFlavor:
		return "awaiting_mixer_flavor"
	case AwaitingEnergyDrink:
		return "awaiting_energy_drink"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

func awaiting(step steps.Step) State {
	switch step {
	case steps.StepIce:
		return AwaitingIce
	case steps.StepAlcohol:
		return AwaitingAlcohol
	case steps.StepMixerFlavor:
		return AwaitingMixerFlavor
	default:
		return AwaitingEnergyDrink
	}
}

// MarshalText encodes the state as its name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Step returns the step awaited in state s
func (s State) Step() (steps.Step, bool) {
	switch s {
	case AwaitingIce:
		return steps.StepIce, true
	case AwaitingAlcohol:
		return steps.StepAlcohol, true
	case AwaitingMixerFlavor:
		return steps.StepMixerFlavor, true
	case AwaitingEnergyDrink:
		return steps.StepEnergyDrink, true
	default:
		return 0, false
	}
}

// Planner owns a single in-flight configuration. It is not safe for concurrent use.
type Planner struct {
	catalog *catalog.Catalog
	logger  *zap.Logger

	state     State
	product   *models.Product
	required  map[steps.Step]bool
	completed map[steps.Step]bool

	// working selections of the current step, committed to product on confirm
	ice    map[string]int
	spirit *models.Spirit
	mixer  string
	energy []models.EnergyDrinkSelection
}

// New creates an idle planner over immutable option tables
func New(c *catalog.Catalog, logger *zap.Logger) *Planner {
	return &Planner{catalog: c, logger: logger}
}

// State returns the current state
func (p *Planner) State() State {
	return p.state
}

// InFlight reports whether a configuration has started and is not complete
func (p *Planner) InFlight() bool {
	return p.state != Idle && p.state != Complete
}

// Start begins configuring product. Starting while another configuration is
// in flight is rejected; a complete configuration that was never taken is discarded.
func (p *Planner) Start(product models.CatalogProduct) (State, error) {
	if p.InFlight() {
		return p.state, models.NewValidationRejected(models.MsgConfigurationInFlight)
	}
	p.reset()
	p.product = models.NewProduct(product)
	p.required = map[steps.Step]bool{}
	p.completed = map[steps.Step]bool{}
	p.advance()

	p.logger.Debug("🍹 configuration started",
		zap.String("product", product.Name),
		zap.Strings("classes", product.Class.Names()),
		zap.String("state", p.state.String()),
	)
	return p.state, nil
}

// Cancel discards the in-flight configuration. It is idempotent.
func (p *Planner) Cancel() {
	if p.state != Idle {
		p.logger.Debug("🚫 configuration cancelled", zap.String("state", p.state.String()))
	}
	p.reset()
}

func (p *Planner) reset() {
	p.state = Idle
	p.product = nil
	p.required = nil
	p.completed = nil
	p.ice = nil
	p.spirit = nil
	p.mixer = ""
	p.energy = nil
}

// applies reports which steps apply to the product as currently configured
func (p *Planner) applies(step steps.Step) bool {
	class := p.product.Class
	switch step {
	case steps.StepIce:
		return class.Has(models.ClassRequiresIce)
	case steps.StepAlcohol:
		return class.Has(models.ClassRequiresAlcohol)
	case steps.StepMixerFlavor:
		return class.Has(models.ClassReferencesMixerBrand)
	case steps.StepEnergyDrink:
		return class.IsDrinkMix() && p.product.IceTotal() > 0
	default:
		return false
	}
}

// advance accumulates the applicable steps and enters the first uncompleted one
func (p *Planner) advance() {
	for _, step := range steps.All {
		if p.applies(step) {
			p.required[step] = true
		}
	}
	for _, step := range steps.All {
		if p.required[step] && !p.completed[step] {
			p.state = awaiting(step)
			return
		}
	}
	p.product.Price = pricing.UnitPrice(p.product)
	p.state = Complete
}

// Pending returns the required steps not yet completed, in precedence order.
// Steps revealed by later confirmations are not included until they apply.
func (p *Planner) Pending() []steps.Step {
	pending := []steps.Step{}
	if p.product == nil {
		return pending
	}
	for _, step := range steps.All {
		if p.required[step] && !p.completed[step] {
			pending = append(pending, step)
		}
	}
	return pending
}

func (p *Planner) expect(state State) error {
	if p.state == Idle {
		return models.NewValidationRejected(models.MsgNoConfiguration)
	}
	if p.state != state {
		return models.NewValidationRejected(models.MsgStepNotPending)
	}
	return nil
}

func (p *Planner) reject(step steps.Step, err error) error {
	p.logger.Debug("⚠️ selection rejected",
		zap.String("step", step.String()),
		zap.String("product", p.product.Name),
		zap.String("reason", err.Error()),
	)
	return err
}

// UpdateIce adds or removes one unit of an ice flavor
func (p *Planner) UpdateIce(flavor string, delta steps.Delta) error {
	if err := p.expect(AwaitingIce); err != nil {
		return err
	}
	v := steps.NewIceValidator(p.catalog, p.product.Class)
	next, err := v.Apply(p.ice, flavor, delta)
	if err != nil {
		return p.reject(steps.StepIce, err)
	}
	p.ice = next
	return nil
}

// SelectIce adds one unit of an ice flavor
func (p *Planner) SelectIce(flavor string) error {
	return p.UpdateIce(flavor, steps.Add)
}

// DeselectIce removes one unit of an ice flavor
func (p *Planner) DeselectIce(flavor string) error {
	return p.UpdateIce(flavor, steps.Remove)
}

// ChooseAlcohol picks the base spirit, replacing any previous choice
func (p *Planner) ChooseAlcohol(name string) error {
	if err := p.expect(AwaitingAlcohol); err != nil {
		return err
	}
	s, err := steps.NewAlcoholValidator(p.catalog, p.product.Category).Validate(name)
	if err != nil {
		return p.reject(steps.StepAlcohol, err)
	}
	p.spirit = &s
	return nil
}

// ChooseMixerFlavor picks the mixer flavor, replacing any previous choice
func (p *Planner) ChooseMixerFlavor(name string) error {
	if err := p.expect(AwaitingMixerFlavor); err != nil {
		return err
	}
	m, err := steps.NewMixerValidator(p.catalog).Validate(name)
	if err != nil {
		return p.reject(steps.StepMixerFlavor, err)
	}
	p.mixer = m.Name
	return nil
}

// UpdateEnergyDrink adds or removes one unit of an energy drink
func (p *Planner) UpdateEnergyDrink(brand, flavor string, delta steps.Delta) error {
	if err := p.expect(AwaitingEnergyDrink); err != nil {
		return err
	}
	v := steps.NewEnergyValidator(p.catalog, p.product.Class)
	next, err := v.Apply(p.energy, brand, flavor, delta)
	if err != nil {
		return p.reject(steps.StepEnergyDrink, err)
	}
	p.energy = next
	return nil
}

// SelectEnergyDrink adds one unit of an energy drink
func (p *Planner) SelectEnergyDrink(brand, flavor string) error {
	return p.UpdateEnergyDrink(brand, flavor, steps.Add)
}

// DeselectEnergyDrink removes one unit of an energy drink
func (p *Planner) DeselectEnergyDrink(brand, flavor string) error {
	return p.UpdateEnergyDrink(brand, flavor, steps.Remove)
}

// Confirm completes the current step and moves to the next pending one
func (p *Planner) Confirm() (State, error) {
	if p.state == Idle {
		return p.state, models.NewValidationRejected(models.MsgNoConfiguration)
	}
	step, ok := p.state.Step()
	if !ok {
		return p.state, nil
	}

	switch step {
	case steps.StepIce:
		if err := steps.NewIceValidator(p.catalog, p.product.Class).Confirm(p.ice); err != nil {
			return p.state, p.reject(step, err)
		}
		p.product.Ice = copyIce(p.ice)
	case steps.StepAlcohol:
		chosen := ""
		if p.spirit != nil {
			chosen = p.spirit.Name
		}
		if err := steps.NewAlcoholValidator(p.catalog, p.product.Category).Confirm(chosen); err != nil {
			return p.state, p.reject(step, err)
		}
		p.product.Alcohol = p.spirit.Name
		p.product.AlcoholExtraCost = p.spirit.ExtraCost
	case steps.StepMixerFlavor:
		if err := steps.NewMixerValidator(p.catalog).Confirm(p.mixer); err != nil {
			return p.state, p.reject(step, err)
		}
		p.product.MixerFlavor = p.mixer
	case steps.StepEnergyDrink:
		if err := steps.NewEnergyValidator(p.catalog, p.product.Class).Confirm(p.energy); err != nil {
			return p.state, p.reject(step, err)
		}
		p.product.EnergyDrinks = append([]models.EnergyDrinkSelection(nil), p.energy...)
	}

	p.completed[step] = true
	p.advance()
	p.logger.Debug("✅ step confirmed",
		zap.String("step", step.String()),
		zap.String("product", p.product.Name),
		zap.String("state", p.state.String()),
	)
	return p.state, nil
}

func copyIce(sel map[string]int) map[string]int {
	out := make(map[string]int, len(sel))
	for k, v := range sel {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}

// Result returns a copy of the configured product with qty 1.
// It fails with ConfigurationIncomplete until every required step is done.
func (p *Planner) Result() (*models.Product, error) {
	if p.state == Idle {
		return nil, models.NewConfigurationIncomplete(models.MsgNoConfiguration)
	}
	if p.state != Complete {
		return nil, models.NewConfigurationIncomplete(models.MsgConfigurationNotDone)
	}
	out := p.product.Clone()
	out.Price = pricing.UnitPrice(out)
	out.Qty = 1
	return out, nil
}

// Take returns the configured product and resets the planner to Idle
func (p *Planner) Take() (*models.Product, error) {
	out, err := p.Result()
	if err != nil {
		return nil, err
	}
	p.reset()
	return out, nil
}

// PreviewPrice returns the unit price including the working selections of the
// current step. It is for display only; the committed price is computed on completion.
func (p *Planner) PreviewPrice() decimal.Decimal {
	if p.product == nil {
		return decimal.Zero
	}
	alcoholExtra := p.product.AlcoholExtraCost
	if p.state == AwaitingAlcohol && p.spirit != nil {
		alcoholExtra = p.spirit.ExtraCost
	}
	energy := p.product.EnergyDrinks
	if p.state == AwaitingEnergyDrink {
		energy = p.energy
	}
	return pricing.ComposeUnitPrice(p.product.BasePrice, alcoholExtra, energy)
}

// View is a read-only snapshot of the in-flight configuration.
// Product holds the committed steps; the other selections are the working
// selections of the current step.
type View struct {
	State        State                         `json:"state"`
	Step         string                        `json:"step,omitempty"`
	Pending      []steps.Step                  `json:"pending"`
	Product      *models.Product               `json:"product,omitempty"`
	Ice          map[string]int                `json:"ice,omitempty"`
	IceCeiling   int                           `json:"iceCeiling,omitempty"`
	Alcohol      string                        `json:"alcohol,omitempty"`
	Spirits      []models.Spirit               `json:"spirits,omitempty"`
	MixerFlavor  string                        `json:"mixerFlavor,omitempty"`
	EnergyDrinks []models.EnergyDrinkSelection `json:"energyDrinkSelections,omitempty"`
	PreviewPrice decimal.Decimal               `json:"previewPrice"`
}

// View returns a snapshot that shares no maps or slices with the planner
func (p *Planner) View() View {
	v := View{State: p.state, Pending: p.Pending(), PreviewPrice: p.PreviewPrice()}
	if p.product == nil {
		return v
	}
	if step, ok := p.state.Step(); ok {
		v.Step = step.String()
	}
	v.Product = p.product.Clone()
	v.Ice = copyIce(p.ice)
	if p.state == AwaitingIce {
		v.IceCeiling = steps.NewIceValidator(p.catalog, p.product.Class).Ceiling()
	}
	if p.state == AwaitingAlcohol {
		v.Spirits = steps.NewAlcoholValidator(p.catalog, p.product.Category).Spirits()
	}
	if p.spirit != nil {
		v.Alcohol = p.spirit.Name
	}
	v.MixerFlavor = p.mixer
	v.EnergyDrinks = append([]models.EnergyDrinkSelection(nil), p.energy...)
	return v
}
