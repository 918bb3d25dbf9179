// Package steps holds the validators of each product configuration step.
//
// A validator never mutates the selection it receives: Validate answers
// whether a one-unit change is acceptable, Apply returns a new selection
// with the change applied, and Confirm checks the completion rule of the step.
// Rejections are *models.EngineError values with CodeValidationRejected.
package steps

// Step identifies a configuration step. The declaration order is the order
// in which steps are presented.
type Step int

const (
	StepIce Step = iota
	StepAlcohol
	StepMixerFlavor
	StepEnergyDrink
)

// All lists every step in precedence order
var All = []Step{StepIce, StepAlcohol, StepMixerFlavor, StepEnergyDrink}

func (s Step) String() string {
	switch s {
	case StepIce:
		return "ice"
	case StepAlcohol:
		return "alcohol"
	case StepMixerFlavor:
		return "mixer_flavor"
	case StepEnergyDrink:
		return "energy_drink"
	default:
		return "unknown"
	}
}

// MarshalText encodes the step as its name
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Delta is a one-unit change of a selection
type Delta int

const (
	Add    Delta = 1
	Remove Delta = -1
)

func (d Delta) valid() bool {
	return d == Add || d == Remove
}
