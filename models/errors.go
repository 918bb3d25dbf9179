package models

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures raised by the configuration engine
type ErrorCode int

const (
	CodeValidationRejected ErrorCode = iota
	CodeConfigurationIncomplete
	CodeInvariantViolation
)

func (c ErrorCode) String() string {
	switch c {
	case CodeValidationRejected:
		return "VALIDATION_REJECTED"
	case CodeConfigurationIncomplete:
		return "CONFIGURATION_INCOMPLETE"
	case CodeInvariantViolation:
		return "INVARIANT_VIOLATION_IN_CART"
	default:
		return "UNKNOWN"
	}
}

// EngineError carries a user-facing message. ValidationRejected and
// ConfigurationIncomplete never mutate state and are safe to show as a warning.
type EngineError struct {
	Code    ErrorCode
	Message string
}

func (e *EngineError) Error() string {
	return e.Message
}

// NewValidationRejected creates a recoverable rejection for a step action
func NewValidationRejected(message string) *EngineError {
	return &EngineError{Code: CodeValidationRejected, Message: message}
}

// NewValidationRejectedf is NewValidationRejected with formatting
func NewValidationRejectedf(format string, args ...interface{}) *EngineError {
	return &EngineError{Code: CodeValidationRejected, Message: fmt.Sprintf(format, args...)}
}

// NewConfigurationIncomplete reports a commit attempted before every required step completed
func NewConfigurationIncomplete(message string) *EngineError {
	return &EngineError{Code: CodeConfigurationIncomplete, Message: message}
}

// NewInvariantViolation reports a broken cart invariant
func NewInvariantViolation(format string, args ...interface{}) *EngineError {
	return &EngineError{Code: CodeInvariantViolation, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the engine code of err and whether err is an EngineError
func CodeOf(err error) (ErrorCode, bool) {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Code, true
	}
	return 0, false
}

// IsValidationRejected reports whether err is a recoverable step rejection
func IsValidationRejected(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeValidationRejected
}

// IsConfigurationIncomplete reports whether err signals missing steps
func IsConfigurationIncomplete(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeConfigurationIncomplete
}

// User-facing warning messages.
const (
	MsgIceUnknownFlavor       = "Unknown ice flavor"
	MsgIcePlainWithFlavored   = "Plain water ice can't be combined with flavored ice"
	MsgIceFlavoredWithPlain   = "You already chose plain water ice; remove it before picking a flavor"
	MsgIcePlainBagLimit       = "Plain water ice is limited to 5 units (one full bag)"
	MsgIceLargeCupLimit       = "This cup takes only 1 ice"
	MsgIceComboLimit          = "Combos take at most 5 ice units"
	MsgIceDefaultLimit        = "You reached the ice limit for this drink"
	MsgIceNothingToRemove     = "This ice flavor is not selected"
	MsgIceEmpty               = "Select at least one ice flavor"
	MsgIceComboExact          = "Select exactly 5 ice units for combo products"
	MsgIceLargeCupExact       = "Select exactly 1 ice for this cup"
	MsgAlcoholUnknown         = "Unknown spirit"
	MsgAlcoholRequired        = "Choose one spirit to continue"
	MsgAlcoholNotOffered      = "This spirit is not offered for this drink"
	MsgMixerUnknown           = "Unknown flavor"
	MsgMixerRequired          = "Choose one flavor to continue"
	MsgEnergyNotOffered       = "Energy drinks are only offered with cups and combos"
	MsgEnergyUnknown          = "Unknown energy drink"
	MsgEnergyCansAfterLarge   = "You already chose a 2-liter drink; cans are not allowed"
	MsgEnergyLargeAfterCans   = "You already chose cans; a 2-liter drink is not allowed"
	MsgEnergyLargeLimit       = "Only one 2-liter drink is allowed"
	MsgEnergyLargeCupLimit    = "Select exactly 1 energy drink for this cup"
	MsgEnergyCanTotalLimit    = "Combos take at most 5 cans"
	MsgEnergyNothingToRemove  = "This energy drink is not selected"
	MsgEnergyComboExact       = "Select one 2-liter drink or exactly 5 cans for this combo"
	MsgNoConfiguration        = "No product is being configured"
	MsgConfigurationInFlight  = "Finish or cancel the current product first"
	MsgStepNotPending         = "This step is not available for the current product"
	MsgConfigurationNotDone   = "Finish every step before adding this product to the cart"
	MsgQuantityPositive       = "Quantity must be positive"
	MsgQuantityTooLarge       = "Quantity is above the per-line limit"
	MsgLineNotFound           = "Line not in cart"
	MsgCustomizedNeedsSteps   = "This product must be configured step by step"
	MsgDeltaMustBeOneUnit     = "Selections change one unit at a time"
	MsgCustomizedLineNotFound = "Customized products can only be changed through their cart line"
	MsgCustomerRequired       = "Customer name and phone are required"
)
