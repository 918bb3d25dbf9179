package controller

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"adega-delivery/planner"
	"adega-delivery/service"
	"adega-delivery/steps"
)

// ConfigurationController handles the step-by-step configuration of a cart's
// in-flight product
type ConfigurationController struct {
	service service.OrderServiceInterface
	logger  *zap.Logger
}

// NewConfigurationController creates a new ConfigurationController
func NewConfigurationController(svc service.OrderServiceInterface, logger *zap.Logger) *ConfigurationController {
	return &ConfigurationController{service: svc, logger: logger}
}

type iceRequest struct {
	Flavor string `json:"flavor"`
	Delta  int    `json:"delta"`
}

type alcoholRequest struct {
	Spirit string `json:"spirit"`
}

type mixerRequest struct {
	Flavor string `json:"flavor"`
}

type energyDrinkRequest struct {
	Brand  string `json:"brand"`
	Flavor string `json:"flavor"`
	Delta  int    `json:"delta"`
}

// Get handles GET /carts/{cartID}/configuration
func (c *ConfigurationController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := c.service.Snapshot(r.PathValue("cartID"))
	if err != nil {
		writeError(w, c.logger, "GetConfiguration", err)
		return
	}
	if view.Configuration == nil {
		writeJSON(w, c.logger, http.StatusOK, planner.View{State: planner.Idle, Pending: []steps.Step{}})
		return
	}
	writeJSON(w, c.logger, http.StatusOK, view.Configuration)
}

// UpdateIce handles POST /carts/{cartID}/configuration/ice
// Example request:
// {
//   "flavor": "Coco",
//   "delta": 1
// }
func (c *ConfigurationController) UpdateIce(w http.ResponseWriter, r *http.Request) {
	var req iceRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, c.logger, "UpdateIce", err)
		return
	}
	if req.Flavor == "" {
		badRequest(w, c.logger, "UpdateIce", errors.New("flavor is required"))
		return
	}
	c.respond(w, "UpdateIce")(c.service.UpdateIce(r.PathValue("cartID"), req.Flavor, steps.Delta(req.Delta)))
}

// ChooseAlcohol handles POST /carts/{cartID}/configuration/alcohol
// Example request:
// {
//   "spirit": "Vodka Absolut"
// }
func (c *ConfigurationController) ChooseAlcohol(w http.ResponseWriter, r *http.Request) {
	var req alcoholRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, c.logger, "ChooseAlcohol", err)
		return
	}
	c.respond(w, "ChooseAlcohol")(c.service.ChooseAlcohol(r.PathValue("cartID"), req.Spirit))
}

// ChooseMixerFlavor handles POST /carts/{cartID}/configuration/mixer
func (c *ConfigurationController) ChooseMixerFlavor(w http.ResponseWriter, r *http.Request) {
	var req mixerRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, c.logger, "ChooseMixerFlavor", err)
		return
	}
	c.respond(w, "ChooseMixerFlavor")(c.service.ChooseMixerFlavor(r.PathValue("cartID"), req.Flavor))
}

// UpdateEnergyDrink handles POST /carts/{cartID}/configuration/energy-drinks
// Example request:
// {
//   "brand": "Red Bull",
//   "flavor": "Tropical",
//   "delta": -1
// }
func (c *ConfigurationController) UpdateEnergyDrink(w http.ResponseWriter, r *http.Request) {
	var req energyDrinkRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, c.logger, "UpdateEnergyDrink", err)
		return
	}
	if req.Brand == "" || req.Flavor == "" {
		badRequest(w, c.logger, "UpdateEnergyDrink", errors.New("brand and flavor are required"))
		return
	}
	c.respond(w, "UpdateEnergyDrink")(
		c.service.UpdateEnergyDrink(r.PathValue("cartID"), req.Brand, req.Flavor, steps.Delta(req.Delta)))
}

// Confirm handles POST /carts/{cartID}/configuration/confirm.
// Confirming the last step commits the product to the cart.
func (c *ConfigurationController) Confirm(w http.ResponseWriter, r *http.Request) {
	c.respond(w, "ConfirmStep")(c.service.ConfirmStep(r.PathValue("cartID")))
}

// Cancel handles POST /carts/{cartID}/configuration/cancel
func (c *ConfigurationController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.respond(w, "CancelConfiguration")(c.service.CancelConfiguration(r.PathValue("cartID")))
}

func (c *ConfigurationController) respond(w http.ResponseWriter, op string) func(*service.CartView, error) {
	return func(view *service.CartView, err error) {
		if err != nil {
			writeError(w, c.logger, op, err)
			return
		}
		writeJSON(w, c.logger, http.StatusOK, view)
	}
}
