package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"adega-delivery/app/controller"
	"adega-delivery/metrics"
)

type Controllers struct {
	Catalog       *controller.CatalogController
	Cart          *controller.CartController
	Configuration *controller.ConfigurationController
	Checkout      *controller.CheckoutController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on a new mux. Each handler is counted
// under its pattern; /metrics exposes the gatherer.
func SetupRoutes(controllers *Controllers, m *metrics.ServerMetrics, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, m.Instrument(pattern, h))
	}

	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)
	mux.Handle("GET /metrics", metrics.Handler(gatherer))

	// Catalog
	handle("GET /products", controllers.Catalog.ListProducts)

	// Carts and lines
	handle("POST /carts", controllers.Cart.Create)
	handle("GET /carts/{cartID}", controllers.Cart.Get)
	handle("POST /carts/{cartID}/items", controllers.Cart.AddItem)
	handle("PATCH /carts/{cartID}/lines/{lineID}", controllers.Cart.UpdateLine)
	handle("DELETE /carts/{cartID}/lines/{lineID}", controllers.Cart.RemoveLine)

	// In-flight configuration
	handle("GET /carts/{cartID}/configuration", controllers.Configuration.Get)
	handle("POST /carts/{cartID}/configuration/ice", controllers.Configuration.UpdateIce)
	handle("POST /carts/{cartID}/configuration/alcohol", controllers.Configuration.ChooseAlcohol)
	handle("POST /carts/{cartID}/configuration/mixer", controllers.Configuration.ChooseMixerFlavor)
	handle("POST /carts/{cartID}/configuration/energy-drinks", controllers.Configuration.UpdateEnergyDrink)
	handle("POST /carts/{cartID}/configuration/confirm", controllers.Configuration.Confirm)
	handle("POST /carts/{cartID}/configuration/cancel", controllers.Configuration.Cancel)

	// Checkout
	handle("POST /carts/{cartID}/checkout", controllers.Checkout.Checkout)

	return mux
}
