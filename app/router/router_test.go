package router

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adega-delivery/app/controller"
	"adega-delivery/catalog"
	"adega-delivery/config"
	"adega-delivery/metrics"
	"adega-delivery/models"
	"adega-delivery/pricing"
	"adega-delivery/repository"
	"adega-delivery/service"
)

func newTestServer(t *testing.T, store config.StoreConfig) (*httptest.Server, *repository.MemoryOrderRepository) {
	t.Helper()
	logger := zap.NewNop()
	products := repository.NewMemoryProductRepository(catalog.DefaultClassifier(), []models.CatalogProduct{
		{ID: 1, Name: "Brahma Lata", Category: "Cervejas", BasePrice: decimal.RequireFromString("4.50")},
		{ID: 2, Name: "Copão de Vodka", Category: "Copão", BasePrice: decimal.RequireFromString("25.00")},
	})
	orders := repository.NewMemoryOrderRepository()
	registry := prometheus.NewRegistry()
	svc := service.NewOrderService(catalog.Default(), products, orders, pricing.NewDefaultEngine(logger),
		store, metrics.NewEngineMetrics(registry), logger)

	mux := SetupRoutes(&Controllers{
		Catalog:       controller.NewCatalogController(svc, logger),
		Cart:          controller.NewCartController(svc, logger),
		Configuration: controller.NewConfigurationController(svc, logger),
		Checkout:      controller.NewCheckoutController(svc, logger),
	}, metrics.NewServerMetrics(registry), registry)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, orders
}

func do(t *testing.T, server *httptest.Server, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestRoutes_Ping(t *testing.T) {
	server, _ := newTestServer(t, config.StoreConfig{Name: "Adega", Open: true})
	status, body := do(t, server, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, _ = do(t, server, http.MethodPost, "/ping", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestRoutes_FullOrderFlow(t *testing.T) {
	server, orders := newTestServer(t, config.StoreConfig{Name: "Adega", Open: true, MinimumOrder: decimal.NewFromInt(20)})

	status, body := do(t, server, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2.0, body["total"])

	status, body = do(t, server, http.MethodPost, "/carts", nil)
	require.Equal(t, http.StatusCreated, status)
	cartID := body["id"].(string)
	base := "/carts/" + cartID

	// beer is committed at once
	status, body = do(t, server, http.MethodPost, base+"/items", map[string]interface{}{"productId": 1, "qty": 12})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["lines"], 1)

	// the cup starts a configuration
	status, body = do(t, server, http.MethodPost, base+"/items", map[string]interface{}{"productId": 2})
	require.Equal(t, http.StatusOK, status)
	configuration := body["configuration"].(map[string]interface{})
	assert.Equal(t, "awaiting_ice", configuration["state"])

	status, body = do(t, server, http.MethodPost, base+"/configuration/ice", map[string]interface{}{"flavor": "Coco", "delta": 1})
	require.Equal(t, http.StatusOK, status)

	status, body = do(t, server, http.MethodPost, base+"/configuration/ice", map[string]interface{}{"flavor": "Coco", "delta": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.MsgIceLargeCupLimit, body["warning"])
	assert.Equal(t, "VALIDATION_REJECTED", body["code"])

	status, _ = do(t, server, http.MethodPost, base+"/configuration/confirm", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = do(t, server, http.MethodGet, base+"/configuration", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "awaiting_energy_drink", body["state"])

	status, _ = do(t, server, http.MethodPost, base+"/configuration/energy-drinks",
		map[string]interface{}{"brand": "Monster", "flavor": "Tradicional", "delta": 1})
	require.Equal(t, http.StatusOK, status)

	status, body = do(t, server, http.MethodPost, base+"/configuration/confirm", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["configuration"])
	assert.Len(t, body["lines"], 2)

	status, body = do(t, server, http.MethodGet, base+"/configuration", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "idle", body["state"])

	status, body = do(t, server, http.MethodPost, base+"/checkout", map[string]interface{}{
		"customerName": "Ana", "phone": "11999990000", "address": "Rua A, 10",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "placed", body["status"])
	assert.Contains(t, body["summary"], "Total: R$ 70,58")
	assert.Len(t, orders.Orders(), 1)

	status, _ = do(t, server, http.MethodPost, base+"/checkout", map[string]interface{}{"customerName": "Ana", "phone": "1199"})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = do(t, server, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRoutes_LinesAndErrors(t *testing.T) {
	server, _ := newTestServer(t, config.StoreConfig{Name: "Adega", Open: true})

	status, _ := do(t, server, http.MethodGet, "/carts/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)

	_, body := do(t, server, http.MethodPost, "/carts", nil)
	base := "/carts/" + body["id"].(string)

	status, _ = do(t, server, http.MethodPost, base+"/items", map[string]interface{}{"productId": 99})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, server, http.MethodPost, base+"/items", map[string]interface{}{"productId": 1, "bogus": true})
	assert.Equal(t, http.StatusBadRequest, status)

	_, body = do(t, server, http.MethodPost, base+"/items", map[string]interface{}{"productId": 1, "qty": 2})
	lineID := body["lines"].([]interface{})[0].(map[string]interface{})["id"].(string)

	status, body = do(t, server, http.MethodPatch, base+"/lines/"+lineID, map[string]interface{}{"delta": 1})
	require.Equal(t, http.StatusOK, status)
	line := body["lines"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 3.0, line["qty"])

	status, body = do(t, server, http.MethodPatch, base+"/lines/"+lineID, map[string]interface{}{"delta": math.MaxInt})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.MsgQuantityTooLarge, body["warning"])
	_, body = do(t, server, http.MethodGet, base, nil)
	assert.Equal(t, 3.0, body["lines"].([]interface{})[0].(map[string]interface{})["qty"])

	status, body = do(t, server, http.MethodDelete, base+"/lines/"+lineID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["lines"])

	status, body = do(t, server, http.MethodDelete, base+"/lines/"+lineID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.MsgLineNotFound, body["warning"])

	status, body = do(t, server, http.MethodPost, base+"/configuration/confirm", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.MsgNoConfiguration, body["warning"])

	status, _ = do(t, server, http.MethodPost, base+"/checkout", map[string]interface{}{"customerName": "Ana", "phone": "1199"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestRoutes_Metrics(t *testing.T) {
	server, _ := newTestServer(t, config.StoreConfig{Name: "Adega", Open: true})
	do(t, server, http.MethodPost, "/carts", nil)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `adega_http_requests_total{handler="POST /carts",status="201"} 1`)
}
