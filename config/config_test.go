package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParse_OverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[store]
name = "Adega Central"
open = false
minimum_order = "35.50"
`))
	require.NoError(t, err)
	assert.Equal(t, "Adega Central", cfg.Store.Name)
	assert.False(t, cfg.Store.Open)
	assert.True(t, decimal.RequireFromString("35.50").Equal(cfg.Store.MinimumOrder))
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "config/pricing.json", cfg.Pricing.Path)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[store]\nnmae = \"typo\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.nmae")

	_, err = Parse([]byte("[store"))
	assert.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "none.toml"), env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeFile(t, "[server]\nport = \"9000\"\n[store]\nopen = true\n")
	cfg, err := load(path, env(map[string]string{
		"PORT":                ":10000",
		"STORE_OPEN":          "false",
		"STORE_MINIMUM_ORDER": "R$ 1.250,00",
		"CATALOG_PATH":        "/etc/adega/catalog.json",
		"PRODUCTS_PATH":       "/etc/adega/products.json",
		"PRICING_PATH":        "/etc/adega/pricing.json",
		"WHATSAPP_NUMBER":     "+5511988887777",
	}))
	require.NoError(t, err)
	assert.Equal(t, "10000", cfg.Server.Port)
	assert.False(t, cfg.Store.Open)
	assert.True(t, decimal.RequireFromString("1250").Equal(cfg.Store.MinimumOrder))
	assert.Equal(t, "/etc/adega/catalog.json", cfg.Catalog.OptionsPath)
	assert.Equal(t, "/etc/adega/products.json", cfg.Catalog.ProductsPath)
	assert.Equal(t, "/etc/adega/pricing.json", cfg.Pricing.Path)
	assert.Equal(t, "+5511988887777", cfg.Store.WhatsAppNumber)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"bad port", "[server]\nport = \"http\"\n", nil},
		{"port out of range", "[server]\nport = \"70000\"\n", nil},
		{"negative minimum", "[store]\nminimum_order = \"-1\"\n", nil},
		{"empty name", "[store]\nname = \" \"\n", nil},
		{"bad open flag", "", map[string]string{"STORE_OPEN": "maybe"}},
		{"bad minimum", "", map[string]string{"STORE_MINIMUM_ORDER": "abc"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := load(writeFile(t, c.body), env(c.env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_RepositoryStoreFile(t *testing.T) {
	cfg, err := load("store.toml", env(nil))
	require.NoError(t, err)
	assert.True(t, cfg.Store.Open)
	assert.True(t, decimal.RequireFromString("20").Equal(cfg.Store.MinimumOrder))
}
