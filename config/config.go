// Package config loads the store configuration from TOML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"adega-delivery/utils"
)

// DefaultPath is the store configuration file read when CONFIG_PATH is unset
const DefaultPath = "config/store.toml"

// Config is the store configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Store   StoreConfig   `toml:"store"`
	Catalog CatalogConfig `toml:"catalog"`
	Pricing PricingConfig `toml:"pricing"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

// StoreConfig gates checkout. MinimumOrder is compared against the post-discount total.
type StoreConfig struct {
	Name           string          `toml:"name"`
	Open           bool            `toml:"open"`
	MinimumOrder   decimal.Decimal `toml:"minimum_order"`
	WhatsAppNumber string          `toml:"whatsapp_number"`
}

// CatalogConfig points at the option tables and the product list.
// An empty path selects the built-in defaults.
type CatalogConfig struct {
	OptionsPath  string `toml:"options_path"`
	ProductsPath string `toml:"products_path"`
}

type PricingConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used for missing keys
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Store: StoreConfig{
			Name:         "Adega",
			Open:         true,
			MinimumOrder: decimal.Zero,
		},
		Catalog: CatalogConfig{
			OptionsPath:  "config/catalog.json",
			ProductsPath: "config/products.json",
		},
		Pricing: PricingConfig{Path: "config/pricing.json"},
	}
}

// Parse decodes TOML data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// Load reads path (defaults when the file does not exist), applies environment
// overrides and validates the result
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		parsed, err := Parse(data)
		if err != nil {
			return nil, err
		}
		cfg = *parsed
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("STORE_NAME"); v != "" {
		c.Store.Name = v
	}
	if v := getenv("STORE_OPEN"); v != "" {
		open, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STORE_OPEN: %w", err)
		}
		c.Store.Open = open
	}
	if v := getenv("STORE_MINIMUM_ORDER"); v != "" {
		minimum, err := utils.ParseMoney(v)
		if err != nil {
			return fmt.Errorf("STORE_MINIMUM_ORDER: %w", err)
		}
		c.Store.MinimumOrder = minimum
	}
	if v := getenv("WHATSAPP_NUMBER"); v != "" {
		c.Store.WhatsAppNumber = v
	}
	if v := getenv("CATALOG_PATH"); v != "" {
		c.Catalog.OptionsPath = v
	}
	if v := getenv("PRODUCTS_PATH"); v != "" {
		c.Catalog.ProductsPath = v
	}
	if v := getenv("PRICING_PATH"); v != "" {
		c.Pricing.Path = v
	}
	// Remove leading colon if present (PORT from some hosts includes it)
	c.Server.Port = strings.TrimPrefix(c.Server.Port, ":")
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("server.port must be a TCP port, got %q", c.Server.Port)
	}
	if strings.TrimSpace(c.Store.Name) == "" {
		return fmt.Errorf("store.name is required")
	}
	if c.Store.MinimumOrder.IsNegative() {
		return fmt.Errorf("store.minimum_order must not be negative")
	}
	return nil
}

// Addr returns the listen address on all interfaces
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Server.Port
}
