package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"adega-delivery/models"
	"adega-delivery/utils"
)

// Catalog holds the option tables offered by the configuration steps.
// It is loaded once and never mutated afterwards.
type Catalog struct {
	IceFlavors   []models.IceFlavor   `json:"iceFlavors"`
	Spirits      []models.Spirit      `json:"spirits"`
	MixerFlavors []models.MixerFlavor `json:"mixerFlavors"`
	EnergyDrinks []models.EnergyDrink `json:"energyDrinks"`
	Keywords     Keywords             `json:"keywords"`

	classifier *Classifier
}

// Load reads and validates a catalog JSON file
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	// Resolve config path
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Info("✅ catalog loaded",
		zap.String("path", path),
		zap.Int("ice_flavors", len(c.IceFlavors)),
		zap.Int("spirits", len(c.Spirits)),
		zap.Int("mixer_flavors", len(c.MixerFlavors)),
		zap.Int("energy_drinks", len(c.EnergyDrinks)),
	)
	return c, nil
}

// Parse decodes and validates catalog JSON
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	c.Keywords = c.Keywords.withDefaults()
	c.classifier = NewClassifier(c.Keywords)
	return &c, nil
}

// Validate checks the option tables for missing names, duplicates and negative costs
func (c *Catalog) Validate() error {
	if len(c.IceFlavors) == 0 {
		return fmt.Errorf("at least one ice flavor is required")
	}
	seen := map[string]bool{}
	plain := 0
	for _, f := range c.IceFlavors {
		key := utils.Normalize(f.Name)
		if key == "" {
			return fmt.Errorf("ice flavor name is required")
		}
		if seen[key] {
			return fmt.Errorf("duplicate ice flavor %q", f.Name)
		}
		seen[key] = true
		if f.Plain {
			plain++
		}
	}
	if plain > 1 {
		return fmt.Errorf("only one plain ice flavor is allowed, got %d", plain)
	}

	// a spirit name may repeat with a different price as long as no category offers it twice
	seen = map[string]bool{}
	for _, s := range c.Spirits {
		name := utils.Normalize(s.Name)
		if name == "" {
			return fmt.Errorf("spirit name is required")
		}
		if s.ExtraCost.IsNegative() {
			return fmt.Errorf("spirit %q has a negative extra cost", s.Name)
		}
		categories := []string{"*"}
		if len(s.Categories) > 0 {
			categories = categories[:0]
			for _, category := range s.Categories {
				key := utils.Normalize(category)
				if key == "" {
					return fmt.Errorf("spirit %q has an empty category", s.Name)
				}
				categories = append(categories, key)
			}
		}
		for _, category := range categories {
			key := name + "|" + category
			if seen[key] {
				return fmt.Errorf("duplicate spirit %q", s.Name)
			}
			seen[key] = true
		}
	}

	seen = map[string]bool{}
	for _, m := range c.MixerFlavors {
		key := utils.Normalize(m.Name)
		if key == "" {
			return fmt.Errorf("mixer flavor name is required")
		}
		if seen[key] {
			return fmt.Errorf("duplicate mixer flavor %q", m.Name)
		}
		seen[key] = true
	}

	seen = map[string]bool{}
	for _, d := range c.EnergyDrinks {
		if utils.Normalize(d.Brand) == "" || utils.Normalize(d.Flavor) == "" {
			return fmt.Errorf("energy drink brand and flavor are required")
		}
		key := energyKey(d.Brand, d.Flavor)
		if seen[key] {
			return fmt.Errorf("duplicate energy drink %s %s", d.Brand, d.Flavor)
		}
		seen[key] = true
		if d.ExtraCost.IsNegative() || d.ComboExtraCost.IsNegative() {
			return fmt.Errorf("energy drink %s %s has a negative extra cost", d.Brand, d.Flavor)
		}
		if d.UnitCap < 0 {
			return fmt.Errorf("energy drink %s %s has a negative unit cap", d.Brand, d.Flavor)
		}
	}
	return nil
}

func energyKey(brand, flavor string) string {
	return utils.Normalize(brand) + "|" + utils.Normalize(flavor)
}

// Classifier returns the classifier configured with the catalog keywords
func (c *Catalog) Classifier() *Classifier {
	if c.classifier == nil {
		return NewClassifier(c.Keywords)
	}
	return c.classifier
}

// IceFlavor looks up an ice flavor by name
func (c *Catalog) IceFlavor(name string) (models.IceFlavor, bool) {
	for _, f := range c.IceFlavors {
		if utils.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return models.IceFlavor{}, false
}

// PlainIce returns the plain water ice flavor if the catalog has one
func (c *Catalog) PlainIce() (models.IceFlavor, bool) {
	for _, f := range c.IceFlavors {
		if f.Plain {
			return f, true
		}
	}
	return models.IceFlavor{}, false
}

// Spirit looks up a spirit by name in any category
func (c *Catalog) Spirit(name string) (models.Spirit, bool) {
	for _, s := range c.Spirits {
		if utils.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return models.Spirit{}, false
}

func offers(s models.Spirit, category string) bool {
	return len(s.Categories) == 0 || utils.ContainsAny(category, s.Categories)
}

// SpiritsFor returns the spirits offered for a product category.
// An entry naming the category wins over a same-named entry offered to all.
func (c *Catalog) SpiritsFor(category string) []models.Spirit {
	out := []models.Spirit{}
	for _, s := range c.Spirits {
		if !offers(s, category) {
			continue
		}
		if len(s.Categories) == 0 && c.offeredByName(category, s.Name) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// offeredByName reports whether an entry naming the category offers the spirit
func (c *Catalog) offeredByName(category, name string) bool {
	for _, s := range c.Spirits {
		if len(s.Categories) > 0 && utils.EqualFold(s.Name, name) && offers(s, category) {
			return true
		}
	}
	return false
}

// SpiritFor looks up a spirit offered for a product category
func (c *Catalog) SpiritFor(category, name string) (models.Spirit, bool) {
	var generic *models.Spirit
	for i, s := range c.Spirits {
		if !utils.EqualFold(s.Name, name) || !offers(s, category) {
			continue
		}
		if len(s.Categories) > 0 {
			return s, true
		}
		if generic == nil {
			generic = &c.Spirits[i]
		}
	}
	if generic != nil {
		return *generic, true
	}
	return models.Spirit{}, false
}

// MixerFlavor looks up a mixer flavor by name
func (c *Catalog) MixerFlavor(name string) (models.MixerFlavor, bool) {
	for _, m := range c.MixerFlavors {
		if utils.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return models.MixerFlavor{}, false
}

// EnergyDrink looks up an energy drink by brand and flavor
func (c *Catalog) EnergyDrink(brand, flavor string) (models.EnergyDrink, bool) {
	key := energyKey(brand, flavor)
	for _, d := range c.EnergyDrinks {
		if energyKey(d.Brand, d.Flavor) == key {
			return d, true
		}
	}
	return models.EnergyDrink{}, false
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Default returns the built-in option tables used when no catalog file is configured
func Default() *Catalog {
	c := &Catalog{
		IceFlavors: []models.IceFlavor{
			{Name: "Gelo de Água", Plain: true},
			{Name: "Coco"},
			{Name: "Melancia"},
			{Name: "Maracujá"},
			{Name: "Morango"},
			{Name: "Maçã Verde"},
			{Name: "Limão"},
		},
		Spirits: []models.Spirit{
			{Name: "Cachaça", ExtraCost: decimal.Zero, Categories: []string{"caipirinha", "batida"}},
			{Name: "Vodka", ExtraCost: decimal.Zero},
			{Name: "Saquê", ExtraCost: money("5.00"), Categories: []string{"caipirinha", "caipiroska"}},
			{Name: "Vodka Absolut", ExtraCost: money("8.00"), Categories: []string{"caipirinha", "caipiroska"}},
		},
		MixerFlavors: []models.MixerFlavor{
			{Name: "Tradicional"},
			{Name: "Melancia"},
			{Name: "Morango e Pêssego"},
			{Name: "Maçã Verde"},
			{Name: "Tropical"},
			{Name: "Coco e Açaí"},
		},
		EnergyDrinks: []models.EnergyDrink{
			{Brand: "Red Bull", Flavor: "Tradicional", ExtraCost: money("3.00"), ComboExtraCost: money("8.00")},
			{Brand: "Red Bull", Flavor: "Tropical", ExtraCost: money("3.00"), ComboExtraCost: money("8.00")},
			{Brand: "Monster", Flavor: "Tradicional", ExtraCost: money("4.00"), ComboExtraCost: money("9.00")},
			{Brand: "Baly", Flavor: "Tradicional", ExtraCost: decimal.Zero, ComboExtraCost: money("6.00")},
			{Brand: "Baly", Flavor: "Melancia", ExtraCost: decimal.Zero, ComboExtraCost: money("6.00")},
			{Brand: "Baly 2L", Flavor: "Tradicional", ExtraCost: money("5.00"), ComboExtraCost: money("12.00"), LargeFormat: true},
			{Brand: "Baly 2L", Flavor: "Tropical", ExtraCost: money("5.00"), ComboExtraCost: money("12.00"), LargeFormat: true},
		},
		Keywords: DefaultKeywords(),
	}
	c.classifier = NewClassifier(c.Keywords)
	return c
}
