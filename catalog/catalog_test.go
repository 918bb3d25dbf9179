package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adega-delivery/models"
)

func TestClassifier_Predicates(t *testing.T) {
	c := DefaultClassifier()

	assert.True(t, c.IsLargeCupProduct("Copão"))
	assert.True(t, c.IsLargeCupProduct("COPÕES"))
	assert.False(t, c.IsLargeCupProduct("Combos"))
	assert.True(t, c.IsComboProduct("Combos de Whisky"))
	assert.False(t, c.IsComboProduct("Cervejas"))

	assert.True(t, c.RequiresIceFlavor("Copão"))
	assert.True(t, c.RequiresIceFlavor("combo"))
	assert.True(t, c.RequiresIceFlavor("Drinks"))
	assert.False(t, c.RequiresIceFlavor("Cervejas"))

	assert.True(t, c.RequiresAlcoholChoice("Caipirinhas"))
	assert.False(t, c.RequiresAlcoholChoice("Copão"))

	assert.True(t, c.ReferencesMixerBrand("Copão Gin com BALY"))
	assert.False(t, c.ReferencesMixerBrand("Copão Gin Tônica"))

	assert.True(t, c.IsCaseDiscountCategory("Cervejas Lata"))
	assert.False(t, c.IsCaseDiscountCategory("Destilados"))
}

func TestClassifier_ComboWinsOverLargeCup(t *testing.T) {
	c := DefaultClassifier()
	class := c.Classify("Combo Copão", "Combo Copão")
	assert.True(t, class.Has(models.ClassCombo))
	assert.False(t, class.Has(models.ClassLargeCup))
}

func TestClassifier_Classify(t *testing.T) {
	c := DefaultClassifier()

	class := c.Classify("Copão Vodka Baly", "Copão")
	assert.True(t, class.Has(models.ClassRequiresIce|models.ClassLargeCup|models.ClassReferencesMixerBrand))
	assert.False(t, class.Has(models.ClassCombo))
	assert.True(t, class.IsDrinkMix())

	assert.Equal(t, models.ClassSimple, c.Classify("Água Mineral", "Bebidas"))
	assert.Equal(t, []string{"simple"}, c.Classify("Água Mineral", "Bebidas").Names())
	assert.Equal(t, models.ClassCaseDiscount, c.Classify("Heineken Lata", "Cervejas"))
}

func TestClassifier_ReDerivableAfterAssign(t *testing.T) {
	c := DefaultClassifier()
	p := models.CatalogProduct{Name: "Caipirinha de Limão", Category: "Caipirinhas"}
	c.Assign(&p)

	assert.Equal(t, c.Classify(p.Name, p.Category), p.Class)
	assert.Equal(t, []string{"requiresAlcohol"}, p.Classes)

	descriptor := models.NewProduct(p)
	descriptor.Alcohol = "Vodka"
	assert.Equal(t, p.Class, c.Classify(descriptor.Name, descriptor.Category))
}

func TestClassifier_CustomKeywords(t *testing.T) {
	c := NewClassifier(Keywords{Combo: []string{"kit"}, IceCategories: []string{}})
	assert.True(t, c.IsComboProduct("Kit Festa"))
	assert.False(t, c.IsComboProduct("Combo"))
	assert.False(t, c.RequiresIceFlavor("Drinks"))
	assert.True(t, c.IsLargeCupProduct("Copão"))
}

func TestDefault_Lookups(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	f, ok := c.IceFlavor("gelo de agua")
	require.True(t, ok)
	assert.True(t, f.Plain)

	plain, ok := c.PlainIce()
	require.True(t, ok)
	assert.Equal(t, "Gelo de Água", plain.Name)

	s, ok := c.Spirit("VODKA ABSOLUT")
	require.True(t, ok)
	assert.Equal(t, "8", s.ExtraCost.String())

	_, ok = c.MixerFlavor("maca verde")
	assert.True(t, ok)

	d, ok := c.EnergyDrink("baly 2l", "tropical")
	require.True(t, ok)
	assert.True(t, d.LargeFormat)

	_, ok = c.EnergyDrink("Baly", "Uva")
	assert.False(t, ok)
}

func TestSpiritFor_Categories(t *testing.T) {
	c := Default()

	_, ok := c.SpiritFor("Caipiroskas", "Cachaça")
	assert.False(t, ok)
	_, ok = c.SpiritFor("Batidas", "Cachaça")
	assert.True(t, ok)
	_, ok = c.SpiritFor("Batidas", "Saquê")
	assert.False(t, ok)

	vodka, ok := c.SpiritFor("Caipiroskas", "VODKA")
	require.True(t, ok)
	assert.Empty(t, vodka.Categories)

	assert.Len(t, c.SpiritsFor("Caipirinhas"), 4)
	assert.Len(t, c.SpiritsFor("Batidas"), 2)
}

func TestParse_Validation(t *testing.T) {
	cases := map[string]string{
		"no ice":          `{"iceFlavors": []}`,
		"two plain":       `{"iceFlavors": [{"name": "A", "plain": true}, {"name": "B", "plain": true}]}`,
		"duplicate ice":   `{"iceFlavors": [{"name": "Limão"}, {"name": "limao"}]}`,
		"negative spirit": `{"iceFlavors": [{"name": "A"}], "spirits": [{"name": "Gin", "extraCost": "-1"}]}`,
		"spirit twice":    `{"iceFlavors": [{"name": "A"}], "spirits": [{"name": "Gin", "categories": ["batida"]}, {"name": "gin", "categories": ["Batida"]}]}`,
		"empty category":  `{"iceFlavors": [{"name": "A"}], "spirits": [{"name": "Gin", "categories": [" "]}]}`,
		"empty mixer":     `{"iceFlavors": [{"name": "A"}], "mixerFlavors": [{"name": " "}]}`,
		"bad energy":      `{"iceFlavors": [{"name": "A"}], "energyDrinks": [{"brand": "X", "flavor": ""}]}`,
		"negative cap":    `{"iceFlavors": [{"name": "A"}], "energyDrinks": [{"brand": "X", "flavor": "Y", "unitCap": -1}]}`,
		"malformed":       `{`,
	}
	for name, body := range cases {
		_, err := Parse([]byte(body))
		assert.Error(t, err, name)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	body := `{
		"iceFlavors": [{"name": "Gelo de Água", "plain": true}, {"name": "Coco"}],
		"spirits": [{"name": "Cachaça", "extraCost": 0}, {"name": "Gin", "extraCost": "12.50"}],
		"mixerFlavors": [{"name": "Tropical"}],
		"energyDrinks": [{"brand": "Red Bull", "flavor": "Tradicional", "extraCost": "3", "comboExtraCost": "8", "unitCap": 3}],
		"keywords": {"combo": ["combo", "kit"]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := Load(path, zap.NewNop())
	require.NoError(t, err)

	gin, ok := c.Spirit("gin")
	require.True(t, ok)
	assert.Equal(t, "12.5", gin.ExtraCost.String())
	assert.Len(t, c.SpiritsFor("Batidas"), 2)
	assert.True(t, c.Classifier().IsComboProduct("Kit Churrasco"))
	assert.True(t, c.Classifier().IsLargeCupProduct("Copão"))

	_, err = Load(filepath.Join(dir, "missing.json"), zap.NewNop())
	assert.Error(t, err)
}
