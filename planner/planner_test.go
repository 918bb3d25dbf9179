package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adega-delivery/catalog"
	"adega-delivery/models"
	"adega-delivery/steps"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(name, category, price string) models.CatalogProduct {
	p := models.CatalogProduct{ID: 7, Name: name, Category: category, BasePrice: d(price)}
	catalog.DefaultClassifier().Assign(&p)
	return p
}

func newPlanner() *Planner {
	return New(catalog.Default(), zap.NewNop())
}

func requireRejected(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsValidationRejected(err), "expected a validation rejection, got %v", err)
	assert.Equal(t, msg, err.Error())
}

func TestPlanner_SimpleProductCompletesImmediately(t *testing.T) {
	p := newPlanner()
	state, err := p.Start(product("Heineken Lata", "Cervejas", "5.49"))
	require.NoError(t, err)
	assert.Equal(t, Complete, state)
	assert.Empty(t, p.Pending())

	out, err := p.Take()
	require.NoError(t, err)
	assert.Equal(t, 1, out.Qty)
	assert.True(t, d("5.49").Equal(out.Price))
	assert.Equal(t, Idle, p.State())
}

func TestPlanner_LargeCupWithMixerBrand(t *testing.T) {
	p := newPlanner()
	state, err := p.Start(product("Copão Gin com Baly", "Copão", "25.00"))
	require.NoError(t, err)
	assert.Equal(t, AwaitingIce, state)
	assert.Equal(t, []steps.Step{steps.StepIce, steps.StepMixerFlavor}, p.Pending())

	require.NoError(t, p.SelectIce("coco"))
	requireRejected(t, p.SelectIce("Melancia"), models.MsgIceLargeCupLimit)

	state, err = p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, AwaitingMixerFlavor, state)
	assert.Equal(t, []steps.Step{steps.StepMixerFlavor, steps.StepEnergyDrink}, p.Pending())

	require.NoError(t, p.ChooseMixerFlavor("Tropical"))
	require.NoError(t, p.ChooseMixerFlavor("melancia"))
	state, err = p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, AwaitingEnergyDrink, state)

	require.NoError(t, p.SelectEnergyDrink("Red Bull", "Tradicional"))
	assert.True(t, d("28").Equal(p.PreviewPrice()), "preview %s", p.PreviewPrice())

	state, err = p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, Complete, state)

	out, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Coco": 1}, out.Ice)
	assert.Equal(t, "Melancia", out.MixerFlavor)
	require.Len(t, out.EnergyDrinks, 1)
	assert.Equal(t, 1, out.EnergyDrinks[0].Qty)
	assert.True(t, d("28").Equal(out.Price))
}

func TestPlanner_ComboWithCans(t *testing.T) {
	p := newPlanner()
	_, err := p.Start(product("Combo Absolut", "Combos", "99.90"))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, p.SelectIce("Morango"))
	}
	_, err = p.Confirm()
	requireRejected(t, err, models.MsgIceComboExact)
	assert.Equal(t, AwaitingIce, p.State())

	require.NoError(t, p.SelectIce("Limão"))
	state, err := p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, AwaitingEnergyDrink, state)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.SelectEnergyDrink("Red Bull", "Tradicional"))
	}
	require.NoError(t, p.SelectEnergyDrink("Monster", "Tradicional"))
	_, err = p.Confirm()
	requireRejected(t, err, models.MsgEnergyComboExact)

	requireRejected(t, p.SelectEnergyDrink("Baly 2L", "Tropical"), models.MsgEnergyLargeAfterCans)
	require.NoError(t, p.SelectEnergyDrink("Monster", "Tradicional"))

	state, err = p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, Complete, state)

	out, err := p.Take()
	require.NoError(t, err)
	assert.Equal(t, 5, out.IceTotal())
	assert.Equal(t, 5, out.EnergyDrinkTotal())
	assert.True(t, d("141.90").Equal(out.Price), "price %s", out.Price)
}

func TestPlanner_ComboWithLargeFormat(t *testing.T) {
	p := newPlanner()
	_, err := p.Start(product("Combo Vodka", "Combo", "80"))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, p.SelectIce("Gelo de Agua"))
	}
	_, err = p.Confirm()
	require.NoError(t, err)

	require.NoError(t, p.SelectEnergyDrink("Baly 2L", "Tradicional"))
	requireRejected(t, p.SelectEnergyDrink("Red Bull", "Tradicional"), models.MsgEnergyCansAfterLarge)
	_, err = p.Confirm()
	require.NoError(t, err)

	out, err := p.Result()
	require.NoError(t, err)
	assert.True(t, d("92").Equal(out.Price))
}

func TestPlanner_AlcoholChoiceReplaces(t *testing.T) {
	p := newPlanner()
	state, err := p.Start(product("Caipirinha de Limão", "Caipirinhas", "15"))
	require.NoError(t, err)
	assert.Equal(t, AwaitingAlcohol, state)

	_, err = p.Confirm()
	requireRejected(t, err, models.MsgAlcoholRequired)

	requireRejected(t, p.ChooseAlcohol("Gin"), models.MsgAlcoholUnknown)
	require.NoError(t, p.ChooseAlcohol("Saquê"))
	assert.True(t, d("20").Equal(p.PreviewPrice()))
	require.NoError(t, p.ChooseAlcohol("vodka absolut"))
	assert.True(t, d("23").Equal(p.PreviewPrice()))

	state, err = p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, Complete, state)

	out, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, "Vodka Absolut", out.Alcohol)
	assert.True(t, d("8").Equal(out.AlcoholExtraCost))
	assert.True(t, d("23").Equal(out.Price))
}

func TestPlanner_CaipiroskaOffersItsOwnSpirits(t *testing.T) {
	p := newPlanner()
	state, err := p.Start(product("Caipiroska de Morango", "Caipiroskas", "16"))
	require.NoError(t, err)
	require.Equal(t, AwaitingAlcohol, state)

	v := p.View()
	require.Len(t, v.Spirits, 3)
	for _, s := range v.Spirits {
		assert.NotEqual(t, "Cachaça", s.Name)
	}

	requireRejected(t, p.ChooseAlcohol("Cachaça"), models.MsgAlcoholNotOffered)
	assert.Empty(t, p.View().Alcohol)

	require.NoError(t, p.ChooseAlcohol("Vodka"))
	state, err = p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, Complete, state)
	assert.Empty(t, p.View().Spirits)
}

func TestPlanner_IceOnlyDrinkHasNoEnergyStep(t *testing.T) {
	p := newPlanner()
	_, err := p.Start(product("Gin Tônica", "Drinks", "22"))
	require.NoError(t, err)
	require.NoError(t, p.SelectIce("Coco"))
	require.NoError(t, p.SelectIce("Maracujá"))
	state, err := p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, Complete, state)
}

func TestPlanner_OutOfOrderActionsRejected(t *testing.T) {
	p := newPlanner()
	requireRejected(t, p.SelectIce("Coco"), models.MsgNoConfiguration)
	_, err := p.Confirm()
	requireRejected(t, err, models.MsgNoConfiguration)

	_, err = p.Start(product("Copão Whisky", "Copão", "30"))
	require.NoError(t, err)
	requireRejected(t, p.ChooseAlcohol("Vodka"), models.MsgStepNotPending)
	requireRejected(t, p.ChooseMixerFlavor("Tropical"), models.MsgStepNotPending)
	requireRejected(t, p.SelectEnergyDrink("Red Bull", "Tradicional"), models.MsgStepNotPending)
	assert.Equal(t, AwaitingIce, p.State())
}

func TestPlanner_StartWhileInFlightRejected(t *testing.T) {
	p := newPlanner()
	_, err := p.Start(product("Copão Whisky", "Copão", "30"))
	require.NoError(t, err)
	require.NoError(t, p.SelectIce("Coco"))

	state, err := p.Start(product("Skol", "Cervejas", "4"))
	requireRejected(t, err, models.MsgConfigurationInFlight)
	assert.Equal(t, AwaitingIce, state)

	p.Cancel()
	p.Cancel()
	assert.Equal(t, Idle, p.State())

	state, err = p.Start(product("Skol", "Cervejas", "4"))
	require.NoError(t, err)
	assert.Equal(t, Complete, state)
}

func TestPlanner_ResultBeforeCompletion(t *testing.T) {
	p := newPlanner()
	_, err := p.Result()
	assert.True(t, models.IsConfigurationIncomplete(err))

	_, err = p.Start(product("Copão Whisky", "Copão", "30"))
	require.NoError(t, err)
	_, err = p.Take()
	require.Error(t, err)
	assert.True(t, models.IsConfigurationIncomplete(err))
	assert.Equal(t, AwaitingIce, p.State())
}

func TestPlanner_RejectionLeavesSelectionUnchanged(t *testing.T) {
	p := newPlanner()
	_, err := p.Start(product("Gin Tônica", "Drinks", "22"))
	require.NoError(t, err)
	require.NoError(t, p.SelectIce("Coco"))
	requireRejected(t, p.SelectIce("Gelo de Água"), models.MsgIcePlainWithFlavored)
	requireRejected(t, p.DeselectIce("Limão"), models.MsgIceNothingToRemove)
	require.NoError(t, p.DeselectIce("Coco"))

	_, err = p.Confirm()
	requireRejected(t, err, models.MsgIceEmpty)
}

func TestPlanner_ResultIsACopy(t *testing.T) {
	p := newPlanner()
	_, err := p.Start(product("Gin Tônica", "Drinks", "22"))
	require.NoError(t, err)
	require.NoError(t, p.SelectIce("Coco"))
	_, err = p.Confirm()
	require.NoError(t, err)

	first, err := p.Result()
	require.NoError(t, err)
	first.Ice["Coco"] = 99

	second, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, second.Ice["Coco"])
}

func TestPlanner_View(t *testing.T) {
	p := newPlanner()
	idle := p.View()
	assert.Equal(t, Idle, idle.State)
	assert.Nil(t, idle.Product)
	assert.Empty(t, idle.Pending)

	_, err := p.Start(product("Combo Absolut", "Combos", "99.90"))
	require.NoError(t, err)
	require.NoError(t, p.SelectIce("Coco"))

	v := p.View()
	assert.Equal(t, "ice", v.Step)
	assert.Equal(t, 5, v.IceCeiling)
	assert.Equal(t, map[string]int{"Coco": 1}, v.Ice)
	v.Ice["Coco"] = 4

	text, err := v.State.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "awaiting_ice", string(text))
	assert.Equal(t, 1, p.View().Ice["Coco"])
}
