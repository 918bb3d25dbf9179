package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"adega-delivery/models"
	"adega-delivery/utils"
)

// FormatOrderSummary renders the plain-text order handed to the WhatsApp
// formatter and the on-screen summary.
func FormatOrderSummary(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🧾 Pedido %s\n", shortID(order.ID))
	fmt.Fprintf(&b, "Cliente: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Telefone: %s\n", order.Customer.Phone)
	if order.Customer.Address != "" {
		fmt.Fprintf(&b, "Endereço: %s\n", order.Customer.Address)
	}
	b.WriteString("\n")

	priced := map[string]models.PricingLine{}
	if order.Pricing != nil {
		for _, pl := range order.Pricing.Lines {
			priced[pl.LineID] = pl
		}
	}

	for _, line := range order.Lines {
		total := line.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		pl, ok := priced[line.ID]
		if ok {
			total = pl.LineTotal
		}
		fmt.Fprintf(&b, "%dx %s - %s", line.Qty, line.Name, utils.FormatBRL(total))
		if ok && pl.QtyDiscounted > 0 {
			fmt.Fprintf(&b, " (%d com desconto de caixa)", pl.QtyDiscounted)
		}
		b.WriteString("\n")
		writeDetails(&b, line)
	}

	if order.Pricing != nil {
		b.WriteString("\n")
		if order.Pricing.Discount.IsPositive() {
			fmt.Fprintf(&b, "Subtotal: %s\n", utils.FormatBRL(order.Pricing.Subtotal))
			fmt.Fprintf(&b, "Desconto: %s\n", utils.FormatBRL(order.Pricing.Discount.Neg()))
		}
		fmt.Fprintf(&b, "Total: %s\n", utils.FormatBRL(order.Pricing.Total))
	}
	if order.Customer.Notes != "" {
		fmt.Fprintf(&b, "Obs: %s\n", order.Customer.Notes)
	}
	return b.String()
}

func writeDetails(b *strings.Builder, line models.CartLine) {
	if line.Alcohol != "" {
		fmt.Fprintf(b, "   Álcool: %s", line.Alcohol)
		if line.AlcoholExtraCost.IsPositive() {
			fmt.Fprintf(b, " (+%s)", utils.FormatBRL(line.AlcoholExtraCost))
		}
		b.WriteString("\n")
	}
	if flavors := line.IceFlavorsSorted(); len(flavors) > 0 {
		parts := make([]string, 0, len(flavors))
		for _, flavor := range flavors {
			parts = append(parts, fmt.Sprintf("%s x%d", flavor, line.Ice[flavor]))
		}
		fmt.Fprintf(b, "   Gelo: %s\n", strings.Join(parts, ", "))
	}
	if line.MixerFlavor != "" {
		fmt.Fprintf(b, "   Sabor: %s\n", line.MixerFlavor)
	}
	for _, sel := range line.EnergyDrinks {
		if sel.Qty <= 0 {
			continue
		}
		fmt.Fprintf(b, "   Energético: %s %s x%d", sel.Brand, sel.Flavor, sel.Qty)
		if sel.UnitExtraCost.IsPositive() {
			fmt.Fprintf(b, " (+%s cada)", utils.FormatBRL(sel.UnitExtraCost))
		}
		b.WriteString("\n")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
