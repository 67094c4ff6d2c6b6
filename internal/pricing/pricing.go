// Package pricing holds the single money calculation shared by the cart
// summary and order placement so the two can never drift apart.
package pricing

import "github.com/shopspring/decimal"

// Breakdown is the full charge breakdown for a set of cart lines.
type Breakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	Discount       decimal.Decimal `json:"discount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// Line is one priced cart or order line.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns quantity times unit price.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Compute derives the breakdown for the given lines. Tax is rounded to two
// decimal places; the delivery charge is flat and applies even to an empty
// set of lines.
func Compute(lines []Line, taxRate, deliveryCharge decimal.Decimal) Breakdown {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total())
	}

	breakdown := Breakdown{
		Subtotal: subtotal.Round(2),
		Discount: decimal.Zero,
	}
	breakdown.TaxAmount = subtotal.Mul(taxRate).Round(2)
	breakdown.DeliveryCharge = deliveryCharge.Round(2)
	breakdown.TotalAmount = breakdown.Subtotal.
		Add(breakdown.TaxAmount).
		Add(breakdown.DeliveryCharge).
		Sub(breakdown.Discount).
		Round(2)
	return breakdown
}
