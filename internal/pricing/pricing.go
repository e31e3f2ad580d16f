// Package pricing turns a list of line items into the order totals. It is a
// pure computation with no I/O, used both for live cart display and for the
// totals embedded into an order at checkout, so the two can never diverge.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/thebagdis/storefront/internal/models"
)

var (
	// TaxRate is the flat GST rate applied to the items subtotal.
	TaxRate = decimal.RequireFromString("0.18")

	// FreeShippingThreshold: orders with an items subtotal strictly above
	// this amount ship free, everything else pays FlatShippingFee.
	FreeShippingThreshold = decimal.NewFromInt(1000)
	FlatShippingFee       = decimal.NewFromInt(100)
)

type Totals struct {
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// Quote computes the totals for a set of line items. An empty list yields
// all-zero totals; it is not an error. Values keep full decimal precision so
// recomputing over the same items is stable; round only for presentation.
func Quote(items []models.LineItem) Totals {

	itemsPrice := decimal.Zero

	for _, item := range items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		itemsPrice = itemsPrice.Add(lineTotal)
	}

	taxPrice := itemsPrice.Mul(TaxRate)

	shippingPrice := FlatShippingFee
	if itemsPrice.GreaterThan(FreeShippingThreshold) {
		shippingPrice = decimal.Zero
	}

	// No shipping charge on an empty cart.
	if itemsPrice.IsZero() {
		shippingPrice = decimal.Zero
	}

	return Totals{
		ItemsPrice:    itemsPrice,
		TaxPrice:      taxPrice,
		ShippingPrice: shippingPrice,
		TotalAmount:   itemsPrice.Add(taxPrice).Add(shippingPrice),
	}
}

// Round returns a copy with every field rounded to two decimal places, for
// display and API responses. Stored totals keep the unrounded values.
func (t Totals) Round() Totals {
	return Totals{
		ItemsPrice:    t.ItemsPrice.Round(2),
		TaxPrice:      t.TaxPrice.Round(2),
		ShippingPrice: t.ShippingPrice.Round(2),
		TotalAmount:   t.TotalAmount.Round(2),
	}
}
