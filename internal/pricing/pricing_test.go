package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/pricing"
)

func item(price string, qty int) models.LineItem {
	return models.LineItem{
		ProductID: "p1",
		Name:      "Test Product",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestQuote(t *testing.T) {
	t.Run("Success - Flat Shipping Below Threshold", func(t *testing.T) {
		// Arrange
		items := []models.LineItem{item("500", 2)}

		// Act
		totals := pricing.Quote(items)

		// Assert
		assert.True(t, totals.ItemsPrice.Equal(decimal.NewFromInt(1000)))
		assert.True(t, totals.TaxPrice.Equal(decimal.NewFromInt(180)))
		assert.True(t, totals.ShippingPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(1280)))
	})

	t.Run("Success - Free Shipping Above Threshold", func(t *testing.T) {
		items := []models.LineItem{item("600", 2)}

		totals := pricing.Quote(items)

		assert.True(t, totals.ItemsPrice.Equal(decimal.NewFromInt(1200)))
		assert.True(t, totals.TaxPrice.Equal(decimal.NewFromInt(216)))
		assert.True(t, totals.ShippingPrice.IsZero())
		assert.True(t, totals.TotalAmount.Equal(decimal.NewFromInt(1416)))
	})

	t.Run("Success - Threshold Is Strict", func(t *testing.T) {
		// A subtotal of exactly 1000 still pays shipping.
		items := []models.LineItem{item("1000", 1)}

		totals := pricing.Quote(items)

		assert.True(t, totals.ShippingPrice.Equal(decimal.NewFromInt(100)))

		// One paisa above the threshold ships free.
		over := []models.LineItem{item("1000.01", 1)}

		assert.True(t, pricing.Quote(over).ShippingPrice.IsZero())
	})

	t.Run("Success - Empty Cart Is All Zeroes", func(t *testing.T) {
		totals := pricing.Quote(nil)

		assert.True(t, totals.ItemsPrice.IsZero())
		assert.True(t, totals.TaxPrice.IsZero())
		assert.True(t, totals.ShippingPrice.IsZero())
		assert.True(t, totals.TotalAmount.IsZero())
	})

	t.Run("Success - No Float Drift", func(t *testing.T) {
		// 0.1 * 3 is not representable in binary floats; decimals keep it exact.
		items := []models.LineItem{item("0.10", 3)}

		totals := pricing.Quote(items)

		assert.True(t, totals.ItemsPrice.Equal(decimal.RequireFromString("0.30")))
		assert.True(t, totals.TaxPrice.Equal(decimal.RequireFromString("0.054")))
	})

	t.Run("Success - Quote Is Stable", func(t *testing.T) {
		items := []models.LineItem{item("249.99", 3), item("99.50", 1)}

		first := pricing.Quote(items)
		second := pricing.Quote(items)

		assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	})
}

func TestTotalsRound(t *testing.T) {
	items := []models.LineItem{item("33.333", 1)}

	totals := pricing.Quote(items).Round()

	assert.Equal(t, "33.33", totals.ItemsPrice.StringFixed(2))
	assert.Equal(t, "6.00", totals.TaxPrice.StringFixed(2))
}
