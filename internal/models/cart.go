package models

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product/quantity pair inside a cart or an order snapshot.
// Order items are copies taken at checkout time, so a later catalog price
// change never alters a historical order.
type LineItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Image     string          `json:"image,omitempty"`
}

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"min=0"`
}

// CartResponse carries the current snapshot plus display totals rounded to
// two decimal places. The stored snapshot keeps full precision.
type CartResponse struct {
	Items         []LineItem      `json:"items"`
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}
