package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

type PaymentStatus string

type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required,len=6,number"`
	Country    string `json:"country" validate:"required"`
}

// PaymentResult is the gateway's view of the payment, captured at checkout
// creation (gateway order id) and updated by the webhook.
type PaymentResult struct {
	ID         string `json:"id,omitempty"`
	PaymentID  string `json:"paymentId,omitempty"`
	Status     string `json:"status,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
	Email      string `json:"email,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `json:"id"`
	UserID          primitive.ObjectID `json:"userId"`
	Items           []LineItem         `json:"items"`
	ShippingAddress Address            `json:"shippingAddress"`
	Phone           string             `json:"phone"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal    `json:"itemsPrice"`
	TaxPrice        decimal.Decimal    `json:"taxPrice"`
	ShippingPrice   decimal.Decimal    `json:"shippingPrice"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	Status          OrderStatus        `json:"status"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus"`
	PaymentResult   *PaymentResult     `json:"paymentResult,omitempty"`
	DeliveredAt     *time.Time         `json:"deliveredAt,omitempty"`
	TrackingNumber  string             `json:"trackingNumber,omitempty"`
	TrackingURL     string             `json:"trackingUrl,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type CreateOrderRequest struct {
	Items           []LineItem    `json:"items" validate:"required,min=1,dive"`
	ShippingAddress Address       `json:"shippingAddress" validate:"required"`
	Phone           string        `json:"phone" validate:"required,len=10,number"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"required,oneof=cod upi card"`
	Notes           string        `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status         OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	TrackingURL    string      `json:"trackingUrl,omitempty"`
}

// CheckoutResponse is returned from order creation. For online payment
// methods it carries what the hosted checkout needs to collect the payment.
type CheckoutResponse struct {
	Order          *Order `json:"order"`
	GatewayOrderID string `json:"gatewayOrderId,omitempty"`
	GatewayKeyID   string `json:"gatewayKeyId,omitempty"`
	ClientSecret   string `json:"clientSecret,omitempty"`
}
