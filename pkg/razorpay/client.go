package razorpay

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Client defines the methods the payment service needs from the Razorpay SDK.
type Client interface {
	CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]any) (string, error)
	VerifyWebhookSignature(payload []byte, signature string) bool
}

type razorpayClient struct {
	client        *razorpay.Client
	webhookSecret string
}

func NewRazorpayClient(keyID, keySecret, webhookSecret string) Client {
	return &razorpayClient{
		client:        razorpay.NewClient(keyID, keySecret),
		webhookSecret: webhookSecret,
	}
}

// CreateOrder registers a gateway order and returns its id. Amount is in the
// currency's smallest unit (paise for INR).
func (r *razorpayClient) CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]any) (string, error) {
	data := map[string]any{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	if len(notes) > 0 {
		data["notes"] = notes
	}

	order, err := r.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", errors.New("razorpay order response missing id")
	}

	return orderID, nil
}

// VerifyWebhookSignature implements Client.
func (r *razorpayClient) VerifyWebhookSignature(payload []byte, signature string) bool {
	if r.webhookSecret == "" || signature == "" {
		return false
	}

	return utils.VerifyWebhookSignature(string(payload), signature, r.webhookSecret)
}
