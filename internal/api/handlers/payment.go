package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/errors"
	service "github.com/thebagdis/storefront/internal/services"
	"github.com/thebagdis/storefront/internal/utils/response"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RazorpayWebhook verifies and applies a gateway notification. The raw body
// is read before any parsing; the signature covers the exact bytes sent.
func (h *PaymentHandler) RazorpayWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))

			return
		}

		signature := r.Header.Get("X-Razorpay-Signature")
		if signature == "" {
			response.Error(w, errors.IntegrityError("Webhook signature is required"))

			return
		}

		if err := h.paymentService.ProcessRazorpayWebhook(r.Context(), payload, signature); err != nil {
			logger.Error("Failed to process razorpay webhook", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}

func (h *PaymentHandler) StripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))

			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			response.Error(w, errors.IntegrityError("Webhook signature is required"))

			return
		}

		if err := h.paymentService.ProcessStripeWebhook(r.Context(), payload, signature); err != nil {
			logger.Error("Failed to process stripe webhook", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}
