package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	service "github.com/thebagdis/storefront/internal/services"
	"github.com/thebagdis/storefront/internal/utils"
	"github.com/thebagdis/storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService *service.OrderService
	userService  *service.UserService
	validator    *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService, userService *service.UserService) *OrderHandler {
	return &OrderHandler{orderService: orderService, userService: userService, validator: validator.New()}
}

func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		userID, err := claimsUserID(claims)
		if err != nil {
			response.Error(w, errors.UnauthorizedError("Invalid token subject"))

			return
		}

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), userID)
		if err != nil {
			response.Error(w, err)

			return
		}

		resp, err := h.orderService.Checkout(r.Context(), user, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.String("userId", claims.UserID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order placed",
			slog.String("orderId", resp.Order.ID.Hex()),
			slog.String("userId", claims.UserID),
			slog.String("paymentMethod", string(resp.Order.PaymentMethod)))
		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		userID, err := claimsUserID(claims)
		if err != nil {
			response.Error(w, errors.UnauthorizedError("Invalid token subject"))

			return
		}

		page, pageSize := parsePagination(r)

		orders, total, err := h.orderService.ListOrdersByUser(r.Context(), userID, page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *OrderHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := parsePagination(r)

		orders, total, err := h.orderService.ListOrders(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		userID, err := claimsUserID(claims)
		if err != nil {
			response.Error(w, errors.UnauthorizedError("Invalid token subject"))

			return
		}

		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order ID"))

			return
		}

		order, err := h.orderService.GetOrder(r.Context(), id, userID, claims.Role)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order ID"))

			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, &req)
		if err != nil {
			logger.Warn("Status transition rejected",
				slog.String("orderId", id.Hex()),
				slog.String("target", string(req.Status)),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order status updated",
			slog.String("orderId", id.Hex()),
			slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
