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

type ProductHandler struct {
	productService *service.ProductService
	userService    *service.UserService
	validator      *validator.Validate
}

func NewProductHandler(productService *service.ProductService, userService *service.UserService) *ProductHandler {
	return &ProductHandler{productService: productService, userService: userService, validator: validator.New()}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := parsePagination(r)

		query := &models.ListProductsQuery{
			Category: r.URL.Query().Get("category"),
			Page:     page,
			Size:     pageSize,
		}

		if raw := r.URL.Query().Get("featured"); raw != "" {
			featured := raw == "true"
			query.Featured = &featured
		}

		products, total, err := h.productService.ListProducts(r.Context(), query)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))

			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Product creation failed", slog.String("name", req.Name), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.Hex()))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))

			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))

			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Product deleted", slog.String("productId", id.Hex()))
		response.Success(w, http.StatusOK, map[string]string{"id": id.Hex()})
	}
}

func (h *ProductHandler) AddReview() http.HandlerFunc {
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

		productID, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid product ID"))

			return
		}

		var req models.AddReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		// The review carries the user's display name.
		user, err := h.userService.GetUserByID(r.Context(), userID)
		if err != nil {
			response.Error(w, err)

			return
		}

		product, err := h.productService.AddReview(r.Context(), productID, user, &req)
		if err != nil {
			logger.Warn("Review rejected", slog.String("productId", productID.Hex()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, product)
	}
}
