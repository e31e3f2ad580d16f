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

type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("User registration failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.Hex()))
		response.Success(w, http.StatusCreated, user)
	}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			response.WriteJson(w, status, resp)

			return
		}

		logger.Info("User logged in", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
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

		user, err := h.userService.GetUserByID(r.Context(), userID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) UpdateProfile() http.HandlerFunc {
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

		var req models.UpdateProfileRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.UpdateProfile(r.Context(), userID, &req)
		if err != nil {
			logger.Error("Profile update failed", slog.String("userId", claims.UserID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := parsePagination(r)

		users, total, err := h.userService.ListUsers(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     users,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *UserHandler) UpdateUserRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid user ID"))

			return
		}

		var req models.UpdateUserRoleRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.UpdateUserRole(r.Context(), id, req.Role); err != nil {
			logger.Error("Role update failed", slog.String("userId", id.Hex()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("User role updated", slog.String("userId", id.Hex()), slog.String("role", string(req.Role)))
		response.Success(w, http.StatusOK, map[string]string{"id": id.Hex(), "role": string(req.Role)})
	}
}

func (h *UserHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid user ID"))

			return
		}

		if err := h.userService.DeleteUser(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("User deleted", slog.String("userId", id.Hex()))
		response.Success(w, http.StatusOK, map[string]string{"id": id.Hex()})
	}
}
