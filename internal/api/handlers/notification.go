package handlers

import (
	"net/http"

	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	service "github.com/thebagdis/storefront/internal/services"
	"github.com/thebagdis/storefront/internal/utils/response"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
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

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), userID, page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
