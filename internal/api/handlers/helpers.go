package handlers

import (
	"net/http"
	"strconv"

	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentClaims pulls the authenticated claims placed on the context by the
// auth middleware.
func currentClaims(r *http.Request) (*models.Claims, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)

	return claims, ok
}

func claimsUserID(claims *models.Claims) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(claims.UserID)
}

// parsePagination reads page/pageSize query parameters with sane bounds.
func parsePagination(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return page, pageSize
}
