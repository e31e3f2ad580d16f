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

type BlogHandler struct {
	blogService *service.BlogService
	validator   *validator.Validate
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService, validator: validator.New()}
}

// ListBlogs is public and only shows published posts. Admin tooling reads
// drafts through the same endpoint with drafts=true.
func (h *BlogHandler) ListBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize := parsePagination(r)

		publishedOnly := true
		if r.URL.Query().Get("drafts") == "true" {
			claims, ok := currentClaims(r)
			if ok && claims.Role == models.RoleAdmin {
				publishedOnly = false
			}
		}

		blogs, total, err := h.blogService.ListBlogs(r.Context(), publishedOnly, page, pageSize)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     blogs,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

func (h *BlogHandler) GetBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid blog ID"))

			return
		}

		blog, err := h.blogService.GetBlog(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, blog)
	}
}

func (h *BlogHandler) CreateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentClaims(r)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CreateBlogRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		blog, err := h.blogService.CreateBlog(r.Context(), claims.Email, &req)
		if err != nil {
			logger.Error("Blog creation failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, blog)
	}
}

func (h *BlogHandler) UpdateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid blog ID"))

			return
		}

		var req models.UpdateBlogRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		blog, err := h.blogService.UpdateBlog(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, blog)
	}
}

func (h *BlogHandler) DeleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid blog ID"))

			return
		}

		if err := h.blogService.DeleteBlog(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"id": id.Hex()})
	}
}
