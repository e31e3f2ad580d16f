package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/cache"
	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	repository "github.com/thebagdis/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache, cacheTTL time.Duration) *ProductService {
	return &ProductService{
		repo:     repo,
		cache:    productCache,
		cacheTTL: cacheTTL,
		// User-supplied text is rendered in storefront pages; strip all markup.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func productCacheKey(id primitive.ObjectID) string {
	return fmt.Sprintf("product:%s", id.Hex())
}

func (s *ProductService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to invalidate product cache", slog.String("productId", id.Hex()), slog.Any("error", err))
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() || req.Price.IsZero() {
		return nil, errors.BadRequestError("Price must be greater than zero")
	}

	product := &models.Product{
		Name:           s.sanitizer.Sanitize(req.Name),
		Description:    s.sanitizer.Sanitize(req.Description),
		Price:          req.Price,
		Images:         req.Images,
		Category:       req.Category,
		Stock:          req.Stock,
		Featured:       req.Featured,
		Reviews:        []models.Review{},
		Specifications: req.Specifications,
		Weight:         req.Weight,
		WeightUnit:     req.WeightUnit,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	cached := &models.Product{}

	hit, err := s.cache.Get(ctx, productCacheKey(id), cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Set(ctx, productCacheKey(id), product, s.cacheTTL); err != nil {
		logger.Warn("Product cache write failed", slog.Any("error", err))
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Price != nil {
		if req.Price.IsNegative() || req.Price.IsZero() {
			return nil, errors.BadRequestError("Price must be greater than zero")
		}

		product.Price = *req.Price
	}

	if req.Images != nil {
		product.Images = *req.Images
	}

	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if req.Specifications != nil {
		product.Specifications = *req.Specifications
	}

	if req.Weight != nil {
		product.Weight = *req.Weight
	}

	if req.WeightUnit != nil {
		product.WeightUnit = *req.WeightUnit
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *ProductService) ListProducts(ctx context.Context, query *models.ListProductsQuery) ([]models.Product, int, error) {
	products, total, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, total, nil
}

// AddReview appends a review and recomputes the aggregate rating. One review
// per user per product.
func (s *ProductService) AddReview(ctx context.Context, productID primitive.ObjectID, user *models.User, req *models.AddReviewRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	for _, review := range product.Reviews {
		if review.UserID == user.ID {
			return nil, errors.DuplicateEntryError("Product already reviewed")
		}
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Comment:   s.sanitizer.Sanitize(req.Comment),
		CreatedAt: time.Now(),
	}

	product.Reviews = append(product.Reviews, review)
	product.NumReviews = len(product.Reviews)

	sum := 0
	for _, r := range product.Reviews {
		sum += r.Rating
	}

	product.AverageRating = float64(sum) / float64(product.NumReviews)

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to save review").WithError(err)
	}

	s.invalidate(ctx, productID)

	return product, nil
}
