package service

import (
	"context"

	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	repository "github.com/thebagdis/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BlogService struct {
	repo repository.BlogRepository
}

func NewBlogService(repo repository.BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

func (s *BlogService) CreateBlog(ctx context.Context, author string, req *models.CreateBlogRequest) (*models.Blog, error) {
	blog := &models.Blog{
		Title:     req.Title,
		Content:   req.Content,
		Author:    author,
		Published: req.Published,
	}

	if err := s.repo.CreateBlog(ctx, blog); err != nil {
		return nil, errors.DatabaseError("Failed to create blog").WithError(err)
	}

	return blog, nil
}

func (s *BlogService) GetBlog(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	blog, err := s.repo.GetBlogById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Blog not found").WithError(err)
	}

	return blog, nil
}

func (s *BlogService) UpdateBlog(ctx context.Context, id primitive.ObjectID, req *models.UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.repo.GetBlogById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Blog not found").WithError(err)
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}

	if req.Content != nil {
		blog.Content = *req.Content
	}

	if req.Published != nil {
		blog.Published = *req.Published
	}

	if err := s.repo.UpdateBlog(ctx, blog); err != nil {
		return nil, errors.DatabaseError("Failed to update blog").WithError(err)
	}

	return blog, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.DeleteBlog(ctx, id); err != nil {
		return errors.NotFoundError("Blog not found").WithError(err)
	}

	return nil
}

func (s *BlogService) ListBlogs(ctx context.Context, publishedOnly bool, page, size int) ([]models.Blog, int, error) {
	blogs, total, err := s.repo.ListBlogs(ctx, publishedOnly, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list blogs").WithError(err)
	}

	return blogs, total, nil
}
