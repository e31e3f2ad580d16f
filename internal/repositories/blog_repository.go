package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogById(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	UpdateBlog(ctx context.Context, blog *models.Blog) error
	DeleteBlog(ctx context.Context, id primitive.ObjectID) error
	ListBlogs(ctx context.Context, publishedOnly bool, page, size int) ([]models.Blog, int, error)
}

type blogRepository struct {
	collection *mongo.Collection
}

func NewBlogRepo(db *mongo.Database) BlogRepository {
	return &blogRepository{collection: db.Collection("blogs")}
}

func (r *blogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	blog.ID = primitive.NewObjectID()
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt

	if _, err := r.collection.InsertOne(dbCtx, blog); err != nil {
		return fmt.Errorf("failed to insert blog: %w", err)
	}

	return nil
}

func (r *blogRepository) GetBlogById(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	blog := &models.Blog{}

	err := r.collection.FindOne(dbCtx, bson.M{"_id": id}).Decode(blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("querying blogs: %w", err)
	}

	return blog, nil
}

func (r *blogRepository) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	blog.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(dbCtx, bson.M{"_id": blog.ID}, blog)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *blogRepository) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(dbCtx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *blogRepository) ListBlogs(ctx context.Context, publishedOnly bool, page, size int) ([]models.Blog, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}

	total, err := r.collection.CountDocuments(dbCtx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting blogs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(dbCtx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("querying blogs: %w", err)
	}
	defer cursor.Close(dbCtx)

	var blogs []models.Blog
	if err := cursor.All(dbCtx, &blogs); err != nil {
		return nil, 0, fmt.Errorf("decoding blogs: %w", err)
	}

	return blogs, int(total), nil
}
