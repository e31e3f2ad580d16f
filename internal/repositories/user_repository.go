package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserById(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context, page, size int) ([]models.User, int, error)
	UpdateUserRole(ctx context.Context, id primitive.ObjectID, role models.Role) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepository {
	return &userRepository{collection: db.Collection("users")}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// Emails are stored lowercased so uniqueness is case-insensitive.
	user.Email = strings.ToLower(user.Email)
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if _, err := r.collection.InsertOne(dbCtx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	err := r.collection.FindOne(dbCtx, bson.M{"email": strings.ToLower(email)}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("querying users: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserById(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	err := r.collection.FindOne(dbCtx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("querying users: %w", err)
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"addresses":  user.Addresses,
		"updated_at": user.UpdatedAt,
	}}

	result, err := r.collection.UpdateByID(dbCtx, user.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *userRepository) ListUsers(ctx context.Context, page, size int) ([]models.User, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	total, err := r.collection.CountDocuments(dbCtx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(dbCtx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("querying users: %w", err)
	}
	defer cursor.Close(dbCtx)

	var users []models.User
	if err := cursor.All(dbCtx, &users); err != nil {
		return nil, 0, fmt.Errorf("decoding users: %w", err)
	}

	return users, int(total), nil
}

func (r *userRepository) UpdateUserRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}}

	result, err := r.collection.UpdateByID(dbCtx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(dbCtx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
