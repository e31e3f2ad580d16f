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

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	UpdateNotificationStatus(ctx context.Context, id primitive.ObjectID, status models.NotificationStatus) error
	ListNotificationsByUser(ctx context.Context, userID primitive.ObjectID, page, size int) ([]models.Notification, int, error)
}

type notificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepository {
	return &notificationRepository{collection: db.Collection("notifications")}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt

	if _, err := r.collection.InsertOne(dbCtx, n); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) UpdateNotificationStatus(ctx context.Context, id primitive.ObjectID, status models.NotificationStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}

	result, err := r.collection.UpdateOne(dbCtx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *notificationRepository) ListNotificationsByUser(ctx context.Context, userID primitive.ObjectID, page, size int) ([]models.Notification, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := bson.M{"user_id": userID}

	total, err := r.collection.CountDocuments(dbCtx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting notifications: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(dbCtx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("querying notifications: %w", err)
	}
	defer cursor.Close(dbCtx)

	var notifications []models.Notification
	if err := cursor.All(dbCtx, &notifications); err != nil {
		return nil, 0, fmt.Errorf("decoding notifications: %w", err)
	}

	return notifications, int(total), nil
}
