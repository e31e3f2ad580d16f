package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/thebagdis/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository persists one cart snapshot per user. The snapshot is an
// opaque JSON array of line items, the same wire format a browser keeps in
// local storage; decoding tolerance lives in the cart package, not here.
type CartRepository interface {
	LoadSnapshot(ctx context.Context, userID primitive.ObjectID) ([]byte, error)
	SaveSnapshot(ctx context.Context, userID primitive.ObjectID, snapshot []byte) error
}

type cartDoc struct {
	UserID    primitive.ObjectID `bson:"_id"`
	Items     string             `bson:"items"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type cartRepository struct {
	collection *mongo.Collection
}

func NewCartRepo(db *mongo.Database) CartRepository {
	return &cartRepository{collection: db.Collection("carts")}
}

func (r *cartRepository) LoadSnapshot(ctx context.Context, userID primitive.ObjectID) ([]byte, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	doc := &cartDoc{}

	err := r.collection.FindOne(dbCtx, bson.M{"_id": userID}).Decode(doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// No cart yet is not an error; the caller starts empty.
			return nil, nil
		}

		return nil, fmt.Errorf("querying carts: %w", err)
	}

	return []byte(doc.Items), nil
}

func (r *cartRepository) SaveSnapshot(ctx context.Context, userID primitive.ObjectID, snapshot []byte) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	doc := &cartDoc{
		UserID:    userID,
		Items:     string(snapshot),
		UpdatedAt: time.Now(),
	}

	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(dbCtx, bson.M{"_id": userID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}

	return nil
}
