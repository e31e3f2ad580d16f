package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/thebagdis/storefront/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repositories struct {
	client *mongo.Client

	User         UserRepository
	Product      ProductRepository
	Cart         CartRepository
	Order        OrderRepository
	Blog         BlogRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)

	return &Repositories{
		client:       client,
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Cart:         NewCartRepo(db),
		Order:        NewOrderRepo(db),
		Blog:         NewBlogRepo(db),
		Notification: NewNotificationRepo(db),
	}, nil
}

func (r *Repositories) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
