package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ListProducts(ctx context.Context, query *models.ListProductsQuery) ([]models.Product, int, error)
}

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepo(db *mongo.Database) ProductRepository {
	return &productRepository{collection: db.Collection("products")}
}

// Money fields are persisted as strings; decimal values never pass through
// bson marshalling directly.
type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	UserName  string             `bson:"user_name"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at"`
}

type productDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	Price          string             `bson:"price"`
	Images         []string           `bson:"images"`
	Category       string             `bson:"category"`
	Stock          int                `bson:"stock"`
	Featured       bool               `bson:"featured"`
	Reviews        []reviewDoc        `bson:"reviews,omitempty"`
	AverageRating  float64            `bson:"average_rating"`
	NumReviews     int                `bson:"num_reviews"`
	Specifications map[string]string  `bson:"specifications,omitempty"`
	Weight         float64            `bson:"weight"`
	WeightUnit     string             `bson:"weight_unit"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func toProductDoc(p *models.Product) *productDoc {

	reviews := make([]reviewDoc, 0, len(p.Reviews))
	for _, rv := range p.Reviews {
		reviews = append(reviews, reviewDoc(rv))
	}

	return &productDoc{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.String(),
		Images:         p.Images,
		Category:       p.Category,
		Stock:          p.Stock,
		Featured:       p.Featured,
		Reviews:        reviews,
		AverageRating:  p.AverageRating,
		NumReviews:     p.NumReviews,
		Specifications: p.Specifications,
		Weight:         p.Weight,
		WeightUnit:     p.WeightUnit,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (d *productDoc) toModel() (*models.Product, error) {

	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", d.Price, err)
	}

	reviews := make([]models.Review, 0, len(d.Reviews))
	for _, rv := range d.Reviews {
		reviews = append(reviews, models.Review(rv))
	}

	return &models.Product{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		Price:          price,
		Images:         d.Images,
		Category:       d.Category,
		Stock:          d.Stock,
		Featured:       d.Featured,
		Reviews:        reviews,
		AverageRating:  d.AverageRating,
		NumReviews:     d.NumReviews,
		Specifications: d.Specifications,
		Weight:         d.Weight,
		WeightUnit:     d.WeightUnit,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if _, err := r.collection.InsertOne(dbCtx, toProductDoc(product)); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	doc := &productDoc{}

	err := r.collection.FindOne(dbCtx, bson.M{"_id": id}).Decode(doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("querying products: %w", err)
	}

	return doc.toModel()
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product.UpdatedAt = time.Now()

	doc := toProductDoc(product)

	result, err := r.collection.ReplaceOne(dbCtx, bson.M{"_id": product.ID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(dbCtx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, query *models.ListProductsQuery) ([]models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if query.Category != "" {
		filter["category"] = query.Category
	}

	if query.Featured != nil {
		filter["featured"] = *query.Featured
	}

	total, err := r.collection.CountDocuments(dbCtx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((query.Page - 1) * query.Size)).
		SetLimit(int64(query.Size))

	cursor, err := r.collection.Find(dbCtx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer cursor.Close(dbCtx)

	var docs []productDoc
	if err := cursor.All(dbCtx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decoding products: %w", err)
	}

	products := make([]models.Product, 0, len(docs))

	for i := range docs {
		product, err := docs[i].toModel()
		if err != nil {
			return nil, 0, err
		}

		products = append(products, *product)
	}

	return products, int(total), nil
}
