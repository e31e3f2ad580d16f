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

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderById(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID, page, size int) ([]models.Order, int, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	// UpdateOrderStatus and UpdatePaymentStatus each $set only their own
	// fields so fulfillment updates and webhook updates can never clobber
	// one another (last-writer-wins per field, not per record).
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, fields map[string]any) error
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, result *models.PaymentResult) error
	GetOrderByGatewayRef(ctx context.Context, field, value string) (*models.Order, error)
}

type lineItemDoc struct {
	ProductID string `bson:"product_id"`
	Name      string `bson:"name"`
	Price     string `bson:"price"`
	Quantity  int    `bson:"quantity"`
	Image     string `bson:"image,omitempty"`
}

type addressDoc struct {
	Street     string `bson:"street"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postal_code"`
	Country    string `bson:"country"`
}

type paymentResultDoc struct {
	ID         string `bson:"id,omitempty"`
	PaymentID  string `bson:"payment_id,omitempty"`
	Status     string `bson:"status,omitempty"`
	UpdateTime string `bson:"update_time,omitempty"`
	Email      string `bson:"email,omitempty"`
}

type orderDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id"`
	Items           []lineItemDoc      `bson:"items"`
	ShippingAddress addressDoc         `bson:"shipping_address"`
	Phone           string             `bson:"phone"`
	PaymentMethod   string             `bson:"payment_method"`
	ItemsPrice      string             `bson:"items_price"`
	TaxPrice        string             `bson:"tax_price"`
	ShippingPrice   string             `bson:"shipping_price"`
	TotalAmount     string             `bson:"total_amount"`
	Status          string             `bson:"status"`
	PaymentStatus   string             `bson:"payment_status"`
	PaymentResult   *paymentResultDoc  `bson:"payment_result,omitempty"`
	DeliveredAt     *time.Time         `bson:"delivered_at,omitempty"`
	TrackingNumber  string             `bson:"tracking_number,omitempty"`
	TrackingURL     string             `bson:"tracking_url,omitempty"`
	Notes           string             `bson:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func toOrderDoc(o *models.Order) *orderDoc {

	items := make([]lineItemDoc, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, lineItemDoc{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice.String(),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	doc := &orderDoc{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		ShippingAddress: addressDoc(o.ShippingAddress),
		Phone:           o.Phone,
		PaymentMethod:   string(o.PaymentMethod),
		ItemsPrice:      o.ItemsPrice.String(),
		TaxPrice:        o.TaxPrice.String(),
		ShippingPrice:   o.ShippingPrice.String(),
		TotalAmount:     o.TotalAmount.String(),
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		DeliveredAt:     o.DeliveredAt,
		TrackingNumber:  o.TrackingNumber,
		TrackingURL:     o.TrackingURL,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	if o.PaymentResult != nil {
		result := paymentResultDoc(*o.PaymentResult)
		doc.PaymentResult = &result
	}

	return doc
}

func (d *orderDoc) toModel() (*models.Order, error) {

	items := make([]models.LineItem, 0, len(d.Items))

	for _, item := range d.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid stored item price %q: %w", item.Price, err)
		}

		items = append(items, models.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	parse := func(name, raw string) (decimal.Decimal, error) {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid stored %s %q: %w", name, raw, err)
		}

		return value, nil
	}

	itemsPrice, err := parse("items price", d.ItemsPrice)
	if err != nil {
		return nil, err
	}

	taxPrice, err := parse("tax price", d.TaxPrice)
	if err != nil {
		return nil, err
	}

	shippingPrice, err := parse("shipping price", d.ShippingPrice)
	if err != nil {
		return nil, err
	}

	totalAmount, err := parse("total amount", d.TotalAmount)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:              d.ID,
		UserID:          d.UserID,
		Items:           items,
		ShippingAddress: models.Address(d.ShippingAddress),
		Phone:           d.Phone,
		PaymentMethod:   models.PaymentMethod(d.PaymentMethod),
		ItemsPrice:      itemsPrice,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatus(d.Status),
		PaymentStatus:   models.PaymentStatus(d.PaymentStatus),
		DeliveredAt:     d.DeliveredAt,
		TrackingNumber:  d.TrackingNumber,
		TrackingURL:     d.TrackingURL,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}

	if d.PaymentResult != nil {
		result := models.PaymentResult(*d.PaymentResult)
		order.PaymentResult = &result
	}

	return order, nil
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) OrderRepository {
	return &orderRepository{collection: db.Collection("orders")}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	if _, err := r.collection.InsertOne(dbCtx, toOrderDoc(order)); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderById(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	doc := &orderDoc{}

	err := r.collection.FindOne(dbCtx, bson.M{"_id": id}).Decode(doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("querying orders: %w", err)
	}

	return doc.toModel()
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID, page, size int) ([]models.Order, int, error) {
	return r.list(ctx, bson.M{"user_id": userID}, page, size)
}

// ListOrders returns every order, newest first. Admin use.
func (r *orderRepository) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	return r.list(ctx, bson.M{}, page, size)
}

func (r *orderRepository) list(ctx context.Context, filter bson.M, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	total, err := r.collection.CountDocuments(dbCtx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	// Newest first.
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	cursor, err := r.collection.Find(dbCtx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("querying orders: %w", err)
	}
	defer cursor.Close(dbCtx)

	var docs []orderDoc
	if err := cursor.All(dbCtx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decoding orders: %w", err)
	}

	orders := make([]models.Order, 0, len(docs))

	for i := range docs {
		order, err := docs[i].toModel()
		if err != nil {
			return nil, 0, err
		}

		orders = append(orders, *order)
	}

	return orders, int(total), nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, fields map[string]any) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	set := bson.M{
		"status":     string(status),
		"updated_at": time.Now(),
	}

	for key, value := range fields {
		set[key] = value
	}

	result, err := r.collection.UpdateByID(dbCtx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, paymentResult *models.PaymentResult) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	set := bson.M{
		"payment_status": string(status),
		"updated_at":     time.Now(),
	}

	if paymentResult != nil {
		doc := paymentResultDoc(*paymentResult)
		set["payment_result"] = doc
	}

	result, err := r.collection.UpdateByID(dbCtx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// GetOrderByGatewayRef matches an order by the gateway reference captured at
// checkout creation. The field is a configuration point: "payment_result.id"
// (gateway order id) or "payment_result.payment_id".
func (r *orderRepository) GetOrderByGatewayRef(ctx context.Context, field, value string) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	doc := &orderDoc{}

	err := r.collection.FindOne(dbCtx, bson.M{field: value}).Decode(doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}

		return nil, fmt.Errorf("querying orders: %w", err)
	}

	return doc.toModel()
}
