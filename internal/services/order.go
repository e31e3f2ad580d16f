package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/pricing"
	repository "github.com/thebagdis/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statusRank orders the forward fulfillment path. Cancelled sits outside the
// path and is handled separately.
var statusRank = map[models.OrderStatus]int{
	models.OrderStatusPending:    0,
	models.OrderStatusProcessing: 1,
	models.OrderStatusShipped:    2,
	models.OrderStatusDelivered:  3,
}

func isTerminal(status models.OrderStatus) bool {
	return status == models.OrderStatusDelivered || status == models.OrderStatusCancelled
}

// CanTransition reports whether an order may move from one status to another.
// The fulfillment path only moves forward; cancellation is allowed from any
// non-terminal status; terminal states never change.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return false
	}

	if isTerminal(from) {
		return false
	}

	if to == models.OrderStatusCancelled {
		return true
	}

	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}

	toRank, ok := statusRank[to]
	if !ok {
		return false
	}

	return toRank > fromRank
}

type OrderService struct {
	repo          repository.OrderRepository
	productRepo   repository.ProductRepository
	payments      *PaymentService
	carts         *CartService
	notifications *NotificationService
}

func NewOrderService(repo repository.OrderRepository, productRepo repository.ProductRepository, payments *PaymentService, carts *CartService, notifications *NotificationService) *OrderService {
	return &OrderService{
		repo:          repo,
		productRepo:   productRepo,
		payments:      payments,
		carts:         carts,
		notifications: notifications,
	}
}

// buildItems resolves the requested items against the catalog. Name, price
// and image come from the catalog, never from the client, and the resulting
// line items are the immutable snapshot embedded into the order.
func (s *OrderService) buildItems(ctx context.Context, requested []models.LineItem) ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(requested))

	for _, req := range requested {
		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			return nil, errors.BadRequestError("Invalid product ID: " + req.ProductID)
		}

		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			return nil, errors.NotFoundError("Product not found: " + req.ProductID).WithError(err)
		}

		if product.Stock < req.Quantity {
			return nil, errors.BadRequestError("Insufficient stock for " + product.Name)
		}

		item := models.LineItem{
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  req.Quantity,
		}

		if len(product.Images) > 0 {
			item.Image = product.Images[0]
		}

		items = append(items, item)
	}

	return items, nil
}

// decrementStock reduces catalog stock for the ordered items. Failures are
// logged rather than failing the checkout; stock drift is corrected by admin
// tooling, a lost order is not.
func (s *OrderService) decrementStock(ctx context.Context, items []models.LineItem) {
	logger := middleware.LoggerFromContext(ctx)

	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			continue
		}

		product, err := s.productRepo.GetProductByID(ctx, productID)
		if err != nil {
			logger.Warn("Failed to load product for stock update", slog.String("productId", item.ProductID), slog.Any("error", err))

			continue
		}

		product.Stock -= item.Quantity
		if product.Stock < 0 {
			product.Stock = 0
		}

		if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
			logger.Warn("Failed to update product stock", slog.String("productId", item.ProductID), slog.Any("error", err))
		}
	}
}

// Checkout turns the request into a persisted order: catalog-resolved items,
// totals computed once and embedded, gateway checkout prepared for online
// payment methods, cart cleared and a confirmation email sent best effort.
func (s *OrderService) Checkout(ctx context.Context, user *models.User, req *models.CreateOrderRequest) (*models.CheckoutResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	if len(req.Items) == 0 {
		return nil, errors.BadRequestError("Order must contain at least one item")
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	totals := pricing.Quote(items)

	order := &models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          user.ID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      totals.ItemsPrice,
		TaxPrice:        totals.TaxPrice,
		ShippingPrice:   totals.ShippingPrice,
		TotalAmount:     totals.TotalAmount,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		Notes:           req.Notes,
	}

	resp, err := s.payments.CreateCheckout(ctx, user, order)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	s.decrementStock(ctx, items)

	if _, err := s.carts.ClearCart(ctx, user.ID); err != nil {
		logger.Warn("Failed to clear cart after checkout", slog.String("orderId", order.ID.Hex()), slog.Any("error", err))
	}

	if err := s.notifications.SendOrderConfirmation(ctx, user, order); err != nil {
		logger.Warn("Failed to send order confirmation", slog.String("orderId", order.ID.Hex()), slog.Any("error", err))
	}

	return resp, nil
}

// GetOrder returns an order the caller may see: the owner or an admin.
func (s *OrderService) GetOrder(ctx context.Context, id primitive.ObjectID, requesterID primitive.ObjectID, role models.Role) (*models.Order, error) {
	order, err := s.repo.GetOrderById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.UserID != requesterID && role != models.RoleAdmin {
		return nil, errors.ForbiddenError("Not allowed to view this order")
	}

	return order, nil
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID, page, size int) ([]models.Order, int, error) {
	orders, total, err := s.repo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

func (s *OrderService) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {
	orders, total, err := s.repo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateStatus applies an admin fulfillment transition. Delivery stamps
// deliveredAt and settles cash-on-delivery payments; shipping captures the
// tracking reference.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.repo.GetOrderById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !CanTransition(order.Status, req.Status) {
		return nil, errors.BadRequestError("Invalid status transition from " + string(order.Status) + " to " + string(req.Status))
	}

	fields := map[string]any{}

	if req.Status == models.OrderStatusShipped {
		if req.TrackingNumber != "" {
			fields["tracking_number"] = req.TrackingNumber
		}

		if req.TrackingURL != "" {
			fields["tracking_url"] = req.TrackingURL
		}
	}

	if req.Status == models.OrderStatusDelivered {
		now := time.Now()
		fields["delivered_at"] = now
		order.DeliveredAt = &now
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, req.Status, fields); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = req.Status

	// COD is settled on the doorstep: delivery completes a pending payment.
	if req.Status == models.OrderStatusDelivered &&
		order.PaymentMethod == models.PaymentMethodCOD &&
		order.PaymentStatus == models.PaymentStatusPending {
		result := &models.PaymentResult{
			Status:     string(models.PaymentStatusCompleted),
			UpdateTime: time.Now().UTC().Format(time.RFC3339),
		}

		if err := s.repo.UpdatePaymentStatus(ctx, id, models.PaymentStatusCompleted, result); err != nil {
			return nil, errors.DatabaseError("Failed to settle COD payment").WithError(err)
		}

		order.PaymentStatus = models.PaymentStatusCompleted
		order.PaymentResult = result
	}

	return order, nil
}
