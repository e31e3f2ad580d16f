package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thebagdis/storefront/internal/api/middleware"
	"github.com/thebagdis/storefront/internal/cart"
	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	"github.com/thebagdis/storefront/internal/pricing"
	repository "github.com/thebagdis/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService is the store around the pure cart transitions. Mutations are
// serialized with a mutex: one writer at a time, reads go straight through.
type CartService struct {
	mu          sync.Mutex
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{repo: repo, productRepo: productRepo}
}

// load reads the user's persisted snapshot. A missing or malformed snapshot
// comes back as an empty cart.
func (s *CartService) load(ctx context.Context, userID primitive.ObjectID) (cart.State, error) {
	raw, err := s.repo.LoadSnapshot(ctx, userID)
	if err != nil {
		return cart.Empty(), errors.DatabaseError("Failed to load cart").WithError(err)
	}

	return cart.Decode(raw), nil
}

// runEffects performs the side effects a transition asked for. Persistence is
// best effort: a failed write is logged, but the returned state stands.
func (s *CartService) runEffects(ctx context.Context, userID primitive.ObjectID, state cart.State, effects []cart.Effect) {
	logger := middleware.LoggerFromContext(ctx)

	for _, effect := range effects {
		switch effect.Kind {
		case cart.EffectPersist:
			snapshot, err := cart.Encode(state)
			if err != nil {
				logger.Warn("Failed to encode cart snapshot", slog.Any("error", err))

				continue
			}

			if err := s.repo.SaveSnapshot(ctx, userID, snapshot); err != nil {
				logger.Warn("Failed to persist cart snapshot", slog.String("userId", userID.Hex()), slog.Any("error", err))
			}
		}
	}
}

func (s *CartService) respond(state cart.State) *models.CartResponse {
	totals := pricing.Quote(state.Items).Round()

	return &models.CartResponse{
		Items:         state.Items,
		ItemsPrice:    totals.ItemsPrice,
		TaxPrice:      totals.TaxPrice,
		ShippingPrice: totals.ShippingPrice,
		TotalAmount:   totals.TotalAmount,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.CartResponse, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.respond(state), nil
}

func (s *CartService) AddItem(ctx context.Context, userID primitive.ObjectID, req *models.AddItemRequest) (*models.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, errors.BadRequestError("Invalid product ID")
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if product.Stock < req.Quantity {
		return nil, errors.BadRequestError("Insufficient stock for product")
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

	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, effects := cart.Add(state, item)
	s.runEffects(ctx, userID, next, effects)

	return s.respond(next), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID primitive.ObjectID, req *models.UpdateQuantityRequest) (*models.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, effects := cart.SetQuantity(state, req.ProductID, req.Quantity)
	s.runEffects(ctx, userID, next, effects)

	return s.respond(next), nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID primitive.ObjectID, productID string) (*models.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, effects := cart.Remove(state, productID)
	s.runEffects(ctx, userID, next, effects)

	return s.respond(next), nil
}

func (s *CartService) ClearCart(ctx context.Context, userID primitive.ObjectID) (*models.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, effects := cart.Clear(state)
	s.runEffects(ctx, userID, next, effects)

	return s.respond(next), nil
}
