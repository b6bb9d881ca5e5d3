package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Learnspoint11/moryastationery/internal/models"
	"github.com/Learnspoint11/moryastationery/internal/repository"
)

// OrderService creates and reads orders. Writes happen only behind the
// verification gate; the gate resolves the owning user, never the client.
type OrderService struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	logger *zap.SugaredLogger
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{orders: orders, users: users, logger: logger}
}

// Place persists a new order in the Pending state and returns it with its
// assigned id. Items must be non-empty with positive quantities; product
// ids are recorded as given, not checked against the catalog.
func (s *OrderService) Place(ctx context.Context, userID string, items []models.OrderItem, paymentMethod string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrder
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, ErrInvalidOrder
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Errorw("user lookup failed", "user_id", userID, "error", err)
		return nil, ErrPersistenceFailure
	}

	order := &models.Order{
		UserID:        user.ID,
		Items:         items,
		PaymentMethod: paymentMethod,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Errorw("order persist failed", "user_id", userID, "error", err)
		return nil, ErrPersistenceFailure
	}

	s.logger.Infow("order placed", "order_id", order.ID.Hex(), "user_id", userID, "items", len(items))
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []models.Order{}, nil
		}
		s.logger.Errorw("order list failed", "user_id", userID, "error", err)
		return nil, ErrPersistenceFailure
	}
	return orders, nil
}

// Track loads a single order by id. Knowledge of the id is the only
// requirement; tracking is deliberately not identity-gated.
func (s *OrderService) Track(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Errorw("order lookup failed", "order_id", orderID, "error", err)
		return nil, ErrPersistenceFailure
	}
	return order, nil
}
