package repository

import (
	"context"
	"errors"

	"github.com/Learnspoint11/moryastationery/internal/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

// UserRepository persists user accounts. IDs cross the boundary as hex
// strings so callers never depend on the driver's ID type.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

// OrderRepository persists placed orders.
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
}

// ProductRepository reads the product catalog.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
}
