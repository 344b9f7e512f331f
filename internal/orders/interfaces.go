package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	// FindByIDForUpdate locks the order row for the duration of the
	// surrounding transaction so total updates serialize per order.
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	CreateItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error)
	FindItemsByOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	DeleteItemsByOrderAndProduct(ctx context.Context, orderID, productID int64) ([]models.OrderItem, error)
}
