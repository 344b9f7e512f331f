package orders

import (
	"github.com/eshop-register/backend/pkg/enums"
)

// CreateOrderInput carries the fields accepted when opening a new order.
type CreateOrderInput struct {
	UserID          int64
	Currency        enums.Currency
	ShippingAddress string
	BillingAddress  string
}

// UpdateOrderInput lists the mutable order fields. Nil pointers leave the
// field untouched; total_amount is derived and deliberately absent.
type UpdateOrderInput struct {
	Status          *enums.OrderStatus
	PaymentStatus   *enums.PaymentStatus
	WarehouseID     *int64
	Currency        *enums.Currency
	ShippingAddress *string
	BillingAddress  *string
}

// AddItemInput carries the parameters of the add-item operation.
type AddItemInput struct {
	OrderID   int64
	ProductID int64
	Quantity  int
}
