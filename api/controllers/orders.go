package controllers

import (
	"net/http"
	"strings"

	"github.com/eshop-register/backend/api/responses"
	"github.com/eshop-register/backend/api/validators"
	ordersvc "github.com/eshop-register/backend/internal/orders"
	"github.com/eshop-register/backend/pkg/enums"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
	"github.com/eshop-register/backend/pkg/logger"
)

type createOrderRequest struct {
	UserID          int64  `json:"user_id" validate:"required,gt=0"`
	Currency        string `json:"currency" validate:"required"`
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
}

func (r createOrderRequest) toCreateInput() (ordersvc.CreateOrderInput, error) {
	currency, err := enums.ParseCurrency(strings.TrimSpace(r.Currency))
	if err != nil {
		return ordersvc.CreateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
	}
	return ordersvc.CreateOrderInput{
		UserID:          r.UserID,
		Currency:        currency,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
	}, nil
}

type updateOrderRequest struct {
	Status          *string `json:"status,omitempty"`
	PaymentStatus   *string `json:"payment_status,omitempty"`
	WarehouseID     *int64  `json:"warehouse_id,omitempty" validate:"omitempty,gte=0"`
	Currency        *string `json:"currency,omitempty"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
	BillingAddress  *string `json:"billing_address,omitempty"`
}

func (r updateOrderRequest) toUpdateInput() (ordersvc.UpdateOrderInput, error) {
	input := ordersvc.UpdateOrderInput{
		WarehouseID:     r.WarehouseID,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
	}
	if r.Status != nil {
		status, err := enums.ParseOrderStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return ordersvc.UpdateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
		}
		input.Status = &status
	}
	if r.PaymentStatus != nil {
		status, err := enums.ParsePaymentStatus(strings.TrimSpace(*r.PaymentStatus))
		if err != nil {
			return ordersvc.UpdateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
		}
		input.PaymentStatus = &status
	}
	if r.Currency != nil {
		currency, err := enums.ParseCurrency(strings.TrimSpace(*r.Currency))
		if err != nil {
			return ordersvc.UpdateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
		}
		input.Currency = &currency
	}
	return input, nil
}

// CreateOrder handles POST /api/v1/orders.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// GetOrder handles GET /api/v1/orders/{orderID}.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ListOrders handles GET /api/v1/orders.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// UpdateOrder handles PUT /api/v1/orders/{orderID}.
func UpdateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// DeleteOrder handles DELETE /api/v1/orders/{orderID}.
func DeleteOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}
