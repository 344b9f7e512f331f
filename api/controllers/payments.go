package controllers

import (
	"net/http"

	"github.com/eshop-register/backend/api/responses"
	"github.com/eshop-register/backend/api/validators"
	paymentsvc "github.com/eshop-register/backend/internal/payments"
	"github.com/eshop-register/backend/pkg/logger"
)

type createPaymentRequest struct {
	OrderID               int64  `json:"order_id" validate:"required,gt=0"`
	PaymentProvider       string `json:"payment_provider" validate:"required"`
	ProviderTransactionID string `json:"provider_transaction_id" validate:"required"`
}

// CreatePayment handles POST /api/v1/payments. Payment rows are append-only.
func CreatePayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Create(r.Context(), paymentsvc.CreatePaymentInput{
			OrderID:               payload.OrderID,
			PaymentProvider:       payload.PaymentProvider,
			ProviderTransactionID: payload.ProviderTransactionID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// GetPayment handles GET /api/v1/payments/{paymentID}.
func GetPayment(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "paymentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payment)
	}
}

// ListPayments handles GET /api/v1/payments.
func ListPayments(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payments, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payments)
	}
}

// ListOrderPayments handles GET /api/v1/orders/{orderID}/payments.
func ListOrderPayments(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payments, err := svc.ListByOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payments)
	}
}
