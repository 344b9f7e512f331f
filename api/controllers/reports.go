package controllers

import (
	"net/http"

	"github.com/eshop-register/backend/api/responses"
	reportsvc "github.com/eshop-register/backend/internal/reports"
	"github.com/eshop-register/backend/pkg/logger"
)

// SalesReport handles GET /api/v1/reports/sales.
func SalesReport(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.SalesReport(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// StockReport handles GET /api/v1/reports/stock.
func StockReport(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.StockReport(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
