package controllers

import (
	"net/http"

	"github.com/eshop-register/backend/api/responses"
	"github.com/eshop-register/backend/api/validators"
	warehousesvc "github.com/eshop-register/backend/internal/warehouses"
	"github.com/eshop-register/backend/pkg/logger"
)

type createWarehouseRequest struct {
	WarehouseName string `json:"warehouse_name" validate:"required"`
	LocationCode  string `json:"location_code" validate:"required"`
	IsActive      bool   `json:"is_active"`
}

type updateWarehouseRequest struct {
	WarehouseName *string `json:"warehouse_name,omitempty"`
	LocationCode  *string `json:"location_code,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// CreateWarehouse handles POST /api/v1/warehouses.
func CreateWarehouse(svc warehousesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createWarehouseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouse, err := svc.Create(r.Context(), warehousesvc.CreateWarehouseInput{
			WarehouseName: payload.WarehouseName,
			LocationCode:  payload.LocationCode,
			IsActive:      payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, warehouse)
	}
}

// GetWarehouse handles GET /api/v1/warehouses/{warehouseID}.
func GetWarehouse(svc warehousesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "warehouseID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouse, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, warehouse)
	}
}

// ListWarehouses handles GET /api/v1/warehouses.
func ListWarehouses(svc warehousesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouses, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, warehouses)
	}
}

// UpdateWarehouse handles PUT /api/v1/warehouses/{warehouseID}.
func UpdateWarehouse(svc warehousesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "warehouseID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateWarehouseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouse, err := svc.Update(r.Context(), id, warehousesvc.UpdateWarehouseInput{
			WarehouseName: payload.WarehouseName,
			LocationCode:  payload.LocationCode,
			IsActive:      payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, warehouse)
	}
}

// DeleteWarehouse handles DELETE /api/v1/warehouses/{warehouseID}.
func DeleteWarehouse(svc warehousesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "warehouseID")
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
