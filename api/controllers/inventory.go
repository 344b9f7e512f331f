package controllers

import (
	"net/http"

	"github.com/eshop-register/backend/api/responses"
	"github.com/eshop-register/backend/api/validators"
	inventorysvc "github.com/eshop-register/backend/internal/inventory"
	"github.com/eshop-register/backend/pkg/logger"
)

type createInventoryRequest struct {
	WarehouseID       int64 `json:"warehouse_id" validate:"required,gt=0"`
	ProductID         int64 `json:"product_id" validate:"required,gt=0"`
	QuantityAvailable int   `json:"quantity_available" validate:"gte=0"`
	QuantityReserved  int   `json:"quantity_reserved" validate:"gte=0"`
}

type updateInventoryRequest struct {
	WarehouseID       *int64 `json:"warehouse_id,omitempty" validate:"omitempty,gt=0"`
	ProductID         *int64 `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	QuantityAvailable *int   `json:"quantity_available,omitempty" validate:"omitempty,gte=0"`
	QuantityReserved  *int   `json:"quantity_reserved,omitempty" validate:"omitempty,gte=0"`
}

// CreateInventory handles POST /api/v1/inventory.
func CreateInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), inventorysvc.CreateInventoryInput{
			WarehouseID:       payload.WarehouseID,
			ProductID:         payload.ProductID,
			QuantityAvailable: payload.QuantityAvailable,
			QuantityReserved:  payload.QuantityReserved,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// GetInventory handles GET /api/v1/inventory/{inventoryID}.
func GetInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "inventoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// ListInventory handles GET /api/v1/inventory.
func ListInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ListInventoryByWarehouse handles GET /api/v1/inventory/warehouse/{warehouseID}.
func ListInventoryByWarehouse(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, err := validators.ParsePathID(r, "warehouseID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListByWarehouse(r.Context(), warehouseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ListInventoryByProduct handles GET /api/v1/inventory/product/{productID}.
func ListInventoryByProduct(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListByProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// UpdateInventory handles PUT /api/v1/inventory/{inventoryID}.
func UpdateInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "inventoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, inventorysvc.UpdateInventoryInput{
			WarehouseID:       payload.WarehouseID,
			ProductID:         payload.ProductID,
			QuantityAvailable: payload.QuantityAvailable,
			QuantityReserved:  payload.QuantityReserved,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// DeleteInventory handles DELETE /api/v1/inventory/{inventoryID}.
func DeleteInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "inventoryID")
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
