package handlers

import (
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ItemHandlers serves inventory items and their count history
type ItemHandlers struct {
	itemService services.ItemService
}

func NewItemHandlers(itemService services.ItemService) *ItemHandlers {
	return &ItemHandlers{itemService: itemService}
}

type ItemRequest struct {
	Name            string     `json:"name" validate:"required,max=200"`
	Description     string     `json:"description"`
	SKU             string     `json:"sku" validate:"max=64"`
	Barcode         string     `json:"barcode" validate:"max=128"`
	CurrentQuantity float64    `json:"current_quantity"`
	MinQuantity     float64    `json:"min_quantity"`
	MaxQuantity     float64    `json:"max_quantity"`
	UnitCost        float64    `json:"unit_cost"`
	IsOutOfStock    bool       `json:"is_out_of_stock"`
	StorageID       *uuid.UUID `json:"storage_id"`
	UnitID          *uuid.UUID `json:"uom_id"`
}

func (r *ItemRequest) toModel() *models.InventoryItem {
	return &models.InventoryItem{
		Name:            r.Name,
		Description:     r.Description,
		SKU:             r.SKU,
		Barcode:         r.Barcode,
		CurrentQuantity: r.CurrentQuantity,
		MinQuantity:     r.MinQuantity,
		MaxQuantity:     r.MaxQuantity,
		UnitCost:        r.UnitCost,
		IsOutOfStock:    r.IsOutOfStock,
		Storage:         models.RefFromPtr(r.StorageID),
		Unit:            models.RefFromPtr(r.UnitID),
	}
}

type ListItemsRequest struct {
	StorageID string `query:"storage_id"`
	Query     string `query:"q"`
	Status    string `query:"status" validate:"omitempty,oneof=low_stock out_of_stock"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

type CountRequest struct {
	CountedQuantity  *float64 `json:"counted_quantity" validate:"required,gte=0"`
	AdjustmentReason string   `json:"adjustment_reason" validate:"required"`
	Notes            string   `json:"notes"`
}

// ItemResponse carries the stored item together with its derived stock state
type ItemResponse struct {
	*models.InventoryItem
	StockStatus models.StockStatus `json:"stock_status"`
	IsLowStock  bool               `json:"is_low_stock"`
	IsOverStock bool               `json:"is_over_stock"`
	TotalValue  float64            `json:"total_value"`
}

func newItemResponse(item *models.InventoryItem) ItemResponse {
	return ItemResponse{
		InventoryItem: item,
		StockStatus:   item.StockStatus(),
		IsLowStock:    item.IsLowStock(),
		IsOverStock:   item.IsOverStock(),
		TotalValue:    item.TotalValue(),
	}
}

type CountResponse struct {
	*models.CountAdjustment
	AdjustmentType     models.AdjustmentType `json:"adjustment_type"`
	Variance           float64               `json:"variance"`
	VariancePercentage float64               `json:"variance_percentage"`
}

func newCountResponse(adj *models.CountAdjustment) CountResponse {
	return CountResponse{
		CountAdjustment:    adj,
		AdjustmentType:     adj.AdjustmentType(),
		Variance:           adj.Variance(),
		VariancePercentage: adj.VariancePercentage(),
	}
}

// ListItems filters by storage, by a name/SKU search term and by stock status.
// Without a limit every matching item is returned.
func (h *ItemHandlers) ListItems(c echo.Context) error {
	var req ListItemsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	storageID, ok, err := optionalUUID(c, "storage_id")
	if !ok {
		return err
	}

	filter := models.ItemFilter{
		StorageID: storageID,
		Query:     req.Query,
		Status:    req.Status,
	}
	if req.Limit > 0 {
		filter.Limit, filter.Offset, err = common.ValidatePaginationParams(req.Limit, req.Offset)
		if err != nil {
			return common.SendValidationError(c, "offset", err.Error())
		}
	}

	items, err := h.itemService.List(c.Request().Context(), filter)
	if err != nil {
		return common.SendError(c, err)
	}

	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newItemResponse(item))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": out,
		"count": len(out),
	})
}

func (h *ItemHandlers) CreateItem(c echo.Context) error {
	var req ItemRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	item := req.toModel()
	if err := h.itemService.Create(c.Request().Context(), item); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, newItemResponse(item))
}

func (h *ItemHandlers) GetItem(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	item, err := h.itemService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, newItemResponse(item))
}

func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req ItemRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx := c.Request().Context()
	item := req.toModel()
	item.ID = id
	if err := h.itemService.Update(ctx, item); err != nil {
		return common.SendError(c, err)
	}

	updated, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, newItemResponse(updated))
}

func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	if err := h.itemService.Delete(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordCount reconciles the item against a physical count. The acting user
// from the bearer token is recorded as the counter.
func (h *ItemHandlers) RecordCount(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req CountRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	adj, err := h.itemService.RecordCount(c.Request().Context(), id, models.RecordCountInput{
		CountedQuantity:  *req.CountedQuantity,
		AdjustmentReason: req.AdjustmentReason,
		Notes:            req.Notes,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, newCountResponse(adj))
}

// CountHistory lists the item's count adjustments, newest first
func (h *ItemHandlers) CountHistory(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	history, err := h.itemService.History(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}

	out := make([]CountResponse, 0, len(history))
	for _, adj := range history {
		out = append(out, newCountResponse(adj))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"adjustments": out,
		"count":       len(out),
		"reasons":     models.AdjustmentReasons,
	})
}
