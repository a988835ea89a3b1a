package handlers

import (
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// StorageHandlers serves the storage location endpoints
type StorageHandlers struct {
	storageService services.StorageService
}

func NewStorageHandlers(storageService services.StorageService) *StorageHandlers {
	return &StorageHandlers{storageService: storageService}
}

type StorageRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Location    string `json:"location" validate:"max=500"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

func (r *StorageRequest) toModel() *models.Storage {
	return &models.Storage{
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
		Color:       r.Color,
	}
}

type ListStoragesRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListStorages returns storages with their item count and total quantity
func (h *StorageHandlers) ListStorages(c echo.Context) error {
	var req ListStoragesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	limit, offset, err := common.ValidatePaginationParams(req.Limit, req.Offset)
	if err != nil {
		return common.SendValidationError(c, "offset", err.Error())
	}

	storages, err := h.storageService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"storages": storages,
		"limit":    limit,
		"offset":   offset,
		"count":    len(storages),
	})
}

func (h *StorageHandlers) CreateStorage(c echo.Context) error {
	var req StorageRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	storage := req.toModel()
	if err := h.storageService.Create(c.Request().Context(), storage); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, storage)
}

func (h *StorageHandlers) GetStorage(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	storage, err := h.storageService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, storage)
}

func (h *StorageHandlers) UpdateStorage(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req StorageRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx := c.Request().Context()
	storage := req.toModel()
	storage.ID = id
	if err := h.storageService.Update(ctx, storage); err != nil {
		return common.SendError(c, err)
	}

	updated, err := h.storageService.GetByID(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteStorage removes the storage together with its items and their count history
func (h *StorageHandlers) DeleteStorage(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	if err := h.storageService.Delete(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
