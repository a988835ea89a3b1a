package handlers

import (
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/models"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

type UnitOfMeasureHandlers struct {
	uomService services.UnitOfMeasureService
}

func NewUnitOfMeasureHandlers(uomService services.UnitOfMeasureService) *UnitOfMeasureHandlers {
	return &UnitOfMeasureHandlers{uomService: uomService}
}

type UnitOfMeasureRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Symbol    string `json:"symbol" validate:"required,max=16"`
	Category  string `json:"category" validate:"max=50"`
	IsDefault bool   `json:"is_default"`
}

// ListUnits returns the registry in its stable order along with the default unit
func (h *UnitOfMeasureHandlers) ListUnits(c echo.Context) error {
	ctx := c.Request().Context()
	units, err := h.uomService.List(ctx)
	if err != nil {
		return common.SendError(c, err)
	}

	resp := map[string]interface{}{
		"units": units,
		"count": len(units),
	}
	if def, err := h.uomService.Default(ctx); err == nil {
		resp["default_id"] = def.ID
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UnitOfMeasureHandlers) UpdateUnit(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	var req UnitOfMeasureRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx := c.Request().Context()
	unit := &models.UnitOfMeasure{
		ID:        id,
		Name:      req.Name,
		Symbol:    req.Symbol,
		Category:  req.Category,
		IsDefault: req.IsDefault,
	}
	if err := h.uomService.Update(ctx, unit); err != nil {
		return common.SendError(c, err)
	}

	updated, err := h.uomService.GetByID(ctx, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
