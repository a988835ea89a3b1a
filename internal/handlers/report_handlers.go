package handlers

import (
	"net/http"

	"stockroom/internal/common"
	"stockroom/internal/reports"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandlers serves inline report text and stored report exports
type ReportHandlers struct {
	reportService services.ReportService
}

func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// GetReport renders a report as CSV (default) or HTML in the response body.
// storage_id narrows the report to one storage.
func (h *ReportHandlers) GetReport(c echo.Context) error {
	kind, err := reports.ParseKind(c.Param("kind"))
	if err != nil {
		return common.SendValidationError(c, "kind", err.Error())
	}

	encoding := c.QueryParam("encoding")
	if encoding == "" {
		encoding = string(reports.DelimitedText)
	}
	enc, err := reports.ParseEncoding(encoding)
	if err != nil {
		return common.SendValidationError(c, "encoding", err.Error())
	}

	storageID, ok, err := optionalUUID(c, "storage_id")
	if !ok {
		return err
	}

	text, err := h.reportService.Generate(c.Request().Context(), kind, enc, storageID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.Blob(http.StatusOK, reports.Format(enc).ContentType(), []byte(text))
}

// CreateExport renders the report to a file in the object store and returns
// a time-limited download link.
func (h *ReportHandlers) CreateExport(c echo.Context) error {
	kind, err := reports.ParseKind(c.Param("kind"))
	if err != nil {
		return common.SendValidationError(c, "kind", err.Error())
	}

	format := c.QueryParam("format")
	if format == "" {
		format = string(reports.FormatPDF)
	}
	f, err := reports.ParseFormat(format)
	if err != nil {
		return common.SendValidationError(c, "format", err.Error())
	}

	storageID, ok, err := optionalUUID(c, "storage_id")
	if !ok {
		return err
	}

	result, err := h.reportService.Export(c.Request().Context(), kind, f, storageID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}
