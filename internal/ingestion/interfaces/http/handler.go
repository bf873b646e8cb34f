// Package http exposes the client import endpoint.
package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"

	authdomain "github.com/wyfcoding/ssrequity/internal/auth/domain"
	"github.com/wyfcoding/ssrequity/internal/ingestion/application"
	"github.com/wyfcoding/ssrequity/internal/ingestion/domain"
	"github.com/wyfcoding/ssrequity/pkg/logger"
	"github.com/wyfcoding/ssrequity/pkg/metrics"
)

// APIKeyHeader carries the client's secret on import requests.
const APIKeyHeader = "X-API-Key"

// ImportHandler serves position file uploads.
type ImportHandler struct {
	service *application.ImportService
	metrics *metrics.Metrics
}

// NewImportHandler wires the handler. m may be nil when metrics are disabled.
func NewImportHandler(service *application.ImportService, m *metrics.Metrics) *ImportHandler {
	return &ImportHandler{service: service, metrics: m}
}

// RegisterRoutes mounts the client endpoints.
func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/client/ssr/import", h.Import)
}

// Import handles one multipart CSV upload.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.observe("bad_request", 0)
		response.ErrorWithStatus(c, http.StatusBadRequest, "file is required", "")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.observe("bad_request", 0)
		response.ErrorWithStatus(c, http.StatusBadRequest, "failed to read file", "")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.observe("bad_request", 0)
		response.ErrorWithStatus(c, http.StatusBadRequest, "failed to read file", "")
		return
	}

	apiKey := c.GetHeader(APIKeyHeader)

	result, err := h.service.Import(c.Request.Context(), apiKey, raw, fileHeader.Filename)
	if err != nil {
		status, outcome := classify(err)
		h.observe(outcome, 0)
		if status == http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "Import failed", "error", err)
			response.ErrorWithStatus(c, status, "failed to ingest upload", "")
			return
		}
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	h.observe("stored", result.TotalRows)
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"client_id":       result.ClientID,
		"upload_batch_id": result.BatchID,
		"total_rows":      result.TotalRows,
	})
}

func (h *ImportHandler) observe(outcome string, rows int) {
	if h.metrics != nil {
		h.metrics.ObserveUpload(outcome, rows)
	}
}

// classify maps the domain error taxonomy to an HTTP status and a metric
// outcome label.
func classify(err error) (int, string) {
	var tooLarge *domain.UploadTooLargeError
	var missingColumn *domain.MissingColumnError
	var invalidNumber *domain.InvalidNumberError
	var invalidDate *domain.InvalidDateError

	switch {
	case errors.Is(err, authdomain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, domain.ErrEmptyUpload),
		errors.Is(err, domain.ErrEmptyBatch),
		errors.Is(err, domain.ErrMalformedCSV),
		errors.Is(err, domain.ErrMissingAsOfDate),
		errors.As(err, &missingColumn),
		errors.As(err, &invalidNumber),
		errors.As(err, &invalidDate):
		return http.StatusBadRequest, "validation_failed"
	default:
		return http.StatusInternalServerError, "error"
	}
}
