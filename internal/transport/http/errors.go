package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/import_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/pricesheet"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo describes one error.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// mapDomainError converts domain errors to HTTP status codes and error codes.
func mapDomainError(err error) (int, ErrorInfo) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, ErrorInfo{"PRODUCT_NOT_FOUND", "product not found"}

	case errors.Is(err, domain.ErrUploadNotFound):
		return http.StatusNotFound, ErrorInfo{"UPLOAD_NOT_FOUND", "price upload not found"}

	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, ErrorInfo{"CATEGORY_NOT_FOUND", "category not found"}

	case errors.Is(err, domain.ErrEmptySKU):
		return http.StatusBadRequest, ErrorInfo{"SKU_REQUIRED", "SKU cannot be empty"}

	case errors.Is(err, domain.ErrUnknownResetPolicy):
		return http.StatusBadRequest, ErrorInfo{"INVALID_RESET_POLICY", err.Error()}

	case errors.Is(err, pricesheet.ErrUnsupportedFormat):
		return http.StatusBadRequest, ErrorInfo{"INVALID_FILE_TYPE", err.Error()}

	case errors.Is(err, pricesheet.ErrEmptySheet):
		return http.StatusBadRequest, ErrorInfo{"EMPTY_FILE", err.Error()}

	case errors.Is(err, import_prices.ErrImportInProgress):
		return http.StatusConflict, ErrorInfo{"IMPORT_IN_PROGRESS", err.Error()}

	case errors.Is(err, import_prices.ErrImportLockLost):
		return http.StatusConflict, ErrorInfo{"IMPORT_LOCK_LOST", "price import stopped after losing its lock, check the upload status"}

	case errors.Is(err, committer.ErrVersionConflict):
		return http.StatusConflict, ErrorInfo{"CONFLICT", "the record was modified concurrently, retry"}

	default:
		return http.StatusInternalServerError, ErrorInfo{"INTERNAL", "internal server error"}
	}
}

func writeError(c *gin.Context, err error) {
	status, info := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: info})
}

func badRequest(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: ErrorInfo{Code: code, Message: message}})
}
