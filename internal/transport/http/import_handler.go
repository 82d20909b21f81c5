package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_import_logs"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/list_skipped_imports"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/usecases/import_prices"
	"github.com/light-bringer/catalog-pricing-service/internal/pkg/pricesheet"
)

// ImportOptions are the upload defaults taken from config.
type ImportOptions struct {
	MaxUploadBytes    int64
	DefaultValidation bool
	DefaultPolicy     domain.ResetPolicy
}

// ImportHandler serves price sheet uploads and their audit trail.
type ImportHandler struct {
	importPrices *import_prices.Interactor
	listSkipped  *list_skipped_imports.Query
	listLogs     *list_import_logs.Query
	opts         ImportOptions
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(
	importPrices *import_prices.Interactor,
	listSkipped *list_skipped_imports.Query,
	listLogs *list_import_logs.Query,
	opts ImportOptions,
) *ImportHandler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.DefaultPolicy == "" {
		opts.DefaultPolicy = domain.ResetNone
	}
	return &ImportHandler{
		importPrices: importPrices,
		listSkipped:  listSkipped,
		listLogs:     listLogs,
		opts:         opts,
	}
}

// Upload handles POST /api/v1/price-imports with a multipart "file".
func (h *ImportHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "FILE_REQUIRED", "Please upload a CSV or Excel file")
		return
	}
	defer file.Close()

	if _, err := pricesheet.DetectFormat(header.Filename); err != nil {
		writeError(c, err)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, h.opts.MaxUploadBytes+1))
	if err != nil {
		badRequest(c, "FILE_UNREADABLE", err.Error())
		return
	}
	if int64(len(content)) > h.opts.MaxUploadBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorBody{Error: ErrorInfo{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("file exceeds %d bytes", h.opts.MaxUploadBytes),
		}})
		return
	}

	validate := h.opts.DefaultValidation
	if v := c.PostForm("consider_price_validation"); v != "" {
		validate, err = strconv.ParseBool(v)
		if err != nil {
			badRequest(c, "INVALID_VALIDATION_FLAG", "consider_price_validation must be true or false")
			return
		}
	}

	policy := h.opts.DefaultPolicy
	if v := c.PostForm("reset_policy"); v != "" {
		policy, err = domain.ParseResetPolicy(v)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	res, err := h.importPrices.Execute(c.Request.Context(), &import_prices.Request{
		FileName:                header.Filename,
		Content:                 content,
		ConsiderPriceValidation: validate,
		ResetPolicy:             policy,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{
		UploadID: res.UploadID,
		Imported: res.Imported,
		Skipped:  res.Skipped,
		Reset:    res.Reset,
	})
}

// Template handles GET /api/v1/price-imports/template?format=csv|xlsx.
func (h *ImportHandler) Template(c *gin.Context) {
	format, err := pricesheet.ParseFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := pricesheet.WriteTemplate(&buf, format); err != nil {
		writeError(c, err)
		return
	}

	contentType := "text/csv"
	if format == pricesheet.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Header("Content-Disposition", "attachment; filename=price_import_template."+string(format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Skipped handles GET /api/v1/price-imports/:upload_id/skipped.
func (h *ImportHandler) Skipped(c *gin.Context) {
	res, err := h.listSkipped.Execute(c.Request.Context(), &list_skipped_imports.Request{UploadID: c.Param("upload_id")})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := SkippedResponse{
		UploadID: res.Upload.ID,
		FileName: res.Upload.FileName,
		Status:   string(res.Upload.Status),
		Error:    res.Upload.Error,
		Skipped:  make([]SkippedRow, 0, len(res.Skipped)),
	}
	for _, r := range res.Skipped {
		resp.Skipped = append(resp.Skipped, toSkippedRow(r))
	}
	c.JSON(http.StatusOK, resp)
}

// Logs handles GET /api/v1/price-imports/logs?limit=.
func (h *ImportHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.listLogs.Execute(c.Request.Context(), &list_import_logs.Request{Limit: limit})
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]ImportLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, toImportLog(l))
	}
	c.JSON(http.StatusOK, gin.H{"logs": out})
}
