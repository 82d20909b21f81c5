package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/queries/get_price"
)

// PriceHandler serves resolved product prices.
type PriceHandler struct {
	getPrice *get_price.Query
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(getPrice *get_price.Query) *PriceHandler {
	return &PriceHandler{getPrice: getPrice}
}

// Get handles GET /api/v1/products/:sku/price.
func (h *PriceHandler) Get(c *gin.Context) {
	dto, err := h.getPrice.Execute(c.Request.Context(), &get_price.Request{SKU: c.Param("sku")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPriceResponse(dto))
}
