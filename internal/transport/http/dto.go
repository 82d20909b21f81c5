package http

import (
	"time"

	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/catalog-pricing-service/internal/app/pricing/domain"
)

// ImportResponse is returned by a finished upload.
type ImportResponse struct {
	UploadID string `json:"upload_id"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Reset    int    `json:"reset"`
}

// SkippedRow is one rejected sheet row.
type SkippedRow struct {
	RowNumber        int           `json:"row_number"`
	SKU              string        `json:"sku"`
	ProductName      string        `json:"product_name"`
	MRP              *domain.Money `json:"mrp,omitempty"`
	CurrentSalePrice *domain.Money `json:"current_sale_price,omitempty"`
	Price            *domain.Money `json:"price,omitempty"`
	Reason           string        `json:"reason"`
	Suggestion       string        `json:"suggestion"`
}

// SkippedResponse lists the skipped rows of one upload.
type SkippedResponse struct {
	UploadID string       `json:"upload_id"`
	FileName string       `json:"file_name"`
	Status   string       `json:"status"`
	Error    string       `json:"error,omitempty"`
	Skipped  []SkippedRow `json:"skipped"`
}

// ImportLog is one batch summary.
type ImportLog struct {
	UploadID  string    `json:"upload_id"`
	FileName  string    `json:"file_name"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
	Reset     int       `json:"reset"`
	CreatedAt time.Time `json:"created_at"`
}

// PriceResponse is the resolved price of one product.
type PriceResponse struct {
	ProductID     string        `json:"product_id"`
	SKU           string        `json:"sku"`
	Name          string        `json:"name"`
	MRP           *domain.Money `json:"mrp"`
	FinalPrice    *domain.Money `json:"final_price"`
	Discount      *domain.Money `json:"discount"`
	Source        string        `json:"source"`
	Label         string        `json:"label,omitempty"`
	Tier          string        `json:"tier"`
	PromotionID   string        `json:"promotion_id,omitempty"`
	Promotion     string        `json:"promotion,omitempty"`
	ShowMRPStrike bool          `json:"show_mrp_strike"`
}

// Event represents a domain event in the HTTP response.
type Event struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	AggregateID string  `json:"aggregate_id"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events     []Event `json:"events"`
	TotalCount int     `json:"total_count"`
}

func toSkippedRow(r *domain.SkippedPriceImport) SkippedRow {
	return SkippedRow{
		RowNumber:        r.RowNumber,
		SKU:              r.SKU,
		ProductName:      r.ProductName,
		MRP:              r.MRP,
		CurrentSalePrice: r.CurrentSalePrice,
		Price:            r.Price,
		Reason:           r.Reason,
		Suggestion:       r.Suggestion,
	}
}

func toImportLog(l *domain.ImportLog) ImportLog {
	return ImportLog{
		UploadID:  l.UploadID,
		FileName:  l.FileName,
		Imported:  l.ImportedCount,
		Skipped:   l.SkippedCount,
		Reset:     l.ResetCount,
		CreatedAt: l.CreatedAt,
	}
}

func toPriceResponse(p *contracts.PriceDTO) PriceResponse {
	return PriceResponse{
		ProductID:     p.ProductID,
		SKU:           p.SKU,
		Name:          p.Name,
		MRP:           p.MRP,
		FinalPrice:    p.FinalPrice,
		Discount:      p.Discount,
		Source:        string(p.Source),
		Label:         p.Label,
		Tier:          p.Tier,
		PromotionID:   p.PromotionID,
		Promotion:     p.Promotion,
		ShowMRPStrike: p.ShowMRPStrike,
	}
}

func toEvent(e *contracts.EventDTO) Event {
	event := Event{
		EventID:     e.EventID,
		EventType:   e.EventType,
		AggregateID: e.AggregateID,
		Payload:     e.Payload,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	if e.ProcessedAt != nil {
		processedAt := e.ProcessedAt.Format(time.RFC3339)
		event.ProcessedAt = &processedAt
	}
	return event
}
