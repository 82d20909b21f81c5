package domain

import "errors"

// Domain errors as sentinel values
var (
	// Money and discount errors
	ErrMalformedAmount        = errors.New("malformed monetary amount")
	ErrUnknownDiscountKind    = errors.New("unknown discount type")
	ErrNegativeDiscount       = errors.New("discount value cannot be negative")
	ErrInvalidPromotionWindow = errors.New("promotion end date must not be before start date")

	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptySKU        = errors.New("product SKU cannot be empty")
	ErrEmptyName       = errors.New("product name cannot be empty")
	ErrInvalidPrice    = errors.New("product MRP must be positive")
	ErrInvalidCategory = errors.New("product category cannot be empty")
	ErrInvalidNetPrice = errors.New("net price must be positive")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyCategory    = errors.New("category name cannot be empty")
	ErrCategoryCycle    = errors.New("category parent chain forms a cycle")

	// Import errors
	ErrUploadNotFound     = errors.New("price upload not found")
	ErrUnknownResetPolicy = errors.New("unknown deal price reset policy")
)
