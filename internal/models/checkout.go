package models

import "github.com/shopspring/decimal"

type DiscountCodesResponse struct {
	AvailableDiscountCodes []string `json:"availableDiscountCodes"`
}

type CheckoutRequest struct {
	DiscountCode string `json:"discountCode,omitempty"`
}

type CheckoutResponse struct {
	Message         string          `json:"message"`
	DiscountApplied bool            `json:"discountApplied"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
}

// DiscountInfo is the outcome of the last checkout as reported by the backend.
type DiscountInfo struct {
	Applied bool
	Amount  decimal.Decimal
}

type GenerateDiscountResponse struct {
	Message      string `json:"message"`
	DiscountCode string `json:"discountCode"`
}
