package models

import "github.com/shopspring/decimal"

// Stats is the admin purchase summary for one user.
type Stats struct {
	UserID              string          `json:"userId"`
	TotalOrders         int             `json:"totalOrders"`
	TotalItemsPurchased int             `json:"totalItemsPurchased"`
	TotalSpent          decimal.Decimal `json:"totalSpent"`
	TotalDiscount       decimal.Decimal `json:"totalDiscount"`
	DiscountCodes       []string        `json:"discountCodes"`
}
