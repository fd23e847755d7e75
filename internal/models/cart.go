package models

import "github.com/shopspring/decimal"

// CartItem is one line of a user's cart. Quantity and price are owned by the backend.
type CartItem struct {
	ItemID   string          `json:"itemId"`
	ItemName string          `json:"itemName"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineTotal is quantity × price.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type CartResponse struct {
	Cart []CartItem `json:"cart"`
}

type AddToCartRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}
