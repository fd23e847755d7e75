// Package models holds the wire and display records exchanged with the storefront backend.
package models

import "github.com/shopspring/decimal"

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
