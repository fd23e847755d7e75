package service

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront/internal/models"
)

// Subtotal sums quantity × price over the cart.
func Subtotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// CodeValid reports whether code is a non-empty member of available.
func CodeValid(code string, available []string) bool {
	if code == "" {
		return false
	}
	for _, c := range available {
		if c == code {
			return true
		}
	}
	return false
}

// DiscountAmount is the discount the page displays for a valid code. rate is a local copy of the
// backend's checkout rate; the backend's figure in CheckoutResponse is authoritative.
func DiscountAmount(subtotal, rate decimal.Decimal, valid bool) decimal.Decimal {
	if !valid {
		return decimal.Zero
	}
	return subtotal.Mul(rate)
}

// CheckoutAllowed is false for an empty cart and for a non-empty code that is not valid.
func CheckoutAllowed(items []models.CartItem, code string, valid bool) bool {
	if len(items) == 0 {
		return false
	}
	return code == "" || valid
}
