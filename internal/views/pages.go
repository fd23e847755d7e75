package views

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront/internal/service"
)

type CatalogPage struct {
	User   string
	Notice string
	View   service.CatalogView
}

type CartPage struct {
	User        string
	View        service.CartView
	RatePercent string
	Discount    decimal.Decimal
	FinalTotal  decimal.Decimal
	CanCheckout bool
}

// NewCartPage derives the display totals for v at the given discount rate.
func NewCartPage(user string, v service.CartView, rate decimal.Decimal) CartPage {
	return CartPage{
		User:        user,
		View:        v,
		RatePercent: rate.Mul(decimal.NewFromInt(100)).String(),
		Discount:    v.Discount(rate),
		FinalTotal:  v.FinalTotal(rate),
		CanCheckout: v.CanCheckout(),
	}
}

type AdminPage struct {
	User          string
	View          service.AdminView
	DiscountCodes string
}

func NewAdminPage(user string, v service.AdminView) AdminPage {
	p := AdminPage{User: user, View: v}
	if v.Stats != nil {
		p.DiscountCodes = service.DiscountCodesLabel(v.Stats.DiscountCodes)
	}
	return p
}
