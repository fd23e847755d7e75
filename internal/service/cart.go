package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/apiclient"
	"github.com/Cheertaboi/storefront/internal/cache"
	"github.com/Cheertaboi/storefront/internal/concurrency"
	"github.com/Cheertaboi/storefront/internal/models"
	"github.com/Cheertaboi/storefront/internal/session"
)

const (
	cartLoadError      = "Failed to load cart"
	codesLoadError     = "Failed to fetch discount codes"
	removeItemError    = "Failed to remove item"
	checkoutError      = "Failed to checkout"
	checkoutBlocked    = "Checkout is not available for this cart"
	userMissingMessage = "User not found"
)

type CartAPI interface {
	GetCart(ctx context.Context, userID string) ([]models.CartItem, error)
	GetDiscountCodes(ctx context.Context, userID string) ([]string, error)
	RemoveFromCart(ctx context.Context, userID, itemID string) error
	Checkout(ctx context.Context, userID, discountCode string) (models.CheckoutResponse, error)
}

// CartView is the state of the cart page for one session. It is replaced wholesale on every
// page load and updated in place by the page's actions.
type CartView struct {
	// UserID is the user the view was loaded for.
	UserID         string
	Items          []models.CartItem
	Subtotal       decimal.Decimal
	AvailableCodes []string
	DiscountCode   string
	CodeValid      bool

	// Message and DiscountInfo describe the last successful checkout.
	Message      string
	DiscountInfo *models.DiscountInfo
	Error        string
}

func (v *CartView) setItems(items []models.CartItem) {
	v.Items = items
	v.Subtotal = Subtotal(items)
}

// SetDiscountCode updates the code field and recomputes its validity.
func (v *CartView) SetDiscountCode(code string) {
	v.DiscountCode = code
	v.revalidate()
}

func (v *CartView) setAvailableCodes(codes []string) {
	v.AvailableCodes = codes
	v.revalidate()
}

func (v *CartView) revalidate() {
	v.CodeValid = CodeValid(v.DiscountCode, v.AvailableCodes)
}

// CanCheckout reports whether the checkout action is enabled.
func (v CartView) CanCheckout() bool {
	return CheckoutAllowed(v.Items, v.DiscountCode, v.CodeValid)
}

// Discount is the displayed discount for the current code at rate.
func (v CartView) Discount(rate decimal.Decimal) decimal.Decimal {
	return DiscountAmount(v.Subtotal, rate, v.CodeValid)
}

// FinalTotal is the subtotal less the displayed discount.
func (v CartView) FinalTotal(rate decimal.Decimal) decimal.Decimal {
	return v.Subtotal.Sub(v.Discount(rate))
}

type CartService struct {
	api    CartAPI
	views  *cache.ViewCache[CartView]
	rate   decimal.Decimal
	logger *zap.Logger
}

func NewCartService(api CartAPI, views *cache.ViewCache[CartView], rate decimal.Decimal, logger *zap.Logger) *CartService {
	return &CartService{api: api, views: views, rate: rate, logger: logger}
}

// Rate is the display discount rate.
func (s *CartService) Rate() decimal.Decimal { return s.rate }

// Load fetches the cart and the available discount codes concurrently and replaces the
// session's view. The first available code pre-fills the code field.
func (s *CartService) Load(ctx context.Context) CartView {
	userID, ok := session.CurrentUser(ctx)
	if !ok {
		return CartView{Error: userMissingMessage}
	}

	var (
		items    []models.CartItem
		cartErr  error
		codes    []string
		codesErr error
	)
	concurrency.Run(ctx,
		func(ctx context.Context) { items, cartErr = s.api.GetCart(ctx, userID) },
		func(ctx context.Context) { codes, codesErr = s.api.GetDiscountCodes(ctx, userID) },
	)

	v := CartView{UserID: userID}
	if cartErr != nil {
		s.logger.Warn("get cart failed", zap.String("user_id", userID), zap.Error(cartErr))
		v.Error = apiclient.Describe(cartErr, cartLoadError)
	} else {
		v.setItems(items)
	}
	if codesErr != nil {
		s.logger.Warn("get discount codes failed", zap.String("user_id", userID), zap.Error(codesErr))
		if v.Error == "" {
			v.Error = apiclient.Describe(codesErr, codesLoadError)
		}
	} else if len(codes) > 0 {
		v.setAvailableCodes(codes)
		v.SetDiscountCode(codes[0])
	}

	s.save(ctx, v)
	return v
}

// UpdateDiscountCode changes the code field without contacting the backend.
func (s *CartService) UpdateDiscountCode(ctx context.Context, code string) CartView {
	v := s.current(ctx)
	v.SetDiscountCode(code)
	s.save(ctx, v)
	return v
}

// RemoveItem deletes itemID and, only if that succeeds, refetches the cart. A failed delete
// leaves the held cart untouched and reports the error.
func (s *CartService) RemoveItem(ctx context.Context, itemID string) CartView {
	v := s.current(ctx)
	userID, ok := session.CurrentUser(ctx)
	if !ok {
		v.Error = userMissingMessage
		return v
	}

	if err := s.api.RemoveFromCart(ctx, userID, itemID); err != nil {
		s.logger.Warn("remove item failed",
			zap.String("user_id", userID),
			zap.String("item_id", itemID),
			zap.Error(err))
		v.Error = apiclient.Describe(err, removeItemError)
		s.save(ctx, v)
		return v
	}

	items, err := s.api.GetCart(ctx, userID)
	if err != nil {
		s.logger.Warn("refetch cart failed", zap.String("user_id", userID), zap.Error(err))
		v.Error = apiclient.Describe(err, cartLoadError)
	} else {
		v.setItems(items)
		v.Error = ""
	}
	s.save(ctx, v)
	return v
}

// Checkout submits the cart with code. When the action is disabled nothing is sent.
// On success the local cart is cleared without refetching.
func (s *CartService) Checkout(ctx context.Context, code string) CartView {
	v := s.current(ctx)
	v.SetDiscountCode(code)
	userID, ok := session.CurrentUser(ctx)
	if !ok {
		v.Error = userMissingMessage
		return v
	}
	if !v.CanCheckout() {
		v.Error = checkoutBlocked
		s.save(ctx, v)
		return v
	}

	resp, err := s.api.Checkout(ctx, userID, v.DiscountCode)
	if err != nil {
		s.logger.Warn("checkout failed", zap.String("user_id", userID), zap.Error(err))
		v.Error = apiclient.Describe(err, checkoutError)
		s.save(ctx, v)
		return v
	}

	s.logger.Info("checkout completed",
		zap.String("user_id", userID),
		zap.Bool("discount_applied", resp.DiscountApplied),
		zap.String("discount_amount", resp.DiscountAmount.StringFixed(2)))

	v = CartView{
		UserID:       userID,
		Message:      resp.Message,
		DiscountInfo: &models.DiscountInfo{Applied: resp.DiscountApplied, Amount: resp.DiscountAmount},
	}
	v.setItems(nil)
	s.save(ctx, v)
	return v
}

// Reset drops the held view for sessionID.
func (s *CartService) Reset(sessionID string) {
	s.views.Delete(sessionID)
}

// current returns the held view for the session, loading it first if there is none or it
// belongs to a different user.
func (s *CartService) current(ctx context.Context) CartView {
	userID, _ := session.CurrentUser(ctx)
	if v, ok := s.views.Get(session.IDFromContext(ctx)); ok && v.UserID == userID {
		return v
	}
	return s.Load(ctx)
}

func (s *CartService) save(ctx context.Context, v CartView) {
	s.views.Set(session.IDFromContext(ctx), v)
}
