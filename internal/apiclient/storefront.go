package apiclient

import (
	"context"
	"net/url"

	"github.com/Cheertaboi/storefront/internal/models"
)

// Storefront exposes the backend endpoints the storefront pages consume.
type Storefront struct {
	c *Client
}

func NewStorefront(c *Client) *Storefront {
	return &Storefront{c: c}
}

// ListItems handles GET /items.
func (s *Storefront) ListItems(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := s.c.Get(ctx, "/items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetCart handles GET /cart/{userId}.
func (s *Storefront) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	var resp models.CartResponse
	if err := s.c.Get(ctx, "/cart/"+url.PathEscape(userID), &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

// GetDiscountCodes handles GET /cart/discount/{userId}.
func (s *Storefront) GetDiscountCodes(ctx context.Context, userID string) ([]string, error) {
	var resp models.DiscountCodesResponse
	if err := s.c.Get(ctx, "/cart/discount/"+url.PathEscape(userID), &resp); err != nil {
		return nil, err
	}
	return resp.AvailableDiscountCodes, nil
}

// AddToCart handles POST /cart/{userId}. The response body is ignored.
func (s *Storefront) AddToCart(ctx context.Context, userID, itemID string, quantity int) error {
	req := models.AddToCartRequest{ItemID: itemID, Quantity: quantity}
	return s.c.Post(ctx, "/cart/"+url.PathEscape(userID), req, nil)
}

// RemoveFromCart handles DELETE /cart/{userId}/{itemId}.
func (s *Storefront) RemoveFromCart(ctx context.Context, userID, itemID string) error {
	return s.c.Delete(ctx, "/cart/"+url.PathEscape(userID)+"/"+url.PathEscape(itemID), nil)
}

// Checkout handles POST /checkout/{userId}. An empty code is omitted from the body.
func (s *Storefront) Checkout(ctx context.Context, userID, discountCode string) (models.CheckoutResponse, error) {
	var resp models.CheckoutResponse
	req := models.CheckoutRequest{DiscountCode: discountCode}
	if err := s.c.Post(ctx, "/checkout/"+url.PathEscape(userID), req, &resp); err != nil {
		return models.CheckoutResponse{}, err
	}
	return resp, nil
}

// GenerateDiscount handles GET /admin/discount/{userId}.
func (s *Storefront) GenerateDiscount(ctx context.Context, userID string) (models.GenerateDiscountResponse, error) {
	var resp models.GenerateDiscountResponse
	if err := s.c.Get(ctx, "/admin/discount/"+url.PathEscape(userID), &resp); err != nil {
		return models.GenerateDiscountResponse{}, err
	}
	return resp, nil
}

// GetStats handles GET /admin/stats/{userId}.
func (s *Storefront) GetStats(ctx context.Context, userID string) (models.Stats, error) {
	var resp models.Stats
	if err := s.c.Get(ctx, "/admin/stats/"+url.PathEscape(userID), &resp); err != nil {
		return models.Stats{}, err
	}
	return resp, nil
}
