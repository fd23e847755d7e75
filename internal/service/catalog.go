// Package service holds the page logic of the storefront: what each page fetches, the state it
// derives, and how backend failures become display messages.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/models"
	"github.com/Cheertaboi/storefront/internal/session"
)

const catalogFetchError = "Failed to fetch products."

// Add-to-cart outcomes, carried across the post/redirect/get round trip.
const (
	NoticeAdded       = "added"
	NoticeAddFailed   = "add_failed"
	NoticeUserMissing = "no_user"
)

var noticeMessages = map[string]string{
	NoticeAdded:       "Item added to cart",
	NoticeAddFailed:   "Failed to add to cart",
	NoticeUserMissing: "User not found",
}

// NoticeMessage returns the text for a notice code, or "" for unknown codes.
func NoticeMessage(code string) string {
	return noticeMessages[code]
}

type CatalogAPI interface {
	ListItems(ctx context.Context) ([]models.Product, error)
	AddToCart(ctx context.Context, userID, itemID string, quantity int) error
}

type CatalogView struct {
	Products []models.Product
	Error    string
	Notice   string
}

type CatalogService struct {
	api    CatalogAPI
	logger *zap.Logger
}

func NewCatalogService(api CatalogAPI, logger *zap.Logger) *CatalogService {
	return &CatalogService{api: api, logger: logger}
}

// Load fetches the product list. Every failure maps to the same generic message.
func (s *CatalogService) Load(ctx context.Context) CatalogView {
	products, err := s.api.ListItems(ctx)
	if err != nil {
		s.logger.Warn("list items failed", zap.Error(err))
		return CatalogView{Error: catalogFetchError}
	}
	return CatalogView{Products: products}
}

// AddToCart adds one unit of itemID to the current user's cart and returns a notice code.
func (s *CatalogService) AddToCart(ctx context.Context, itemID string) string {
	userID, ok := session.CurrentUser(ctx)
	if !ok {
		return NoticeUserMissing
	}
	if err := s.api.AddToCart(ctx, userID, itemID, 1); err != nil {
		s.logger.Warn("add to cart failed",
			zap.String("user_id", userID),
			zap.String("item_id", itemID),
			zap.Error(err))
		return NoticeAddFailed
	}
	return NoticeAdded
}
