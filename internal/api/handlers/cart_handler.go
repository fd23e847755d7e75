package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/service"
	"github.com/Cheertaboi/storefront/internal/session"
	"github.com/Cheertaboi/storefront/internal/views"
)

type CartHandler struct {
	service *service.CartService
	views   *views.Renderer
	logger  *zap.Logger
}

func NewCartHandler(svc *service.CartService, v *views.Renderer, logger *zap.Logger) *CartHandler {
	return &CartHandler{service: svc, views: v, logger: logger}
}

func (h *CartHandler) page(w http.ResponseWriter, r *http.Request, v service.CartView) {
	user, _ := session.CurrentUser(r.Context())
	render(w, h.logger, h.views, views.PageCart, views.NewCartPage(user, v, h.service.Rate()))
}

// Show handles GET /cart
func (h *CartHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, h.service.Load(r.Context()))
}

// UpdateCode handles POST /cart/code
func (h *CartHandler) UpdateCode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid_form", http.StatusBadRequest)
		return
	}
	h.page(w, r, h.service.UpdateDiscountCode(r.Context(), r.PostForm.Get("discountCode")))
}

// Checkout handles POST /cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid_form", http.StatusBadRequest)
		return
	}
	h.page(w, r, h.service.Checkout(r.Context(), r.PostForm.Get("discountCode")))
}

// RemoveItem handles POST /cart/items/{itemID}/delete
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	// chi matches on RawPath when the request has one, so only then is the param still escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(itemID); err == nil {
			itemID = unescaped
		}
	}
	h.page(w, r, h.service.RemoveItem(r.Context(), itemID))
}
