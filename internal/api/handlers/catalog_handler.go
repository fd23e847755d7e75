package handlers

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/service"
	"github.com/Cheertaboi/storefront/internal/session"
	"github.com/Cheertaboi/storefront/internal/views"
)

type CatalogHandler struct {
	service *service.CatalogService
	views   *views.Renderer
	logger  *zap.Logger
}

func NewCatalogHandler(svc *service.CatalogService, v *views.Renderer, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, views: v, logger: logger}
}

// List handles GET /
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := session.CurrentUser(r.Context())
	render(w, h.logger, h.views, views.PageCatalog, views.CatalogPage{
		User:   user,
		Notice: service.NoticeMessage(r.URL.Query().Get("notice")),
		View:   h.service.Load(r.Context()),
	})
}

// AddToCart handles POST /cart/items and redirects back to the catalog with the outcome.
func (h *CatalogHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid_form", http.StatusBadRequest)
		return
	}
	notice := h.service.AddToCart(r.Context(), r.PostForm.Get("itemId"))
	http.Redirect(w, r, "/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}
