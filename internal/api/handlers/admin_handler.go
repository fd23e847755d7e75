package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/service"
	"github.com/Cheertaboi/storefront/internal/session"
	"github.com/Cheertaboi/storefront/internal/views"
)

type AdminHandler struct {
	service *service.AdminService
	views   *views.Renderer
	logger  *zap.Logger
}

func NewAdminHandler(svc *service.AdminService, v *views.Renderer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: svc, views: v, logger: logger}
}

func (h *AdminHandler) page(w http.ResponseWriter, r *http.Request, v service.AdminView) {
	user, _ := session.CurrentUser(r.Context())
	render(w, h.logger, h.views, views.PageAdmin, views.NewAdminPage(user, v))
}

// Show handles GET /admin
func (h *AdminHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, service.AdminView{})
}

// GenerateDiscount handles POST /admin/discount
func (h *AdminHandler) GenerateDiscount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid_form", http.StatusBadRequest)
		return
	}
	h.page(w, r, h.service.GenerateDiscount(r.Context(), r.PostForm.Get("userId")))
}

// FetchStats handles POST /admin/stats
func (h *AdminHandler) FetchStats(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid_form", http.StatusBadRequest)
		return
	}
	h.page(w, r, h.service.FetchStats(r.Context(), r.PostForm.Get("userId")))
}
