package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/service"
	"github.com/Cheertaboi/storefront/internal/session"
)

type SessionHandler struct {
	provider *session.Provider
	cart     *service.CartService
	logger   *zap.Logger
}

func NewSessionHandler(p *session.Provider, cart *service.CartService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{provider: p, cart: cart, logger: logger}
}

// Switch handles POST /session. The submitted user id is stored as-is and the previous
// user's cart view is dropped.
func (h *SessionHandler) Switch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid_form", http.StatusBadRequest)
		return
	}
	sid := session.IDFromContext(r.Context())
	userID := r.PostForm.Get("userId")
	if err := h.provider.SetCurrentUser(r.Context(), sid, userID); err != nil {
		h.logger.Error("set current user", zap.String("session_id", sid), zap.Error(err))
		http.Error(w, "could_not_switch_user", http.StatusInternalServerError)
		return
	}
	h.cart.Reset(sid)
	h.logger.Info("user switched", zap.String("session_id", sid), zap.String("user_id", userID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
