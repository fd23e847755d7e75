package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/views"
)

func render(w http.ResponseWriter, logger *zap.Logger, v *views.Renderer, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.Render(w, page, data); err != nil {
		logger.Error("render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal_error", http.StatusInternalServerError)
	}
}
