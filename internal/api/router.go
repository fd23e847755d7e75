package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/api/handlers"
	"github.com/Cheertaboi/storefront/internal/api/middleware"
	"github.com/Cheertaboi/storefront/internal/apiclient"
	"github.com/Cheertaboi/storefront/internal/cache"
	"github.com/Cheertaboi/storefront/internal/config"
	"github.com/Cheertaboi/storefront/internal/service"
	"github.com/Cheertaboi/storefront/internal/session"
	"github.com/Cheertaboi/storefront/internal/views"
)

// NewRouter builds the HTTP router for the storefront pages.
func NewRouter(cfg *config.Config, backend *apiclient.Storefront, sessions *session.Provider, logger *zap.Logger) (http.Handler, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	catalogHandler := handlers.NewCatalogHandler(service.NewCatalogService(backend, logger), renderer, logger)
	cartService := service.NewCartService(backend, cache.NewViewCache[service.CartView](cfg.SessionTTL), cfg.DiscountRate, logger)
	cartHandler := handlers.NewCartHandler(cartService, renderer, logger)
	adminHandler := handlers.NewAdminHandler(service.NewAdminService(backend, logger), renderer, logger)
	sessionHandler := handlers.NewSessionHandler(sessions, cartService, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessions, cfg.SessionCookie, logger))

		r.Get("/", catalogHandler.List)
		r.Post("/session", sessionHandler.Switch)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Show)
			r.Post("/items", catalogHandler.AddToCart)
			r.Post("/items/{itemID}/delete", cartHandler.RemoveItem)
			r.Post("/code", cartHandler.UpdateCode)
			r.Post("/checkout", cartHandler.Checkout)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/", adminHandler.Show)
			r.Post("/discount", adminHandler.GenerateDiscount)
			r.Post("/stats", adminHandler.FetchStats)
		})
	})

	return r, nil
}
