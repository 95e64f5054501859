package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/username/ibportal/src/logger"
	"github.com/username/ibportal/src/utils"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	AllowedOrigins []string
	Limiter        *rate.Limiter
}

// NewRouter wires every API route.
func NewRouter(catalogHandler *CatalogHandler, calculatorHandler *CalculatorHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(cfg.AllowedOrigins))
	if cfg.Limiter != nil {
		r.Use(RateLimitMiddleware(cfg.Limiter))
	}

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/calculator", func(r chi.Router) {
		r.Get("/catalog", catalogHandler.HandleGetCatalog)
		r.Post("/catalog/refresh", catalogHandler.HandleRefreshCatalog)
		r.Get("/instruments", catalogHandler.HandleSearchInstruments)

		r.Post("/sessions", calculatorHandler.HandleOpenSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", calculatorHandler.HandleGetSession)
			r.Delete("/", calculatorHandler.HandleCloseSession)
			r.Put("/inputs", calculatorHandler.HandleUpdateInputs)
			r.Post("/calculate", calculatorHandler.HandleCalculate)
			r.Post("/back", calculatorHandler.HandleBack)
		})
	})

	r.Post("/api/commissions/calculate", calculatorHandler.HandleQuote)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.L.Warn("Path not found", "method", r.Method, "path", r.URL.Path)
		utils.SendJSONError(w, "not found", http.StatusNotFound)
	})
	return r
}
