package handlers

import (
	"net/http"

	"github.com/username/ibportal/src/logger"
	"github.com/username/ibportal/src/services"
	"github.com/username/ibportal/src/utils"
)

type CatalogHandler struct {
	catalogs   services.CatalogProvider
	calculator services.CalculatorService
}

func NewCatalogHandler(catalogs services.CatalogProvider, calculator services.CalculatorService) *CatalogHandler {
	return &CatalogHandler{
		catalogs:   catalogs,
		calculator: calculator,
	}
}

func (h *CatalogHandler) HandleGetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalogs.GetCatalog(r.Context())
	if err != nil {
		sendServiceError(w, r, err)
		return
	}

	etag, err := utils.GenerateETag(catalog)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to generate catalog ETag", "error", err)
	} else {
		if utils.ETagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"`+etag+`"`)
	}
	w.Header().Set("Cache-Control", "no-cache")
	utils.WriteJSON(w, http.StatusOK, catalog)
}

func (h *CatalogHandler) HandleRefreshCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalogs.Refresh(r.Context())
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("Calculator catalog refreshed on request")
	utils.WriteJSON(w, http.StatusOK, catalog)
}

func (h *CatalogHandler) HandleSearchInstruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.calculator.SearchInstruments(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, instruments)
}
