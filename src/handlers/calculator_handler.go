package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/ibportal/src/models"
	"github.com/username/ibportal/src/services"
	"github.com/username/ibportal/src/utils"
)

type CalculatorHandler struct {
	calculator services.CalculatorService
}

func NewCalculatorHandler(calculator services.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator}
}

type quoteRequest struct {
	AccountTypeID string  `json:"accountTypeId"`
	Lots          float64 `json:"lots"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// HandleQuote computes commissions for one account type without a session.
func (h *CalculatorHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	quote, err := h.calculator.Quote(r.Context(), req.AccountTypeID, req.Lots)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, quote)
}

func (h *CalculatorHandler) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.calculator.OpenSession(r.Context())
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/calculator/sessions/"+session.ID)
	utils.WriteJSON(w, http.StatusCreated, session)
}

func (h *CalculatorHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.calculator.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, session)
}

func (h *CalculatorHandler) HandleUpdateInputs(w http.ResponseWriter, r *http.Request) {
	var inputs models.CalculatorInputs
	if !decodeJSONBody(w, r, &inputs) {
		return
	}

	session, err := h.calculator.UpdateInputs(chi.URLParam(r, "id"), inputs)
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, session)
}

func (h *CalculatorHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	session, err := h.calculator.Calculate(chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, session)
}

func (h *CalculatorHandler) HandleBack(w http.ResponseWriter, r *http.Request) {
	session, err := h.calculator.Back(chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, session)
}

func (h *CalculatorHandler) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.calculator.CloseSession(chi.URLParam(r, "id")); err != nil {
		sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
