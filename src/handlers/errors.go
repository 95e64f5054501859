package handlers

import (
	"errors"
	"net/http"

	"github.com/username/ibportal/src/logger"
	"github.com/username/ibportal/src/services"
	"github.com/username/ibportal/src/utils"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("Unexpected service error", "path", r.URL.Path, "error", err)
		utils.SendJSONError(w, "internal server error", status)
		return
	}
	utils.SendJSONError(w, err.Error(), status)
}
