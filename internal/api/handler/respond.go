package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ricirt/api-stub/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", domain.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// mapError translates domain sentinel errors to HTTP status codes.
// All mapping lives here so individual handlers stay concise.
func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrMethodNotAllowed):
		respondError(w, http.StatusMethodNotAllowed, err.Error())
	case errors.Is(err, domain.ErrNotAcceptable):
		respondError(w, http.StatusNotAcceptable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// NotFound is the JSON fallback for unknown routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	mapError(w, domain.ErrNotFound)
}

// MethodNotAllowed is the JSON fallback for known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	mapError(w, domain.ErrMethodNotAllowed)
}
