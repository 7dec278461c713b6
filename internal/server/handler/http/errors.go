package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/GophCards/internal/service"
)

// writeError maps a service error onto its HTTP status.
func writeError(w http.ResponseWriter, err error) {
	var storeErr *service.StoreError
	switch {
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "card not found", http.StatusNotFound)
	case errors.As(err, &storeErr):
		http.Error(w, storeErr.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
