package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecarthub/marketcore/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// errStatus maps the core error taxonomy to HTTP statuses. The core never
// decides user-facing codes itself.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// shopperID reads the trusted identity header set by the auth collaborator.
func shopperID(r *http.Request) string {
	return r.Header.Get("X-Shopper-ID")
}

func sellerID(r *http.Request) string {
	return r.Header.Get("X-Seller-ID")
}
