package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skyfare/flight-booking/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Retryable exhaustion is
// reported distinctly from business errors so clients know whether retrying
// makes sense.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientInventory),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrAlreadyConfirmed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrLockUnavailable),
		errors.Is(err, domain.ErrConcurrencyExhausted):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "service temporarily unavailable, please retry"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
