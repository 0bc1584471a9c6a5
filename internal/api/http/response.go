package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carpool-backend/internal/domain"
	"carpool-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps the core's error taxonomy to HTTP statuses. Every
// rejected transition surfaces its own kind so clients can render a
// specific message.
func writeDomainError(w http.ResponseWriter, err error) {
	var status int
	var kind string
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrPermission):
		status, kind = http.StatusForbidden, "permission"
	case errors.Is(err, domain.ErrState):
		status, kind = http.StatusConflict, "state"
	case errors.Is(err, domain.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrCapacity):
		status, kind = http.StatusConflict, "capacity"
	case errors.Is(err, domain.ErrEligibility):
		status, kind = http.StatusUnprocessableEntity, "eligibility"
	case errors.Is(err, domain.ErrSelfRating):
		status, kind = http.StatusUnprocessableEntity, "self_rating"
	case errors.Is(err, domain.ErrDuplicateRating):
		status, kind = http.StatusConflict, "duplicate_rating"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, kind = http.StatusUnauthorized, "credentials"
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}
