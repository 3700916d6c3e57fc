// internal/handler/common.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/repository"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool                   `json:"success"`
	Data       interface{}            `json:"data,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Count      *int                   `json:"count,omitempty"`
	Pagination *repository.Pagination `json:"pagination,omitempty"`
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// respondWithData sends a success envelope
func respondWithData(w http.ResponseWriter, code int, data interface{}) {
	respondWithJSON(w, code, Response{Success: true, Data: data})
}

// respondWithError sends an error envelope with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, Response{Success: false, Error: message})
}

// respondWithList sends a success envelope carrying listing results
func respondWithList[T any](w http.ResponseWriter, result *repository.ListResult[T]) {
	count := result.Count
	pagination := result.Pagination
	respondWithJSON(w, http.StatusOK, Response{
		Success:    true,
		Data:       result.Items,
		Count:      &count,
		Pagination: &pagination,
	})
}

// respondWithDomainError maps a service error onto the status taxonomy.
// Business-rule violations surface with their safe message; anything
// unexpected is logged and reported as a generic failure.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicateKey),
		errors.Is(err, domain.ErrInvalidResetToken):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "You are not authorized to access this route")
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrAdminNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyMember):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
