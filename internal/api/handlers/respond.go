package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"content-api/internal/pkg/apperrors"
	"content-api/internal/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondWithError maps the error taxonomy onto HTTP status codes. Unknown
// errors collapse into a generic 500 so internals never leak to callers.
func respondWithError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondWithJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, services.ErrInvalidToken):
		respondWithJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, apperrors.ErrDailyLimitExceeded):
		respondWithJSON(w, http.StatusTooManyRequests, errorResponse{Error: "daily generation limit exceeded"})
	case errors.Is(err, apperrors.ErrMonthlyLimitExceeded):
		respondWithJSON(w, http.StatusTooManyRequests, errorResponse{Error: "monthly generation limit exceeded"})
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		respondWithJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "generation provider unavailable"})
	case errors.Is(err, apperrors.ErrProviderTimeout):
		respondWithJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "generation provider timed out"})
	case errors.Is(err, apperrors.ErrProviderError):
		respondWithJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to generate content"})
	case errors.Is(err, apperrors.ErrNotFound):
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, apperrors.ErrAlreadyExists):
		respondWithJSON(w, http.StatusConflict, errorResponse{Error: "already exists"})
	default:
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
