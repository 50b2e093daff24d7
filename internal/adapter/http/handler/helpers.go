package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/adapter/http/middleware"
	"github.com/iho/finfolio/internal/domain"
)

// UserIDHeader identifies the acting user when token auth is disabled.
const UserIDHeader = "X-User-ID"

// requestUserID resolves the acting user. With auth enabled the
// middleware has placed the verified user in the context; without it
// callers identify themselves with the X-User-ID header.
func requestUserID(r *http.Request) string {
	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		return user.ID
	}
	return r.Header.Get(UserIDHeader)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrPortfolioNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrAssetExists),
		errors.Is(err, domain.ErrCategoryExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooWeak),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrMissingFromLeg),
		errors.Is(err, domain.ErrMissingToLeg),
		errors.Is(err, domain.ErrUnexpectedFromLeg),
		errors.Is(err, domain.ErrUnexpectedToLeg),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidWeight):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseDay parses a calendar-day query parameter. Both 2006-01-02 and
// 2006/01/02 are accepted; the slash form matches the CLI quick-entry
// flow.
func parseDay(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse("2006/01/02", value)
}
