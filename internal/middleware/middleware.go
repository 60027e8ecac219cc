// Package middleware holds the HTTP middleware shared by the API and
// webhook routes.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/storefront/internal/domain"
)

type contextKey string

// respondWithError writes a middleware-level error. It mirrors
// handler.ErrorResponse without importing the handler package, which
// depends on this one for identity accessors.
func respondWithError(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)

	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}
	logger := GetLogger(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("middleware error", attrs...)
	} else {
		logger.Info("middleware error", attrs...)
	}

	if !wantsJSON(r) {
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	respondWithError(w, r, http.StatusUnauthorized, domain.Unauthorized("middleware.identity", message))
}

func respondForbidden(w http.ResponseWriter, r *http.Request, message string) {
	respondWithError(w, r, http.StatusForbidden, domain.Errorf(domain.EFORBIDDEN, "middleware.role", "%s", message))
}

func respondTooManyRequests(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.ERATELIMIT, "middleware.rate_limit", "Too many requests")
	respondWithError(w, r, http.StatusTooManyRequests, err)
}

func respondTooLarge(w http.ResponseWriter, r *http.Request) {
	err := domain.Errorf(domain.EINVALID, "middleware.max_body", "Request body too large")
	respondWithError(w, r, http.StatusRequestEntityTooLarge, err)
}

func respondInternalError(w http.ResponseWriter, r *http.Request, err error) {
	respondWithError(w, r, http.StatusInternalServerError, domain.Internal(err, "middleware", "An unexpected error occurred"))
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
