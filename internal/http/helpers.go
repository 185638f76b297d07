package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"expensevis/internal/core"
	"expensevis/internal/importer"
	"expensevis/internal/log"
	"expensevis/internal/middleware/trace"
)

type contextKey string

const usernameKey contextKey = "username"

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Row   int    `json:"row,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed",
			log.FieldRequestID, trace.GetRequestID(r.Context()),
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, status,
			log.FieldError, msg,
			log.FieldComponent, log.ComponentHTTP)
	}
	writeJSON(w, status, errorBody{Error: msg})
}

// writeDomainError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Error(), Field: verr.Field, Row: verr.Row})
	case errors.Is(err, importer.ErrDuplicateImport):
		writeError(w, r, http.StatusConflict, "this file was already imported")
	case errors.Is(err, core.ErrUserExists):
		writeError(w, r, http.StatusConflict, "username already taken")
	case errors.Is(err, core.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, core.ErrBudgetNotSet):
		writeError(w, r, http.StatusPreconditionFailed, "set a monthly budget before adding expenses")
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrInvalidAmount):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, core.ErrUnknownCurrency):
		writeError(w, r, http.StatusBadRequest, "unsupported currency")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// requireAuth validates the bearer token and stashes the username in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, r, http.StatusUnauthorized, "missing bearer token")
			return
		}
		username, err := s.auth.Verify(token)
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), usernameKey, username)
		next(w, r.WithContext(ctx))
	}
}

func requestUsername(r *http.Request) string {
	if v, ok := r.Context().Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

// requestAccount is the sanitized storage key for the authenticated user.
func requestAccount(r *http.Request) string {
	return core.SanitizeAccountKey(requestUsername(r))
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
