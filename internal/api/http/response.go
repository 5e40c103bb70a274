package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/logger"
)

const maxBodyBytes = 1 << 20

// envelope is the response body: {"success": bool, "message": string, <entity>: T}.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeOK writes a success envelope carrying value under key.
func writeOK(w http.ResponseWriter, status int, key string, value any, message string) {
	body := envelope{"success": true}
	if key != "" {
		body[key] = value
	}
	if message != "" {
		body["message"] = message
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(apperror.KindOf(err))
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, envelope{"success": false, "message": apperror.Message(err)})
}

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return apperror.Validation("invalid request body: %v", err)
	}
	return nil
}
