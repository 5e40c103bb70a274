package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"rentease-backend/internal/apperror"
	"rentease-backend/internal/config"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/security"
)

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Handler authenticates and authorizes requests by the matched route's name.
func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule := config.GetEndpointRule(routeName(r))

		// Public endpoint - skip auth
		if rule.Level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractToken(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		id, err := a.tokenManager.Resolve(token)
		if err != nil {
			writeError(w, r, apperror.Unauthenticated("invalid token: %v", err))
			return
		}

		if !rule.Allows(id.Role) {
			writeError(w, r, apperror.Forbidden("role %s may not call this endpoint", id.Role))
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

func extractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperror.Unauthenticated("authorization token is not provided")
	}
	// Remove Bearer prefix if present
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", apperror.Unauthenticated("authorization token is not provided")
	}
	return token, nil
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// observe logs every request and records it in m.
func observe(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			name := routeName(r)
			elapsed := time.Since(start)
			m.ObserveHTTPRequest(name, r.Method, rec.status, elapsed)
			logger.Debug("HTTP request", "route", name, "method", r.Method, "path", r.URL.Path,
				"status", rec.status, "duration_ms", elapsed.Milliseconds())
		})
	}
}

// recoverPanics turns a handler panic into a 500 response.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("Handler panicked", "path", r.URL.Path, "panic", p)
				writeJSON(w, http.StatusInternalServerError, envelope{"success": false, "message": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
