package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rsheldon/staffdesk/internal/application"
)

// TokenHeader is the request header carrying the session token on protected
// routes. The original portal client sends the raw token here rather than an
// Authorization: Bearer scheme, and the embedded client keeps that contract.
const TokenHeader = "x-auth-token"

// contextKey is a private type for request context values set by middleware.
type contextKey int

const callerKey contextKey = iota

// CallerFromContext returns the authenticated caller identity injected by
// requireAuth. ok is false on routes that never passed through the middleware.
func CallerFromContext(ctx context.Context) (application.TokenUser, bool) {
	caller, ok := ctx.Value(callerKey).(application.TokenUser)
	return caller, ok
}

// requireAuth gates a handler behind session token verification. A missing
// token and a failed verification short-circuit with distinct 401 messages;
// on success the caller identity is placed in the request context.
func requireAuth(tokens *application.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, claims.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the embedded writer.
func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// recoveryMiddleware recovers from panics in HTTP handlers, logs the error,
// and returns a 500 response.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic recovered",
					"panic", v,
					"path", r.URL.Path,
				)
				writeServerError(w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
