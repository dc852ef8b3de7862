package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeError(r.Context(), w, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// tracing starts a server span per request, continuing any incoming trace.
func (s *Server) tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("motorent-backoffice/http")
	propagator := otel.GetTextMapPropagator()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		path := routeTemplate(r)
		ctx, span := tracer.Start(ctx, r.Method+" "+path)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", path),
		)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		if rec.status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
	})
}

// observe logs every request and feeds the HTTP metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := routeTemplate(r)
		elapsed := time.Since(start)
		s.metrics.ObserveRequest(r.Method, path, rec.status, elapsed.Seconds())

		args := []any{"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", elapsed}
		switch {
		case rec.status >= 500:
			logger.ErrorContext(r.Context(), "request failed", args...)
		case rec.status >= 400:
			logger.WarnContext(r.Context(), "request rejected", args...)
		default:
			logger.InfoContext(r.Context(), "request served", args...)
		}
	})
}

// authorize guards a route with the policy for op: a valid bearer token and
// a role the policy allows. Public operations pass straight through.
func (s *Server) authorize(op config.Operation, next http.HandlerFunc) http.HandlerFunc {
	if config.IsPublic(op) {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
			writeError(r.Context(), w, domain.Unauthorized(domain.CodeInvalidToken, "missing or invalid Authorization header"))
			return
		}

		claims, err := s.tokens.ValidateToken(strings.TrimSpace(header[7:]))
		if err != nil {
			writeError(r.Context(), w, domain.Unauthorized(domain.CodeInvalidToken, "invalid or expired token"))
			return
		}
		if !config.Allowed(op, claims.Role) {
			writeError(r.Context(), w, domain.Forbidden(domain.CodePermissionDenied, "role %s may not perform %s", claims.Role, op))
			return
		}

		ctx := withClaims(r.Context(), claims)
		ctx = logger.WithEmployeeID(ctx, claims.EmployeeID)
		next(w, r.WithContext(ctx))
	}
}
