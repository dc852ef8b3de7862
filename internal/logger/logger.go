// Package logger wraps log/slog with a process-wide logger whose handler
// enriches records with request and trace identifiers taken from the
// context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

var defaultLogger *slog.Logger

type ctxKey int

const (
	requestIDKey ctxKey = iota
	employeeIDKey
)

// Initialize sets up the global logger with the specified level and format
func Initialize(level, format string) {
	InitializeWriter(os.Stdout, level, format)
}

// InitializeWriter is Initialize with an explicit destination.
func InitializeWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(contextHandler{handler})
	slog.SetDefault(defaultLogger)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler adds request_id, employee_id, trace_id and span_id when
// the record is logged with a context that carries them.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
			r.AddAttrs(slog.String("request_id", id))
		}
		if id, ok := ctx.Value(employeeIDKey).(int64); ok && id != 0 {
			r.AddAttrs(slog.Int64("employee_id", id))
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			r.AddAttrs(
				slog.String("trace_id", sc.TraceID().String()),
				slog.String("span_id", sc.SpanID().String()),
			)
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// WithRequestID stores the request id for later log records.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithEmployeeID stores the authenticated employee for later log records.
func WithEmployeeID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, employeeIDKey, id)
}

// Get returns the default logger
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

func DebugContext(ctx context.Context, msg string, args ...any) {
	Get().DebugContext(ctx, msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}

// WithService returns a logger with service name attached
func WithService(serviceName string) *slog.Logger {
	return Get().With("service", serviceName)
}

// WithJob returns a logger tagged for a background job run
func WithJob(jobName string) *slog.Logger {
	return Get().With("job", jobName)
}

// DatabaseCall logs a database operation before it runs
func DatabaseCall(ctx context.Context, operation string, args ...any) {
	allArgs := append([]any{"operation", operation}, args...)
	Get().DebugContext(ctx, "database call", allArgs...)
}

// DatabaseResult logs the outcome of a database operation
func DatabaseResult(ctx context.Context, operation string, rowsAffected int64, err error) {
	if err != nil {
		Get().ErrorContext(ctx, "database call failed", "operation", operation, "error", err)
		return
	}
	Get().DebugContext(ctx, "database call succeeded", "operation", operation, "rows_affected", rowsAffected)
}

// ExternalServiceCall logs a call to a third-party service
func ExternalServiceCall(ctx context.Context, service, operation string, args ...any) {
	allArgs := append([]any{"external", service, "operation", operation}, args...)
	Get().DebugContext(ctx, "external service call", allArgs...)
}

// ExternalServiceResult logs the outcome of a third-party call
func ExternalServiceResult(ctx context.Context, service, operation string, err error) {
	if err != nil {
		Get().ErrorContext(ctx, "external service call failed", "external", service, "operation", operation, "error", err)
		return
	}
	Get().DebugContext(ctx, "external service call succeeded", "external", service, "operation", operation)
}
