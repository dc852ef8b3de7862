package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type listResponse[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps AppErrors onto their status and code. Anything else is
// logged and reported as a 500 without details.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if appErr, ok := domain.AsAppError(err); ok {
		writeJSON(w, appErr.HTTPStatus(), errorResponse{Code: appErr.Code, Message: appErr.Message})
		return
	}
	if errors.Is(err, context.Canceled) {
		logger.WarnContext(ctx, "request cancelled", "error", err)
	} else {
		logger.ErrorContext(ctx, "unhandled error", "error", err)
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Code:    domain.CodeInternal,
		Message: "an unexpected error occurred",
	})
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Validation(domain.CodeInvalidRequest, "request body is empty")
		}
		return domain.Validation(domain.CodeInvalidRequest, "malformed request body: %v", err)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be omitted.
func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return decodeJSON(r, dst)
}
