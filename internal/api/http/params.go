package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"motorent-backoffice/internal/domain"
)

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation(domain.CodeInvalidRequest, "invalid id")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validation(domain.CodeInvalidRequest, "%s must be an integer", name)
	}
	return v, nil
}

func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, domain.Validation(domain.CodeInvalidRequest, "%s must be a positive integer", name)
	}
	return v, nil
}

// queryTime parses an RFC 3339 timestamp, returning nil when absent.
func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.Validation(domain.CodeInvalidRequest, "%s must be an RFC 3339 timestamp", name)
	}
	return &t, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.Validation(domain.CodeInvalidRequest, "%s must be a boolean", name)
	}
	return v, nil
}

type pageParams struct {
	Page     int
	PageSize int
}

func pagination(r *http.Request) (pageParams, error) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return pageParams{}, err
	}
	size, err := queryInt(r, "page_size", domain.DefaultPageSize)
	if err != nil {
		return pageParams{}, err
	}
	if page < 1 {
		page = 1
	}
	size, _ = domain.NormalizePage(page, size)
	return pageParams{Page: page, PageSize: size}, nil
}
