package http

import (
	"context"
	"time"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

type motorbikeResponse struct {
	domain.Motorbike
	ImageURL string `json:"image_url,omitempty"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Employee  *domain.Employee `json:"employee"`
}

func toLoginResponse(res *service.LoginResult) loginResponse {
	return loginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, Employee: res.Employee}
}

func (s *Server) toMotorbikeResponse(ctx context.Context, m *domain.Motorbike) motorbikeResponse {
	return motorbikeResponse{Motorbike: *m, ImageURL: s.services.Motorbikes.ImageURL(ctx, m.ImageKey)}
}

func (s *Server) toMotorbikeResponses(ctx context.Context, bikes []domain.Motorbike) []motorbikeResponse {
	out := make([]motorbikeResponse, len(bikes))
	for i := range bikes {
		out[i] = s.toMotorbikeResponse(ctx, &bikes[i])
	}
	return out
}

func newList[T any](items []T, total int, p pageParams) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize}
}
