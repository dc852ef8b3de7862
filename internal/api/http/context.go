package http

import (
	"context"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/security"
)

type claimsKey struct{}

func withClaims(ctx context.Context, claims *security.EmployeeClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// claimsFromContext returns the authenticated employee. Routes behind the
// auth middleware always have one.
func claimsFromContext(ctx context.Context) (*security.EmployeeClaims, error) {
	claims, ok := ctx.Value(claimsKey{}).(*security.EmployeeClaims)
	if !ok || claims == nil {
		return nil, domain.Unauthorized(domain.CodeInvalidToken, "authentication required")
	}
	return claims, nil
}
