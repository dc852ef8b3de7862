// Package grpc serves the gRPC health and reflection endpoints used by
// load balancers and grpcurl.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"motorent-backoffice/internal/api/grpc/interceptor"
	"motorent-backoffice/internal/logger"
)

// ServiceName is the health service name reported alongside the overall
// ("") status.
const ServiceName = "motorent.backoffice"

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server wraps a grpc.Server whose health status follows the database.
type Server struct {
	*grpc.Server
	health *health.Server
	db     Pinger
}

func NewServer(db Pinger) *Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptor.Unary()))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)

	srv := &Server{Server: s, health: hs, db: db}
	srv.setServing(false)
	return srv
}

// Check pings the database once and publishes the result.
func (s *Server) Check(ctx context.Context) bool {
	ok := true
	if s.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(pingCtx); err != nil {
			logger.WarnContext(ctx, "health check failed", "error", err)
			ok = false
		}
	}
	s.setServing(ok)
	return ok
}

// Monitor re-runs Check every interval until ctx is done, then marks the
// server as not serving.
func (s *Server) Monitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

func (s *Server) setServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}
