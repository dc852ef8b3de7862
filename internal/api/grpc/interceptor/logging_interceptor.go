package interceptor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"motorent-backoffice/internal/logger"
)

const requestIDKey = "x-request-id"

// Unary logs every unary RPC with its status code and latency. The caller's
// x-request-id is reused when present so log lines join up across services.
func Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.WithRequestID(ctx, requestID(ctx))
		start := time.Now()

		resp, err := handler(ctx, req)

		code := status.Code(err)
		args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
		if code == codes.OK {
			logger.DebugContext(ctx, "rpc served", args...)
		} else {
			logger.WarnContext(ctx, "rpc failed", append(args, "error", err)...)
		}
		return resp, err
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDKey); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}
