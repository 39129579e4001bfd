package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/utils"
)

// requestID reuses the caller's x-request-id metadata when present
func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get("x-request-id"); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return utils.GenerateRequestID()
}

func logCompletion(logger logging.Logger, kind, requestID, method string, start time.Time, err error) {
	fields := map[string]interface{}{
		"request_id":  requestID,
		"method":      method,
		"duration_ms": time.Since(start).Milliseconds(),
		"status_code": status.Code(err).String(),
		"type":        "grpc_" + kind + "_complete",
	}

	if err != nil {
		fields["error"] = err.Error()
		logger.Error("gRPC "+kind+" failed", fields)
		return
	}
	logger.Info("gRPC "+kind+" completed", fields)
}

// LoggingInterceptor returns a gRPC unary interceptor that logs requests and responses
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		logger := logging.GetGlobalLogger().WithField("component", "grpc")
		id := requestID(ctx)

		logger.Debug("gRPC request started", map[string]interface{}{
			"request_id": id,
			"method":     info.FullMethod,
		})

		resp, err := handler(ctx, req)
		logCompletion(logger, "request", id, info.FullMethod, start, err)
		return resp, err
	}
}

// StreamLoggingInterceptor returns a gRPC streaming interceptor that logs stream operations
func StreamLoggingInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		start := time.Now()
		logger := logging.GetGlobalLogger().WithField("component", "grpc")
		id := requestID(ss.Context())

		logger.Debug("gRPC stream started", map[string]interface{}{
			"request_id": id,
			"method":     info.FullMethod,
		})

		err := handler(srv, ss)
		logCompletion(logger, "stream", id, info.FullMethod, start, err)
		return err
	}
}
