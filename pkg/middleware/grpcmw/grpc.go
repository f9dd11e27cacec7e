package grpcmw

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	logger "github.com/shuliangfu/logger"
)

// UnaryServerInterceptor logs one entry per unary call: info on success,
// error on failure, with the gRPC status code, latency, and any trace or
// request identifiers found in the incoming metadata.
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	cfg := actualOptions(opts...)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		data := map[string]any{
			"method":     info.FullMethod,
			"latency_ms": float64(time.Since(start)) / float64(time.Millisecond),
			"code":       status.Code(err).String(),
		}

		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(cfg.traceKey); len(values) > 0 {
				data["trace_id"] = values[0]
			}

			if values := md.Get(cfg.requestKey); len(values) > 0 {
				data["request_id"] = values[0]
			}
		}

		level := logger.InfoLevel
		if err != nil {
			level = logger.ErrorLevel
		}

		cfg.log.Log(level, "grpc call completed", data, err, cfg.tags...)

		return resp, err
	}
}

// StreamServerInterceptor logs one entry per stream when it terminates.
func StreamServerInterceptor(opts ...Option) grpc.StreamServerInterceptor {
	cfg := actualOptions(opts...)

	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()

		err := handler(srv, ss)

		data := map[string]any{
			"method":     info.FullMethod,
			"latency_ms": float64(time.Since(start)) / float64(time.Millisecond),
			"code":       status.Code(err).String(),
		}

		level := logger.InfoLevel
		if err != nil {
			level = logger.ErrorLevel
		}

		cfg.log.Log(level, "grpc stream completed", data, err, cfg.tags...)

		return err
	}
}
