package interceptors

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danilovkiri/dk_go_study_helper/internal/metrics"
)

// LogUnaryInterceptor logs and counts every unary call with its status code and latency.
// It is meant to be the outermost interceptor so that rejected calls are recorded too.
func LogUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		metrics.GRPCRequests.WithLabelValues(info.FullMethod, code.String()).Inc()
		entry := log.WithFields(log.Fields{
			"method":  info.FullMethod,
			"code":    code.String(),
			"latency": time.Since(start).String(),
		})
		switch code {
		case codes.OK:
			entry.Info("call served")
		case codes.Internal, codes.Unknown, codes.Unavailable:
			entry.Error(err)
		default:
			entry.Warn(err)
		}
		return resp, err
	}
}
