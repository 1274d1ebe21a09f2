package remote

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"grps/common/logs"
)

const RequestIDKey = "x-request-id"

var (
	rpcCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grps_client_calls_total",
			Help: "Total number of predict calls",
		},
		[]string{"method", "code"},
	)
	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grps_client_call_duration_seconds",
			Help:    "Duration of predict calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(rpcCallsTotal)
	prometheus.MustRegister(rpcDuration)
}

// RequestID 每次调用带上 x-request-id，已经有的不覆盖
func RequestID() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if md, ok := metadata.FromOutgoingContext(ctx); !ok || len(md.Get(RequestIDKey)) == 0 {
			ctx = metadata.AppendToOutgoingContext(ctx, RequestIDKey, uuid.NewString())
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func Logging() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		logs.Debug("→ rpc call: [%s] target=%s", method, cc.Target())
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err != nil {
			logs.Warn("✗ rpc call: [%s] target=%s failed in %v: %v", method, cc.Target(), time.Since(start), err)
		} else {
			logs.Info("✓ rpc call: [%s] target=%s succeeded in %v", method, cc.Target(), time.Since(start))
		}
		return err
	}
}

func Metrics() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		rpcCallsTotal.WithLabelValues(method, status.Code(err).String()).Inc()
		rpcDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		return err
	}
}

// Recovery 拦截器链中的panic转成 codes.Internal
func Recovery() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logs.Error("panic recovered in %s: %v\n%s", method, r, debug.Stack())
				err = status.Error(codes.Internal, fmt.Sprintf("panic recovered: %v", r))
			}
		}()
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
