package remote

import (
	"time"

	"google.golang.org/grpc"
)

type clientOptions struct {
	callTimeout  time.Duration
	dialTimeout  time.Duration
	block        bool
	interceptors []grpc.UnaryClientInterceptor
}

func defaultOptions() *clientOptions {
	return &clientOptions{
		callTimeout: 5 * time.Second,
		dialTimeout: 3 * time.Second,
		interceptors: []grpc.UnaryClientInterceptor{
			Recovery(),
			RequestID(),
			Logging(),
			Metrics(),
		},
	}
}

type Option func(*clientOptions)

// WithTimeout 单次Predict的超时 非正数忽略
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.callTimeout = timeout
		}
	}
}

func WithDialTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.dialTimeout = timeout
		}
	}
}

func WithBlock(block bool) Option {
	return func(o *clientOptions) {
		o.block = block
	}
}

// WithInterceptors 替换默认的拦截器链
func WithInterceptors(interceptors ...grpc.UnaryClientInterceptor) Option {
	return func(o *clientOptions) {
		o.interceptors = interceptors
	}
}
