// Package remotetest 提供本地的 grps 测试服务端，用法类似 httptest
package remotetest

import (
	"context"
	"net"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"grps/framework/protocol"
)

type HandlerFunc func(ctx context.Context, in *protocol.Envelope) (*protocol.Envelope, error)

func (f HandlerFunc) Predict(ctx context.Context, in *protocol.Envelope) (*protocol.Envelope, error) {
	return f(ctx, in)
}

// Echo 原样返回请求里的 str_data 或 bin_data
func Echo(_ context.Context, in *protocol.Envelope) (*protocol.Envelope, error) {
	p := protocol.Decode(in)
	switch p.Kind {
	case protocol.KindText:
		return protocol.EncodeText(p.Text), nil
	case protocol.KindBinary:
		return protocol.EncodeBinary(p.Binary), nil
	}
	return &protocol.Envelope{}, nil
}

type Server struct {
	Addr string

	srv *grpc.Server

	mu       sync.Mutex
	metadata []metadata.MD
}

// NewServer 监听 127.0.0.1 随机端口，测试结束自动关闭
func NewServer(tb testing.TB, h protocol.GrpsServiceServer) *Server {
	tb.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("remotetest: listen: %v", err)
	}
	s := &Server{Addr: lis.Addr().String()}
	s.srv = grpc.NewServer(
		grpc.ForceServerCodec(protocol.Codec{}),
		grpc.UnaryInterceptor(s.record),
	)
	protocol.RegisterGrpsServiceServer(s.srv, h)
	go func() {
		_ = s.srv.Serve(lis)
	}()
	tb.Cleanup(s.srv.Stop)
	return s
}

func (s *Server) record(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	s.mu.Lock()
	s.metadata = append(s.metadata, md)
	s.mu.Unlock()
	return handler(ctx, req)
}

// Metadata 每次调用收到的请求头
func (s *Server) Metadata() []metadata.MD {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]metadata.MD(nil), s.metadata...)
}
