package protocol

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName       = "grps.protos.v1.GrpsService"
	PredictFullMethod = "/grps.protos.v1.GrpsService/Predict"
)

type GrpsServiceClient interface {
	Predict(ctx context.Context, in *Envelope, opts ...grpc.CallOption) (*Envelope, error)
}

type grpsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGrpsServiceClient(cc grpc.ClientConnInterface) GrpsServiceClient {
	return &grpsServiceClient{cc}
}

func (c *grpsServiceClient) Predict(ctx context.Context, in *Envelope, opts ...grpc.CallOption) (*Envelope, error) {
	out := new(Envelope)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := c.cc.Invoke(ctx, PredictFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GrpsServiceServer 服务端需要配合 grpc.ForceServerCodec(Codec{}) 使用
type GrpsServiceServer interface {
	Predict(context.Context, *Envelope) (*Envelope, error)
}

func RegisterGrpsServiceServer(s grpc.ServiceRegistrar, srv GrpsServiceServer) {
	s.RegisterService(&GrpsService_ServiceDesc, srv)
}

func _GrpsService_Predict_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Envelope)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GrpsServiceServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PredictFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GrpsServiceServer).Predict(ctx, req.(*Envelope))
	}
	return interceptor(ctx, in, info, handler)
}

var GrpsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GrpsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Predict",
			Handler:    _GrpsService_Predict_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "grps.proto",
}
