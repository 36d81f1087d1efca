package transport

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "blockinsight7000.txcore.v1.TxService"

// TxServiceServer is the server API of the transaction service.
type TxServiceServer interface {
	Health(context.Context, *HealthRequest) (*HealthResponse, error)
	Decode(context.Context, *DecodeRequest) (*DecodeResponse, error)
	Check(context.Context, *CheckRequest) (*CheckResponse, error)
	Lookup(context.Context, *LookupRequest) (*LookupResponse, error)
}

// RegisterTxServiceServer registers srv on s. Calls must use the JSON content subtype.
func RegisterTxServiceServer(s grpc.ServiceRegistrar, srv TxServiceServer) {
	s.RegisterService(&txServiceDesc, srv)
}

var txServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TxServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Health", Handler: unaryHandler("Health", TxServiceServer.Health)},
		{MethodName: "Decode", Handler: unaryHandler("Decode", TxServiceServer.Decode)},
		{MethodName: "Check", Handler: unaryHandler("Check", TxServiceServer.Check)},
		{MethodName: "Lookup", Handler: unaryHandler("Lookup", TxServiceServer.Lookup)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blockinsight7000/txcore/v1/tx_service",
}

func unaryHandler[Req, Resp any](method string, call func(TxServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TxServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TxServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TxServiceClient calls the transaction service.
type TxServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTxServiceClient(cc grpc.ClientConnInterface) *TxServiceClient {
	return &TxServiceClient{cc: cc}
}

func (c *TxServiceClient) Health(ctx context.Context, in *HealthRequest, opts ...grpc.CallOption) (*HealthResponse, error) {
	return invoke[HealthResponse](ctx, c.cc, "Health", in, opts)
}

func (c *TxServiceClient) Decode(ctx context.Context, in *DecodeRequest, opts ...grpc.CallOption) (*DecodeResponse, error) {
	return invoke[DecodeResponse](ctx, c.cc, "Decode", in, opts)
}

func (c *TxServiceClient) Check(ctx context.Context, in *CheckRequest, opts ...grpc.CallOption) (*CheckResponse, error) {
	return invoke[CheckResponse](ctx, c.cc, "Check", in, opts)
}

func (c *TxServiceClient) Lookup(ctx context.Context, in *LookupRequest, opts ...grpc.CallOption) (*LookupResponse, error) {
	return invoke[LookupResponse](ctx, c.cc, "Lookup", in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(ContentSubtype)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
