package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "xdao.hexdec.v1.Converter"

// ConverterServer is the server API for the Converter gRPC service.
//
// Messages are protobuf well-known types so no protoc step is needed.
//
//	ConvertTokens: {tokens: [string], scheme: string} -> string
//	ConvertText:   {text: string, strip_address: bool, scheme: string}
//	               -> {text: string, cid: string, tokens: number, values: number}
type ConverterServer interface {
	ConvertTokens(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	ConvertText(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedConverterServer can be embedded to have forward compatible implementations.
type UnimplementedConverterServer struct{}

func (UnimplementedConverterServer) ConvertTokens(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ConvertTokens not implemented")
}
func (UnimplementedConverterServer) ConvertText(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ConvertText not implemented")
}

// RegisterConverterServer registers the Converter service on a gRPC server.
func RegisterConverterServer(s grpc.ServiceRegistrar, srv ConverterServer) {
	s.RegisterService(&Converter_ServiceDesc, srv)
}

// ConverterClient is the client API for the Converter gRPC service.
type ConverterClient interface {
	ConvertTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	ConvertText(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type converterClient struct{ cc grpc.ClientConnInterface }

func NewConverterClient(cc grpc.ClientConnInterface) ConverterClient {
	return &converterClient{cc: cc}
}

func (c *converterClient) ConvertTokens(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ConvertTokens", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *converterClient) ConvertText(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ConvertText", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _Converter_ConvertTokens_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConverterServer).ConvertTokens(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ConvertTokens"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConverterServer).ConvertTokens(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Converter_ConvertText_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConverterServer).ConvertText(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ConvertText"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConverterServer).ConvertText(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Converter_ServiceDesc is the grpc.ServiceDesc for the Converter service.
var Converter_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ConverterServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ConvertTokens", Handler: _Converter_ConvertTokens_Handler},
		{MethodName: "ConvertText", Handler: _Converter_ConvertText_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "converter.proto",
}
