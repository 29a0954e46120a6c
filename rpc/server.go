package rpc

import (
	"context"
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/hexdec/convert"
	"xdao.co/hexdec/hexdump"
)

// Server exposes the conversion pipeline over the Converter gRPC service.
type Server struct {
	UnimplementedConverterServer

	// DefaultScheme is used when a request does not name one.
	DefaultScheme hexdump.Scheme
}

func (s *Server) ConvertTokens(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	_ = ctx
	scheme, err := s.scheme(in)
	if err != nil {
		return nil, toStatus(err)
	}
	tokens, err := stringList(in, "tokens")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	out, err := convert.Inline(tokens, scheme)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(out), nil
}

func (s *Server) ConvertText(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	scheme, err := s.scheme(in)
	if err != nil {
		return nil, toStatus(err)
	}
	fields := in.GetFields()
	res, err := convert.Text(fields["text"].GetStringValue(), fields["strip_address"].GetBoolValue(), scheme)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"text":   res.Text,
		"cid":    res.CID.String(),
		"tokens": res.Tokens,
		"values": res.Values,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func (s *Server) scheme(in *structpb.Struct) (hexdump.Scheme, error) {
	name := in.GetFields()["scheme"].GetStringValue()
	if name == "" {
		return s.DefaultScheme, nil
	}
	return hexdump.ParseScheme(name)
}

func stringList(in *structpb.Struct, key string) ([]string, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%s must be a list of strings", key)
	}
	out := make([]string, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		sv, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", key, i)
		}
		out = append(out, sv.StringValue)
	}
	return out, nil
}

// LoggingInterceptor writes one line per failed call to w.
func LoggingInterceptor(w io.Writer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			fmt.Fprintf(w, "%s failed after %s: %v\n", info.FullMethod, time.Since(start).Round(time.Microsecond), status.Convert(err).Message())
		}
		return resp, err
	}
}
