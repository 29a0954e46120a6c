package rpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/hexdec/hexdump"
)

// toStatus converts a pipeline error into a gRPC status. The hexdump Kind
// travels as a StringValue detail so clients can restore it.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	kind := hexdump.KindOf(err)
	var code codes.Code
	switch kind {
	case hexdump.KindOddTokenCount, hexdump.KindMalformedToken, hexdump.KindConfig:
		code = codes.InvalidArgument
	case hexdump.KindInsufficientTokens:
		code = codes.FailedPrecondition
	default:
		code = codes.Internal
	}
	st := status.New(code, err.Error())
	if kind == "" {
		return st.Err()
	}
	withKind, derr := st.WithDetails(wrapperspb.String(string(kind)))
	if derr != nil {
		return st.Err()
	}
	return withKind.Err()
}

// fromStatus restores a hexdump.Error from a status produced by toStatus.
// Transport failures come back as KindIO.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return hexdump.WrapError(hexdump.KindIO, "rpc", err)
	}
	for _, d := range st.Details() {
		if s, ok := d.(*wrapperspb.StringValue); ok && s.GetValue() != "" {
			return &hexdump.Error{Kind: hexdump.Kind(s.GetValue()), Message: st.Message()}
		}
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return hexdump.NewError(hexdump.KindMalformedToken, st.Message())
	case codes.FailedPrecondition:
		return hexdump.NewError(hexdump.KindInsufficientTokens, st.Message())
	default:
		return hexdump.WrapError(hexdump.KindIO, "rpc", errors.New(st.Message()))
	}
}
