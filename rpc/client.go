package rpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"xdao.co/hexdec/cidutil"
	"xdao.co/hexdec/convert"
	"xdao.co/hexdec/hexdump"
)

// Client calls a remote Converter service.
type Client struct {
	cc     *grpc.ClientConn
	client ConverterClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, hexdump.WrapError(hexdump.KindIO, "dial "+target, err)
	}
	return NewClient(cc), nil
}

// NewClient wraps an existing connection.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewConverterClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// ConvertTokens runs inline conversion remotely.
func (c *Client) ConvertTokens(ctx context.Context, tokens []string, scheme hexdump.Scheme) (string, error) {
	list := make([]interface{}, len(tokens))
	for i, t := range tokens {
		list[i] = t
	}
	req, err := structpb.NewStruct(map[string]interface{}{
		"tokens": list,
		"scheme": scheme.String(),
	})
	if err != nil {
		return "", hexdump.WrapError(hexdump.KindMalformedToken, "encode tokens", err)
	}

	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.ConvertTokens(ctx, req)
	if err != nil {
		return "", fromStatus(err)
	}
	return reply.GetValue(), nil
}

// ConvertText runs the text pipeline remotely. text must already be decoded.
func (c *Client) ConvertText(ctx context.Context, text string, stripAddress bool, scheme hexdump.Scheme) (*convert.Result, error) {
	req, err := structpb.NewStruct(map[string]interface{}{
		"text":          text,
		"strip_address": stripAddress,
		"scheme":        scheme.String(),
	})
	if err != nil {
		return nil, hexdump.WrapError(hexdump.KindDecode, "encode text", err)
	}

	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.ConvertText(ctx, req)
	if err != nil {
		return nil, fromStatus(err)
	}

	fields := reply.GetFields()
	out := fields["text"].GetStringValue()
	id, err := cidutil.CIDv1RawSHA256CID([]byte(out))
	if err != nil {
		return nil, hexdump.WrapError(hexdump.KindIO, "output cid", err)
	}
	if id.String() != fields["cid"].GetStringValue() {
		return nil, hexdump.NewError(hexdump.KindIO, "rpc: reply cid does not match reply text")
	}
	return &convert.Result{
		Text:     out,
		Tokens:   int(fields["tokens"].GetNumberValue()),
		Values:   int(fields["values"].GetNumberValue()),
		Stripped: stripAddress,
		CID:      id,
	}, nil
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
