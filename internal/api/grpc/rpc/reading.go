package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ReadingServiceName = "bookshelf.Reading"

	ReadingMarkAsReadMethod   = "/bookshelf.Reading/MarkAsRead"
	ReadingStartReadingMethod = "/bookshelf.Reading/StartReading"
	ReadingProgressMethod     = "/bookshelf.Reading/Progress"
)

// ReadingServer acts on the user named by the bearer token.
type ReadingServer interface {
	MarkAsRead(context.Context, *ISBNRequest) (*Progress, error)
	StartReading(context.Context, *ISBNRequest) (*Progress, error)
	Progress(context.Context, *Empty) (*Progress, error)
}

var ReadingServiceDesc = grpc.ServiceDesc{
	ServiceName: ReadingServiceName,
	HandlerType: (*ReadingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "MarkAsRead", Handler: unary(ReadingMarkAsReadMethod, ReadingServer.MarkAsRead)},
		{MethodName: "StartReading", Handler: unary(ReadingStartReadingMethod, ReadingServer.StartReading)},
		{MethodName: "Progress", Handler: unary(ReadingProgressMethod, ReadingServer.Progress)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookshelf/reading",
}

func RegisterReadingServer(s grpc.ServiceRegistrar, srv ReadingServer) {
	s.RegisterService(&ReadingServiceDesc, srv)
}

type ReadingClient struct {
	cc grpc.ClientConnInterface
}

func NewReadingClient(cc grpc.ClientConnInterface) *ReadingClient {
	return &ReadingClient{cc: cc}
}

func (c *ReadingClient) MarkAsRead(ctx context.Context, in *ISBNRequest, opts ...grpc.CallOption) (*Progress, error) {
	return invoke[Progress](ctx, c.cc, ReadingMarkAsReadMethod, in, opts)
}

func (c *ReadingClient) StartReading(ctx context.Context, in *ISBNRequest, opts ...grpc.CallOption) (*Progress, error) {
	return invoke[Progress](ctx, c.cc, ReadingStartReadingMethod, in, opts)
}

func (c *ReadingClient) Progress(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Progress, error) {
	return invoke[Progress](ctx, c.cc, ReadingProgressMethod, in, opts)
}
