package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	BookQueryName = "fenrir.BookQuery"

	BookQueryGetOrderBookMethod = "/fenrir.BookQuery/GetOrderBook"
	BookQueryFindFillsMethod    = "/fenrir.BookQuery/FindFills"
	BookQueryFindTriggersMethod = "/fenrir.BookQuery/FindTriggers"
)

// BookQueryClient is the client API for the BookQuery service.
type BookQueryClient interface {
	GetOrderBook(ctx context.Context, in *GetOrderBookRequest, opts ...grpc.CallOption) (*GetOrderBookResponse, error)
	FindFills(ctx context.Context, in *FindFillsRequest, opts ...grpc.CallOption) (*FindFillsResponse, error)
	FindTriggers(ctx context.Context, in *FindTriggersRequest, opts ...grpc.CallOption) (*FindTriggersResponse, error)
}

type bookQueryClient struct {
	cc grpc.ClientConnInterface
}

func NewBookQueryClient(cc grpc.ClientConnInterface) BookQueryClient {
	return &bookQueryClient{cc: cc}
}

func (c *bookQueryClient) GetOrderBook(ctx context.Context, in *GetOrderBookRequest, opts ...grpc.CallOption) (*GetOrderBookResponse, error) {
	out := new(GetOrderBookResponse)
	if err := c.cc.Invoke(ctx, BookQueryGetOrderBookMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookQueryClient) FindFills(ctx context.Context, in *FindFillsRequest, opts ...grpc.CallOption) (*FindFillsResponse, error) {
	out := new(FindFillsResponse)
	if err := c.cc.Invoke(ctx, BookQueryFindFillsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *bookQueryClient) FindTriggers(ctx context.Context, in *FindTriggersRequest, opts ...grpc.CallOption) (*FindTriggersResponse, error) {
	out := new(FindTriggersResponse)
	if err := c.cc.Invoke(ctx, BookQueryFindTriggersMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// BookQueryServer is the server API for the BookQuery service.
type BookQueryServer interface {
	GetOrderBook(context.Context, *GetOrderBookRequest) (*GetOrderBookResponse, error)
	FindFills(context.Context, *FindFillsRequest) (*FindFillsResponse, error)
	FindTriggers(context.Context, *FindTriggersRequest) (*FindTriggersResponse, error)
}

// UnimplementedBookQueryServer can be embedded for forward compatibility.
type UnimplementedBookQueryServer struct{}

func (UnimplementedBookQueryServer) GetOrderBook(context.Context, *GetOrderBookRequest) (*GetOrderBookResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetOrderBook not implemented")
}

func (UnimplementedBookQueryServer) FindFills(context.Context, *FindFillsRequest) (*FindFillsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindFills not implemented")
}

func (UnimplementedBookQueryServer) FindTriggers(context.Context, *FindTriggersRequest) (*FindTriggersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindTriggers not implemented")
}

func RegisterBookQueryServer(s grpc.ServiceRegistrar, srv BookQueryServer) {
	s.RegisterService(&BookQueryServiceDesc, srv)
}

func getOrderBookHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetOrderBookRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookQueryServer).GetOrderBook(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BookQueryGetOrderBookMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookQueryServer).GetOrderBook(ctx, req.(*GetOrderBookRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func findFillsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FindFillsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookQueryServer).FindFills(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BookQueryFindFillsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookQueryServer).FindFills(ctx, req.(*FindFillsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func findTriggersHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FindTriggersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BookQueryServer).FindTriggers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BookQueryFindTriggersMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BookQueryServer).FindTriggers(ctx, req.(*FindTriggersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// BookQueryServiceDesc is the grpc.ServiceDesc for the BookQuery service.
var BookQueryServiceDesc = grpc.ServiceDesc{
	ServiceName: BookQueryName,
	HandlerType: (*BookQueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetOrderBook", Handler: getOrderBookHandler},
		{MethodName: "FindFills", Handler: findFillsHandler},
		{MethodName: "FindTriggers", Handler: findTriggersHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/pb/fenrir.proto",
}
