package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "fitcal.v1.FitCal"

// Full method names, as seen by interceptors.
const (
	MethodPing         = "/" + ServiceName + "/Ping"
	MethodRegister     = "/" + ServiceName + "/Register"
	MethodGetSalt      = "/" + ServiceName + "/GetSalt"
	MethodLogin        = "/" + ServiceName + "/Login"
	MethodRefreshToken = "/" + ServiceName + "/RefreshToken"
	MethodPushBackup   = "/" + ServiceName + "/PushBackup"
	MethodPullBackup   = "/" + ServiceName + "/PullBackup"
)

// FitCalServer is implemented by the server.
type FitCalServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	PushBackup(context.Context, *PushBackupRequest) (*PushBackupResponse, error)
	PullBackup(context.Context, *PullBackupRequest) (*PullBackupResponse, error)
}

// UnimplementedFitCalServer can be embedded to satisfy FitCalServer.
type UnimplementedFitCalServer struct{}

func (UnimplementedFitCalServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedFitCalServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedFitCalServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedFitCalServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedFitCalServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedFitCalServer) PushBackup(context.Context, *PushBackupRequest) (*PushBackupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PushBackup not implemented")
}
func (UnimplementedFitCalServer) PullBackup(context.Context, *PullBackupRequest) (*PullBackupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PullBackup not implemented")
}

// unary adapts a typed server method to grpc.MethodHandler, decoding the
// request and routing it through the interceptor chain.
func unary[Req, Resp any](fullMethod string, call func(FitCalServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FitCalServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FitCalServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes the FitCal service to grpc.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FitCalServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(MethodPing, FitCalServer.Ping)},
		{MethodName: "Register", Handler: unary(MethodRegister, FitCalServer.Register)},
		{MethodName: "GetSalt", Handler: unary(MethodGetSalt, FitCalServer.GetSalt)},
		{MethodName: "Login", Handler: unary(MethodLogin, FitCalServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, FitCalServer.RefreshToken)},
		{MethodName: "PushBackup", Handler: unary(MethodPushBackup, FitCalServer.PushBackup)},
		{MethodName: "PullBackup", Handler: unary(MethodPullBackup, FitCalServer.PullBackup)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fitcal/v1/fitcal",
}

func RegisterFitCalServer(s grpc.ServiceRegistrar, srv FitCalServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FitCalClient is the typed client stub.
type FitCalClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	PushBackup(ctx context.Context, in *PushBackupRequest, opts ...grpc.CallOption) (*PushBackupResponse, error)
	PullBackup(ctx context.Context, in *PullBackupRequest, opts ...grpc.CallOption) (*PullBackupResponse, error)
}

type fitCalClient struct {
	cc grpc.ClientConnInterface
}

func NewFitCalClient(cc grpc.ClientConnInterface) FitCalClient {
	return &fitCalClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fitCalClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *fitCalClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *fitCalClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *fitCalClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *fitCalClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *fitCalClient) PushBackup(ctx context.Context, in *PushBackupRequest, opts ...grpc.CallOption) (*PushBackupResponse, error) {
	return invoke[PushBackupResponse](ctx, c.cc, MethodPushBackup, in, opts)
}

func (c *fitCalClient) PullBackup(ctx context.Context, in *PullBackupRequest, opts ...grpc.CallOption) (*PullBackupResponse, error) {
	return invoke[PullBackupResponse](ctx, c.cc, MethodPullBackup, in, opts)
}
