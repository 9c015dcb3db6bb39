package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	AccountServiceName = "bookshelf.Account"

	AccountRegisterMethod       = "/bookshelf.Account/Register"
	AccountLoginMethod          = "/bookshelf.Account/Login"
	AccountDeactivateMethod     = "/bookshelf.Account/Deactivate"
	AccountChangePasswordMethod = "/bookshelf.Account/ChangePassword"
)

// AccountServer covers the credential-gated account operations. None of
// them require a bearer token.
type AccountServer interface {
	Register(context.Context, *CredentialsRequest) (*AccountResponse, error)
	Login(context.Context, *CredentialsRequest) (*LoginResponse, error)
	Deactivate(context.Context, *CredentialsRequest) (*Empty, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
}

var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: AccountServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(AccountRegisterMethod, AccountServer.Register)},
		{MethodName: "Login", Handler: unary(AccountLoginMethod, AccountServer.Login)},
		{MethodName: "Deactivate", Handler: unary(AccountDeactivateMethod, AccountServer.Deactivate)},
		{MethodName: "ChangePassword", Handler: unary(AccountChangePasswordMethod, AccountServer.ChangePassword)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookshelf/account",
}

func RegisterAccountServer(s grpc.ServiceRegistrar, srv AccountServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}

type AccountClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountClient(cc grpc.ClientConnInterface) *AccountClient {
	return &AccountClient{cc: cc}
}

func (c *AccountClient) Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AccountResponse, error) {
	return invoke[AccountResponse](ctx, c.cc, AccountRegisterMethod, in, opts)
}

func (c *AccountClient) Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, AccountLoginMethod, in, opts)
}

func (c *AccountClient) Deactivate(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, AccountDeactivateMethod, in, opts)
}

func (c *AccountClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, AccountChangePasswordMethod, in, opts)
}
