package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	CatalogServiceName = "bookshelf.Catalog"

	CatalogAddMethod            = "/bookshelf.Catalog/Add"
	CatalogUpdateMethod         = "/bookshelf.Catalog/Update"
	CatalogRemoveMethod         = "/bookshelf.Catalog/Remove"
	CatalogGetMethod            = "/bookshelf.Catalog/Get"
	CatalogListMethod           = "/bookshelf.Catalog/List"
	CatalogExportSnapshotMethod = "/bookshelf.Catalog/ExportSnapshot"
	CatalogImportSnapshotMethod = "/bookshelf.Catalog/ImportSnapshot"
)

type CatalogServer interface {
	Add(context.Context, *Book) (*Book, error)
	Update(context.Context, *Book) (*Book, error)
	Remove(context.Context, *ISBNRequest) (*Empty, error)
	Get(context.Context, *ISBNRequest) (*Book, error)
	List(context.Context, *Empty) (*BookList, error)
	ExportSnapshot(context.Context, *SnapshotRequest) (*SnapshotResponse, error)
	ImportSnapshot(context.Context, *SnapshotRequest) (*SnapshotResponse, error)
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Add", Handler: unary(CatalogAddMethod, CatalogServer.Add)},
		{MethodName: "Update", Handler: unary(CatalogUpdateMethod, CatalogServer.Update)},
		{MethodName: "Remove", Handler: unary(CatalogRemoveMethod, CatalogServer.Remove)},
		{MethodName: "Get", Handler: unary(CatalogGetMethod, CatalogServer.Get)},
		{MethodName: "List", Handler: unary(CatalogListMethod, CatalogServer.List)},
		{MethodName: "ExportSnapshot", Handler: unary(CatalogExportSnapshotMethod, CatalogServer.ExportSnapshot)},
		{MethodName: "ImportSnapshot", Handler: unary(CatalogImportSnapshotMethod, CatalogServer.ImportSnapshot)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookshelf/catalog",
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) Add(ctx context.Context, in *Book, opts ...grpc.CallOption) (*Book, error) {
	return invoke[Book](ctx, c.cc, CatalogAddMethod, in, opts)
}

func (c *CatalogClient) Update(ctx context.Context, in *Book, opts ...grpc.CallOption) (*Book, error) {
	return invoke[Book](ctx, c.cc, CatalogUpdateMethod, in, opts)
}

func (c *CatalogClient) Remove(ctx context.Context, in *ISBNRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, CatalogRemoveMethod, in, opts)
}

func (c *CatalogClient) Get(ctx context.Context, in *ISBNRequest, opts ...grpc.CallOption) (*Book, error) {
	return invoke[Book](ctx, c.cc, CatalogGetMethod, in, opts)
}

func (c *CatalogClient) List(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*BookList, error) {
	return invoke[BookList](ctx, c.cc, CatalogListMethod, in, opts)
}

func (c *CatalogClient) ExportSnapshot(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*SnapshotResponse, error) {
	return invoke[SnapshotResponse](ctx, c.cc, CatalogExportSnapshotMethod, in, opts)
}

func (c *CatalogClient) ImportSnapshot(ctx context.Context, in *SnapshotRequest, opts ...grpc.CallOption) (*SnapshotResponse, error) {
	return invoke[SnapshotResponse](ctx, c.cc, CatalogImportSnapshotMethod, in, opts)
}
