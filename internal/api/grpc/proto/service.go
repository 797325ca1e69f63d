package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "studyhelper.StudyHelper"

// StudyHelperServer is the server API for the StudyHelper service.
type StudyHelperServer interface {
	Review(context.Context, *ReviewRequest) (*ReviewResponse, error)
	Ask(context.Context, *AskRequest) (*AskResponse, error)
	History(context.Context, *HistoryRequest) (*HistoryResponse, error)
	ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error)
	GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error)
	Publish(context.Context, *PublishRequest) (*PublishResponse, error)
	Comment(context.Context, *CommentRequest) (*CommentResponse, error)
}

// UnimplementedStudyHelperServer can be embedded to have forward compatible implementations.
type UnimplementedStudyHelperServer struct{}

func (UnimplementedStudyHelperServer) Review(context.Context, *ReviewRequest) (*ReviewResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Review not implemented")
}
func (UnimplementedStudyHelperServer) Ask(context.Context, *AskRequest) (*AskResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ask not implemented")
}
func (UnimplementedStudyHelperServer) History(context.Context, *HistoryRequest) (*HistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method History not implemented")
}
func (UnimplementedStudyHelperServer) ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPosts not implemented")
}
func (UnimplementedStudyHelperServer) GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPost not implemented")
}
func (UnimplementedStudyHelperServer) Publish(context.Context, *PublishRequest) (*PublishResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Publish not implemented")
}
func (UnimplementedStudyHelperServer) Comment(context.Context, *CommentRequest) (*CommentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Comment not implemented")
}

// unary builds the method descriptor of one unary call.
func unary[Req, Resp any](method string, call func(StudyHelperServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(StudyHelperServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(StudyHelperServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// StudyHelper_ServiceDesc is the grpc.ServiceDesc for the StudyHelper service.
var StudyHelper_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StudyHelperServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Review", StudyHelperServer.Review),
		unary("Ask", StudyHelperServer.Ask),
		unary("History", StudyHelperServer.History),
		unary("ListPosts", StudyHelperServer.ListPosts),
		unary("GetPost", StudyHelperServer.GetPost),
		unary("Publish", StudyHelperServer.Publish),
		unary("Comment", StudyHelperServer.Comment),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "studyhelper.json",
}

// RegisterStudyHelperServer registers srv on s.
func RegisterStudyHelperServer(s grpc.ServiceRegistrar, srv StudyHelperServer) {
	s.RegisterService(&StudyHelper_ServiceDesc, srv)
}

// StudyHelperClient is the client API for the StudyHelper service.
type StudyHelperClient interface {
	Review(ctx context.Context, in *ReviewRequest, opts ...grpc.CallOption) (*ReviewResponse, error)
	Ask(ctx context.Context, in *AskRequest, opts ...grpc.CallOption) (*AskResponse, error)
	History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error)
	ListPosts(ctx context.Context, in *ListPostsRequest, opts ...grpc.CallOption) (*ListPostsResponse, error)
	GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error)
	Publish(ctx context.Context, in *PublishRequest, opts ...grpc.CallOption) (*PublishResponse, error)
	Comment(ctx context.Context, in *CommentRequest, opts ...grpc.CallOption) (*CommentResponse, error)
}

type studyHelperClient struct {
	cc grpc.ClientConnInterface
}

// NewStudyHelperClient returns a client that always speaks the JSON codec.
func NewStudyHelperClient(cc grpc.ClientConnInterface) StudyHelperClient {
	return &studyHelperClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *studyHelperClient) Review(ctx context.Context, in *ReviewRequest, opts ...grpc.CallOption) (*ReviewResponse, error) {
	return invoke[ReviewResponse](ctx, c.cc, "Review", in, opts)
}

func (c *studyHelperClient) Ask(ctx context.Context, in *AskRequest, opts ...grpc.CallOption) (*AskResponse, error) {
	return invoke[AskResponse](ctx, c.cc, "Ask", in, opts)
}

func (c *studyHelperClient) History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return invoke[HistoryResponse](ctx, c.cc, "History", in, opts)
}

func (c *studyHelperClient) ListPosts(ctx context.Context, in *ListPostsRequest, opts ...grpc.CallOption) (*ListPostsResponse, error) {
	return invoke[ListPostsResponse](ctx, c.cc, "ListPosts", in, opts)
}

func (c *studyHelperClient) GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error) {
	return invoke[GetPostResponse](ctx, c.cc, "GetPost", in, opts)
}

func (c *studyHelperClient) Publish(ctx context.Context, in *PublishRequest, opts ...grpc.CallOption) (*PublishResponse, error) {
	return invoke[PublishResponse](ctx, c.cc, "Publish", in, opts)
}

func (c *studyHelperClient) Comment(ctx context.Context, in *CommentRequest, opts ...grpc.CallOption) (*CommentResponse, error) {
	return invoke[CommentResponse](ctx, c.cc, "Comment", in, opts)
}
