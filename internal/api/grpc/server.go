// Package grpc provides functionality for initializing the gRPC server of the study helper.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/grpc/handlers"
	"github.com/danilovkiri/dk_go_study_helper/internal/api/grpc/interceptors"
	pb "github.com/danilovkiri/dk_go_study_helper/internal/api/grpc/proto"
	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/community/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/extractor"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/llm"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/reviewer/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
)

// StudyHelperServer defines server methods and attributes.
type StudyHelperServer struct {
	pb.UnimplementedStudyHelperServer
	grpcHandler *handlers.GRPCHandler
}

// InitServer returns a StudyHelperServer object ready to be registered.
func InitServer(ctx context.Context, cfg *config.Config, st storage.StudyStorage, ext extractor.Extractor, assistant llm.Assistant) (*StudyHelperServer, error) {
	reviewerService, err := reviewer.InitReviewer(st, ext, assistant, cfg.ReviewCacheSize)
	if err != nil {
		return nil, err
	}
	communityService, err := community.InitCommunity(st)
	if err != nil {
		return nil, err
	}
	grpcHandler, err := handlers.InitGRPCHandler(reviewerService, communityService)
	if err != nil {
		return nil, err
	}
	return &StudyHelperServer{grpcHandler: grpcHandler}, nil
}

// NewGRPCServer creates a gRPC server with the auth and logging interceptors and registers
// the StudyHelper and health services on it.
func NewGRPCServer(cfg *config.Config, server *StudyHelperServer, st storage.StudyStorage) (*grpc.Server, *health.Server, error) {
	secretaryService, err := secretary.NewSecretaryService(cfg)
	if err != nil {
		return nil, nil, err
	}
	authHandler := interceptors.NewAuthHandler(secretaryService, cfg)
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.LogUnaryInterceptor(),
		authHandler.UnaryServerInterceptor(),
	))
	pb.RegisterStudyHelperServer(s, server)
	healthServer := health.NewServer()
	status := healthpb.HealthCheckResponse_SERVING
	if err := st.PingDB(); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	healthServer.SetServingStatus(pb.ServiceName, status)
	healthpb.RegisterHealthServer(s, healthServer)
	return s, healthServer, nil
}

// Review is a GRPC method for reviewing uploaded documents.
func (s *StudyHelperServer) Review(ctx context.Context, request *pb.ReviewRequest) (*pb.ReviewResponse, error) {
	return s.grpcHandler.HandleReview(ctx, request)
}

// Ask is a GRPC method for asking about the current document.
func (s *StudyHelperServer) Ask(ctx context.Context, request *pb.AskRequest) (*pb.AskResponse, error) {
	return s.grpcHandler.HandleAsk(ctx, request)
}

// History is a GRPC method for getting the chat history.
func (s *StudyHelperServer) History(ctx context.Context, _ *pb.HistoryRequest) (*pb.HistoryResponse, error) {
	return s.grpcHandler.HandleHistory(ctx)
}

// ListPosts is a GRPC method for listing community posts.
func (s *StudyHelperServer) ListPosts(ctx context.Context, request *pb.ListPostsRequest) (*pb.ListPostsResponse, error) {
	return s.grpcHandler.HandleListPosts(ctx, request)
}

// GetPost is a GRPC method for getting one community post.
func (s *StudyHelperServer) GetPost(ctx context.Context, request *pb.GetPostRequest) (*pb.GetPostResponse, error) {
	return s.grpcHandler.HandleGetPost(ctx, request)
}

// Publish is a GRPC method for publishing a community post.
func (s *StudyHelperServer) Publish(ctx context.Context, request *pb.PublishRequest) (*pb.PublishResponse, error) {
	return s.grpcHandler.HandlePublish(ctx, request)
}

// Comment is a GRPC method for commenting on a community post.
func (s *StudyHelperServer) Comment(ctx context.Context, request *pb.CommentRequest) (*pb.CommentResponse, error) {
	return s.grpcHandler.HandleComment(ctx, request)
}
