// Package handlers implements the StudyHelper gRPC methods on top of the study helper services.
package handlers

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danilovkiri/dk_go_study_helper/internal/api/grpc/interceptors"
	pb "github.com/danilovkiri/dk_go_study_helper/internal/api/grpc/proto"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/community"
	serviceErrors "github.com/danilovkiri/dk_go_study_helper/internal/service/errors"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/reviewer"
	storageErrors "github.com/danilovkiri/dk_go_study_helper/internal/storage/errors"
)

const (
	storageTimeout = 500 * time.Millisecond
	uploadTimeout  = 5 * time.Second
	modelTimeout   = 110 * time.Second
)

// GRPCHandler defines data structure handling and provides support for adding new implementations.
type GRPCHandler struct {
	processor reviewer.Processor
	board     community.Board
}

// InitGRPCHandler initializes a GRPCHandler object and sets its attributes.
func InitGRPCHandler(processor reviewer.Processor, board community.Board) (*GRPCHandler, error) {
	if processor == nil || board == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil service was passed to GRPC handler initializer"}
	}
	return &GRPCHandler{processor: processor, board: board}, nil
}

// HandleReview reviews the sent files and makes them the caller's current document.
func (h *GRPCHandler) HandleReview(ctx context.Context, request *pb.ReviewRequest) (*pb.ReviewResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, modelTimeout)
	defer cancel()
	userID, err := getUserID(ctx)
	if err != nil {
		return nil, err
	}
	review, err := h.processor.Review(ctx, userID, pb.ToFiles(request.Files))
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ReviewResponse{Review: review}, nil
}

// HandleAsk answers a question about the caller's current document.
func (h *GRPCHandler) HandleAsk(ctx context.Context, request *pb.AskRequest) (*pb.AskResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, modelTimeout)
	defer cancel()
	userID, err := getUserID(ctx)
	if err != nil {
		return nil, err
	}
	answer, err := h.processor.Ask(ctx, userID, request.Question)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.AskResponse{Answer: answer}, nil
}

// HandleHistory returns the caller's chat history.
func (h *GRPCHandler) HandleHistory(ctx context.Context) (*pb.HistoryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	userID, err := getUserID(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := h.processor.History(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.HistoryResponse{Messages: messages}, nil
}

// HandleListPosts lists community posts matching the optional query.
func (h *GRPCHandler) HandleListPosts(ctx context.Context, request *pb.ListPostsRequest) (*pb.ListPostsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	posts, err := h.board.List(ctx, request.Query)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ListPostsResponse{Posts: posts}, nil
}

// HandleGetPost returns one post with its comments.
func (h *GRPCHandler) HandleGetPost(ctx context.Context, request *pb.GetPostRequest) (*pb.GetPostResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	post, err := h.board.Get(ctx, request.Slug)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.GetPostResponse{Post: post}, nil
}

// HandlePublish publishes a community post.
func (h *GRPCHandler) HandlePublish(ctx context.Context, request *pb.PublishRequest) (*pb.PublishResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()
	userID, err := getUserID(ctx)
	if err != nil {
		return nil, err
	}
	post, err := h.board.Publish(ctx, userID, request.Title, request.Content, pb.ToFiles(request.Files))
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.PublishResponse{Post: post}, nil
}

// HandleComment adds an anonymous comment to a post.
func (h *GRPCHandler) HandleComment(ctx context.Context, request *pb.CommentRequest) (*pb.CommentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	comment, err := h.board.Comment(ctx, request.Slug, request.Content)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.CommentResponse{Comment: comment}, nil
}

func getUserID(ctx context.Context) (string, error) {
	userID, ok := interceptors.UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "caller identity was not resolved")
	}
	return userID, nil
}

// toStatus maps service and storage errors onto gRPC status codes.
func toStatus(err error) error {
	var (
		timeoutErr     *storageErrors.ContextTimeoutExceededError
		notFoundErr    *storageErrors.NotFoundError
		noProviderErr  *serviceErrors.NoProviderError
		quotaErr       *serviceErrors.ProviderQuotaError
		noDocumentErr  *serviceErrors.NoDocumentError
		noFilesErr     *serviceErrors.NoFilesError
		emptyQErr      *serviceErrors.EmptyQuestionError
		emptyFieldErr  *serviceErrors.EmptyFieldError
		unsupportedErr *serviceErrors.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.As(err, &quotaErr):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.As(err, &noProviderErr):
		return status.Error(codes.Unavailable, err.Error())
	case errors.As(err, &notFoundErr):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &noDocumentErr):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &noFilesErr), errors.As(err, &emptyQErr), errors.As(err, &emptyFieldErr), errors.As(err, &unsupportedErr):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
