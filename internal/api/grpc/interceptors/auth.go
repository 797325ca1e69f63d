// Package interceptors provides various middleware functionality for GRPC.
package interceptors

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/service/secretary"
)

type ctxKey struct{}

// AuthHandler sets object structure.
type AuthHandler struct {
	sec secretary.Secretary
	key string
}

// NewAuthHandler initializes a new metadata token handler.
func NewAuthHandler(sec secretary.Secretary, cfg *config.Config) *AuthHandler {
	key := cfg.AuthKey
	if key == "" {
		key = "user"
	}
	return &AuthHandler{
		sec: sec,
		key: key,
	}
}

// AuthFunc resolves the caller identity from the metadata token.
// A missing token yields a fresh identity whose token is returned for the response header.
func (a *AuthHandler) AuthFunc(ctx context.Context) (context.Context, string, error) {
	var values []string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values = md.Get(a.key)
	}
	if len(values) == 0 {
		userID := uuid.New().String()
		token := a.sec.Encode(userID)
		return WithUserID(ctx, userID), token, nil
	}
	userID, err := a.sec.Decode(values[0])
	if err != nil {
		return nil, "", status.Error(codes.PermissionDenied, err.Error())
	}
	return WithUserID(ctx, userID), "", nil
}

// UnaryServerInterceptor returns a new unary server interceptors that performs per-request auth.
func (a *AuthHandler) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		newCtx, token, err := a.AuthFunc(ctx)
		if err != nil {
			return nil, err
		}
		if token != "" {
			if err := grpc.SendHeader(newCtx, metadata.Pairs(a.key, token)); err != nil {
				return nil, err
			}
		}
		return handler(newCtx, req)
	}
}

// WithUserID returns a copy of ctx carrying the caller identity.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the identity stored by the auth interceptor.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok && userID != ""
}
