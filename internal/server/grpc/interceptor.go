package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// protectedMethods need a valid access token.
var protectedMethods = map[string]struct{}{
	api.CreateHabitFullMethodName: {},
	api.ListHabitsFullMethodName:  {},
	api.RenameHabitFullMethodName: {},
	api.DeleteHabitFullMethodName: {},
	api.CheckInFullMethodName:     {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if _, ok := protectedMethods[info.FullMethod]; ok {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		userID, err := s.users.Authenticate(accessToken)
		if err != nil {
			return nil, toStatus(err)
		}

		ctx = auth.WithUserID(ctx, userID)

	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.Internal, codes.Unknown, codes.Unavailable:
		s.logger.Warn(ctx, "request failed", args...)
	case codes.OK:
		s.logger.Debug(ctx, "request", args...)
	default:
		s.logger.Info(ctx, "request rejected", append(args, "error", err)...)
	}

	return resp, err
}
