// Package grpc exposes StreakService over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, userName, password string) (*models.User, error)
	Login(ctx context.Context, userName, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Authenticate(accessToken string) (string, error)
}

type HabitService interface {
	Create(ctx context.Context, userID, name string) (*services.HabitView, error)
	List(ctx context.Context, userID string) ([]services.HabitView, error)
	Rename(ctx context.Context, userID, habitID, name string) (*services.HabitView, error)
	Delete(ctx context.Context, userID, habitID string) error
	CheckIn(ctx context.Context, userID, habitID string) (*services.CheckInResult, error)
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int) (*services.Leaderboard, error)
}

// GRPCServer implements api.StreakServiceServer on top of the services.
type GRPCServer struct {
	address     string
	users       UserService
	habits      HabitService
	leaderboard LeaderboardService
	logger      logging.Logger
}

var _ api.StreakServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us UserService, hs HabitService, ls LeaderboardService) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		users:       us,
		habits:      hs,
		leaderboard: ls,
	}
}

// NewServer builds a grpc.Server with the interceptors and the service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterStreakServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
// It returns only after in-flight RPCs have finished.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	stopped := make(chan struct{})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	err := srv.Serve(lis)
	close(stopped)
	<-drained

	return err
}
