package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/sethvargo/go-retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.StreakServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onTokens     TokenListener

	// retryBackoff is the pause before repeating a check-in that failed
	// with a transient error. Must be positive.
	retryBackoff time.Duration
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TokenPair{AccessToken: s.accessToken, RefreshToken: s.refreshToken}
}

// SetTokens installs a previously stored token pair.
func (s *GRPCClient) SetTokens(p TokenPair) {
	s.mu.Lock()
	s.accessToken = p.AccessToken
	s.refreshToken = p.RefreshToken
	s.mu.Unlock()
}

func (s *GRPCClient) storeTokens(p TokenPair) {
	s.SetTokens(p)
	if s.onTokens != nil {
		s.onTokens(p)
	}
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated &&
		strings.Contains(st.Message(), common.ErrTokenExpired.Error())
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method == api.RefreshTokenFullMethodName {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	t := s.tokens()
	callCtx := ctx
	if t.AccessToken != "" {
		callCtx = withAccessToken(ctx, t.AccessToken)
	}

	err := invoker(callCtx, method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) || t.RefreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: t.RefreshToken})
	if rerr != nil {
		return rerr
	}
	s.storeTokens(TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL. onTokens may be nil.
func NewGRPCClient(endpointURL string, onTokens TokenListener, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, onTokens: onTokens, retryBackoff: 200 * time.Millisecond}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewStreakServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, username, password string) error {
	_, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Password: password})
	return s.mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, username, password string) (TokenPair, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return TokenPair{}, s.mapError(err)
	}

	p := TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.storeTokens(p)
	return p, nil
}

func (s *GRPCClient) ListHabits(ctx context.Context) ([]api.Habit, error) {
	resp, err := s.client.ListHabits(ctx, &api.ListHabitsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Habits, nil
}

func (s *GRPCClient) CreateHabit(ctx context.Context, name string) (*api.Habit, error) {
	resp, err := s.client.CreateHabit(ctx, &api.CreateHabitRequest{Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Habit, nil
}

func (s *GRPCClient) RenameHabit(ctx context.Context, id, name string) (*api.Habit, error) {
	resp, err := s.client.RenameHabit(ctx, &api.RenameHabitRequest{ID: id, Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Habit, nil
}

func (s *GRPCClient) DeleteHabit(ctx context.Context, id string) error {
	_, err := s.client.DeleteHabit(ctx, &api.DeleteHabitRequest{ID: id})
	return s.mapError(err)
}

// CheckIn repeats the call once on a conflict or an unavailable store.
// A check-in is idempotent within a calendar day, so a repeat after a lost
// reply cannot count twice.
func (s *GRPCClient) CheckIn(ctx context.Context, id string) (*api.CheckInResponse, error) {
	var resp *api.CheckInResponse
	err := retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(s.retryBackoff)), func(ctx context.Context) error {
		r, err := s.client.CheckIn(ctx, &api.CheckInRequest{HabitID: id})
		if err != nil {
			mapped := s.mapError(err)
			if common.IsTransient(mapped) {
				return retry.RetryableError(mapped)
			}
			return mapped
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *GRPCClient) Leaderboard(ctx context.Context, limit int) (*api.GetLeaderboardResponse, error) {
	resp, err := s.client.GetLeaderboard(ctx, &api.GetLeaderboardRequest{Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %w", ErrUnavailable, common.ErrStoreUnavailable)
	case codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.Aborted:
		return fmt.Errorf("%w: %w", ErrRejected, common.ErrConflict)
	case codes.InvalidArgument, codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
