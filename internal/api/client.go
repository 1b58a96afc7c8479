package api

import (
	"context"

	"google.golang.org/grpc"
)

// StreakServiceClient is the client API for StreakService.
type StreakServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	CreateHabit(ctx context.Context, in *CreateHabitRequest, opts ...grpc.CallOption) (*CreateHabitResponse, error)
	ListHabits(ctx context.Context, in *ListHabitsRequest, opts ...grpc.CallOption) (*ListHabitsResponse, error)
	RenameHabit(ctx context.Context, in *RenameHabitRequest, opts ...grpc.CallOption) (*RenameHabitResponse, error)
	DeleteHabit(ctx context.Context, in *DeleteHabitRequest, opts ...grpc.CallOption) (*DeleteHabitResponse, error)
	CheckIn(ctx context.Context, in *CheckInRequest, opts ...grpc.CallOption) (*CheckInResponse, error)
	GetLeaderboard(ctx context.Context, in *GetLeaderboardRequest, opts ...grpc.CallOption) (*GetLeaderboardResponse, error)
}

type streakServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStreakServiceClient(cc grpc.ClientConnInterface) StreakServiceClient {
	return &streakServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *streakServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingFullMethodName, in, opts)
}

func (c *streakServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, RegisterFullMethodName, in, opts)
}

func (c *streakServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, LoginFullMethodName, in, opts)
}

func (c *streakServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, RefreshTokenFullMethodName, in, opts)
}

func (c *streakServiceClient) CreateHabit(ctx context.Context, in *CreateHabitRequest, opts ...grpc.CallOption) (*CreateHabitResponse, error) {
	return invoke[CreateHabitResponse](ctx, c.cc, CreateHabitFullMethodName, in, opts)
}

func (c *streakServiceClient) ListHabits(ctx context.Context, in *ListHabitsRequest, opts ...grpc.CallOption) (*ListHabitsResponse, error) {
	return invoke[ListHabitsResponse](ctx, c.cc, ListHabitsFullMethodName, in, opts)
}

func (c *streakServiceClient) RenameHabit(ctx context.Context, in *RenameHabitRequest, opts ...grpc.CallOption) (*RenameHabitResponse, error) {
	return invoke[RenameHabitResponse](ctx, c.cc, RenameHabitFullMethodName, in, opts)
}

func (c *streakServiceClient) DeleteHabit(ctx context.Context, in *DeleteHabitRequest, opts ...grpc.CallOption) (*DeleteHabitResponse, error) {
	return invoke[DeleteHabitResponse](ctx, c.cc, DeleteHabitFullMethodName, in, opts)
}

func (c *streakServiceClient) CheckIn(ctx context.Context, in *CheckInRequest, opts ...grpc.CallOption) (*CheckInResponse, error) {
	return invoke[CheckInResponse](ctx, c.cc, CheckInFullMethodName, in, opts)
}

func (c *streakServiceClient) GetLeaderboard(ctx context.Context, in *GetLeaderboardRequest, opts ...grpc.CallOption) (*GetLeaderboardResponse, error) {
	return invoke[GetLeaderboardResponse](ctx, c.cc, GetLeaderboardFullMethodName, in, opts)
}
