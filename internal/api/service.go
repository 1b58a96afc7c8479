package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "streakkeeper.v1.StreakService"

// Full method names, as seen by interceptors.
const (
	PingFullMethodName           = "/" + ServiceName + "/Ping"
	RegisterFullMethodName       = "/" + ServiceName + "/Register"
	LoginFullMethodName          = "/" + ServiceName + "/Login"
	RefreshTokenFullMethodName   = "/" + ServiceName + "/RefreshToken"
	CreateHabitFullMethodName    = "/" + ServiceName + "/CreateHabit"
	ListHabitsFullMethodName     = "/" + ServiceName + "/ListHabits"
	RenameHabitFullMethodName    = "/" + ServiceName + "/RenameHabit"
	DeleteHabitFullMethodName    = "/" + ServiceName + "/DeleteHabit"
	CheckInFullMethodName        = "/" + ServiceName + "/CheckIn"
	GetLeaderboardFullMethodName = "/" + ServiceName + "/GetLeaderboard"
)

// StreakServiceServer is implemented by the server.
type StreakServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	CreateHabit(context.Context, *CreateHabitRequest) (*CreateHabitResponse, error)
	ListHabits(context.Context, *ListHabitsRequest) (*ListHabitsResponse, error)
	RenameHabit(context.Context, *RenameHabitRequest) (*RenameHabitResponse, error)
	DeleteHabit(context.Context, *DeleteHabitRequest) (*DeleteHabitResponse, error)
	CheckIn(context.Context, *CheckInRequest) (*CheckInResponse, error)
	GetLeaderboard(context.Context, *GetLeaderboardRequest) (*GetLeaderboardResponse, error)
}

func RegisterStreakServiceServer(s grpc.ServiceRegistrar, srv StreakServiceServer) {
	s.RegisterService(&StreakService_ServiceDesc, srv)
}

func unary[Req, Resp any](name string, call func(StreakServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(StreakServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// StreakService_ServiceDesc is the grpc.ServiceDesc for StreakService.
var StreakService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StreakServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", StreakServiceServer.Ping),
		unary("Register", StreakServiceServer.Register),
		unary("Login", StreakServiceServer.Login),
		unary("RefreshToken", StreakServiceServer.RefreshToken),
		unary("CreateHabit", StreakServiceServer.CreateHabit),
		unary("ListHabits", StreakServiceServer.ListHabits),
		unary("RenameHabit", StreakServiceServer.RenameHabit),
		unary("DeleteHabit", StreakServiceServer.DeleteHabit),
		unary("CheckIn", StreakServiceServer.CheckIn),
		unary("GetLeaderboard", StreakServiceServer.GetLeaderboard),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "streakkeeper/v1/streak",
}
