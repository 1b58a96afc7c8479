package grpc

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/dmitrijs2005/streakkeeper/internal/server/auth"
	"github.com/dmitrijs2005/streakkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName)
	return &api.RegisterResponse{UserID: user.ID, Username: user.UserName}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	tokens, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) CreateHabit(ctx context.Context, req *api.CreateHabitRequest) (*api.CreateHabitResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	h, err := s.habits.Create(ctx, userID, req.Name)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.CreateHabitResponse{Habit: toAPIHabit(h)}, nil
}

func (s *GRPCServer) ListHabits(ctx context.Context, req *api.ListHabitsRequest) (*api.ListHabitsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.habits.List(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	resp := &api.ListHabitsResponse{Habits: make([]api.Habit, len(views))}
	for i := range views {
		resp.Habits[i] = toAPIHabit(&views[i])
	}
	return resp, nil
}

func (s *GRPCServer) RenameHabit(ctx context.Context, req *api.RenameHabitRequest) (*api.RenameHabitResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	h, err := s.habits.Rename(ctx, userID, req.ID, req.Name)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.RenameHabitResponse{Habit: toAPIHabit(h)}, nil
}

func (s *GRPCServer) DeleteHabit(ctx context.Context, req *api.DeleteHabitRequest) (*api.DeleteHabitResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.habits.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.DeleteHabitResponse{}, nil
}

func (s *GRPCServer) CheckIn(ctx context.Context, req *api.CheckInRequest) (*api.CheckInResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.habits.CheckIn(ctx, userID, req.HabitID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	return &api.CheckInResponse{
		Outcome:       res.Outcome.String(),
		CurrentStreak: res.Habit.CurrentStreak,
		LongestStreak: res.Habit.LongestStreak,
		LastCheckIn:   res.Habit.LastCheckIn,
	}, nil
}

func (s *GRPCServer) GetLeaderboard(ctx context.Context, req *api.GetLeaderboardRequest) (*api.GetLeaderboardResponse, error) {
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}

	lb, err := s.leaderboard.GetLeaderboard(ctx, req.Limit)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	resp := &api.GetLeaderboardResponse{
		Entries: make([]api.LeaderboardEntry, len(lb.Entries)),
		Stats: api.LeaderboardStats{
			TotalHabits:  lb.Stats.TotalHabits,
			TrackedUsers: lb.Stats.TrackedUsers,
			ActiveToday:  lb.Stats.ActiveToday,
			TopStreak:    lb.Stats.TopStreak,
		},
		GeneratedAt: lb.GeneratedAt,
	}
	for i, e := range lb.Entries {
		resp.Entries[i] = api.LeaderboardEntry{
			Rank:              e.Rank,
			Owner:             e.UserID,
			DisplayName:       e.DisplayName,
			BestCurrentStreak: e.BestCurrentStreak,
		}
	}
	return resp, nil
}

// fail logs errors the caller will only see generically and converts err
// to a status.
func (s *GRPCServer) fail(ctx context.Context, err error) error {
	switch Code(err) {
	case codes.Internal:
		s.logger.Error(ctx, "internal error", "error", err)
	case codes.Unavailable, codes.Aborted:
		s.logger.Warn(ctx, "transient error", "error", err)
	}
	return toStatus(err)
}

func userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "not authenticated")
	}
	return userID, nil
}

func toAPIHabit(v *services.HabitView) api.Habit {
	return api.Habit{
		ID:             v.ID,
		Name:           v.Name,
		CurrentStreak:  v.CurrentStreak,
		LongestStreak:  v.LongestStreak,
		LastCheckIn:    v.LastCheckIn,
		CheckedInToday: v.CheckedInToday,
		Alive:          v.Alive,
		CreatedAt:      v.CreatedAt,
	}
}
