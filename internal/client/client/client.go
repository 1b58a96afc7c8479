// Package client is the CLI's view of the streakkeeper gRPC API. It keeps the
// current token pair, attaches the access token to every call and refreshes
// it transparently once it expires.
package client

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
)

// Client is what the CLI commands need from the server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (TokenPair, error)
	ListHabits(ctx context.Context) ([]api.Habit, error)
	CreateHabit(ctx context.Context, name string) (*api.Habit, error)
	RenameHabit(ctx context.Context, id, name string) (*api.Habit, error)
	DeleteHabit(ctx context.Context, id string) error
	CheckIn(ctx context.Context, id string) (*api.CheckInResponse, error)
	Leaderboard(ctx context.Context, limit int) (*api.GetLeaderboardResponse, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenListener is told about every token pair the client obtains, so the
// caller can persist rotated refresh tokens.
type TokenListener func(TokenPair)
