package cli

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/dmitrijs2005/streakkeeper/internal/client/client"
)

type fakeClient struct {
	addr     string
	onTokens client.TokenListener
	tokens   client.TokenPair
	closed   bool

	registered []string
	password   string
	created    string
	renamed    [2]string
	deleted    string
	checkedIn  string
	limit      int

	habits    []api.Habit
	checkResp *api.CheckInResponse
	board     *api.GetLeaderboardResponse
	err       error
}

func (f *fakeClient) Close() error                { f.closed = true; return nil }
func (f *fakeClient) SetTokens(p client.TokenPair) { f.tokens = p }
func (f *fakeClient) Ping(context.Context) error  { return f.err }

func (f *fakeClient) Register(_ context.Context, username, password string) error {
	f.registered = append(f.registered, username)
	f.password = password
	return f.err
}

func (f *fakeClient) Login(_ context.Context, _, password string) (client.TokenPair, error) {
	f.password = password
	if f.err != nil {
		return client.TokenPair{}, f.err
	}
	p := client.TokenPair{AccessToken: "a1", RefreshToken: "r1"}
	f.tokens = p
	if f.onTokens != nil {
		f.onTokens(p)
	}
	return p, nil
}

func (f *fakeClient) ListHabits(context.Context) ([]api.Habit, error) {
	return f.habits, f.err
}

func (f *fakeClient) CreateHabit(_ context.Context, name string) (*api.Habit, error) {
	f.created = name
	if f.err != nil {
		return nil, f.err
	}
	return &api.Habit{ID: "h1", Name: name}, nil
}

func (f *fakeClient) RenameHabit(_ context.Context, id, name string) (*api.Habit, error) {
	f.renamed = [2]string{id, name}
	if f.err != nil {
		return nil, f.err
	}
	return &api.Habit{ID: id, Name: name}, nil
}

func (f *fakeClient) DeleteHabit(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeClient) CheckIn(_ context.Context, id string) (*api.CheckInResponse, error) {
	f.checkedIn = id
	if f.err != nil {
		return nil, f.err
	}
	return f.checkResp, nil
}

func (f *fakeClient) Leaderboard(_ context.Context, limit int) (*api.GetLeaderboardResponse, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.board, nil
}
