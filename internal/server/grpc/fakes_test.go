package grpc

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/server/services"
)

// ---- fakes ----

type fakeUsers struct {
	regResp *models.User
	regErr  error

	loginResp *services.TokenPair
	loginErr  error

	refreshResp *services.TokenPair
	refreshErr  error

	// tokens maps access tokens to user ids; anything else is invalid.
	tokens map[string]string
}

func (f *fakeUsers) Register(_ context.Context, _, _ string) (*models.User, error) {
	return f.regResp, f.regErr
}

func (f *fakeUsers) Login(_ context.Context, _, _ string) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeUsers) RefreshToken(_ context.Context, _ string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeUsers) Authenticate(token string) (string, error) {
	if token == "expired" {
		return "", common.ErrTokenExpired
	}
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return "", common.ErrInvalidToken
}

type fakeHabits struct {
	lastUserID string

	createResp *services.HabitView
	listResp   []services.HabitView
	renameResp *services.HabitView
	checkResp  *services.CheckInResult
	err        error
}

func (f *fakeHabits) Create(_ context.Context, userID, _ string) (*services.HabitView, error) {
	f.lastUserID = userID
	return f.createResp, f.err
}

func (f *fakeHabits) List(_ context.Context, userID string) ([]services.HabitView, error) {
	f.lastUserID = userID
	return f.listResp, f.err
}

func (f *fakeHabits) Rename(_ context.Context, userID, _, _ string) (*services.HabitView, error) {
	f.lastUserID = userID
	return f.renameResp, f.err
}

func (f *fakeHabits) Delete(_ context.Context, userID, _ string) error {
	f.lastUserID = userID
	return f.err
}

func (f *fakeHabits) CheckIn(_ context.Context, userID, _ string) (*services.CheckInResult, error) {
	f.lastUserID = userID
	return f.checkResp, f.err
}

type fakeLeaderboard struct {
	resp      *services.Leaderboard
	err       error
	lastLimit int

	// When release is set, GetLeaderboard signals entered and waits for it.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeLeaderboard) GetLeaderboard(_ context.Context, limit int) (*services.Leaderboard, error) {
	if f.release != nil {
		close(f.entered)
		<-f.release
	}
	f.lastLimit = limit
	return f.resp, f.err
}
