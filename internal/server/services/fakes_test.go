package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/habits"
	profilesrepo "github.com/dmitrijs2005/streakkeeper/internal/server/repositories/profiles"
	refreshtokensrepo "github.com/dmitrijs2005/streakkeeper/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/streakkeeper/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// recordingLogger keeps warn messages so tests can assert on degraded paths.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debug(context.Context, string, ...any) {}
func (l *recordingLogger) Info(context.Context, string, ...any)  {}
func (l *recordingLogger) Error(context.Context, string, ...any) {}
func (l *recordingLogger) Warn(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
func (l *recordingLogger) With(...any) logging.Logger { return l }

// --- fake repositories ---

type fakeHabitsRepo struct {
	mu     sync.Mutex
	order  []string
	habits map[string]*models.Habit

	getErr    error
	listErr   error
	createErr error
	updateErr error

	// beforeUpdate runs before the version check, letting tests play the
	// part of a concurrent writer.
	beforeUpdate func(h *models.Habit)
	updates      int
	gets         int
}

func newFakeHabitsRepo(items ...*models.Habit) *fakeHabitsRepo {
	r := &fakeHabitsRepo{habits: map[string]*models.Habit{}}
	for _, h := range items {
		r.order = append(r.order, h.ID)
		r.habits[h.ID] = h
	}
	return r
}

func (r *fakeHabitsRepo) Create(_ context.Context, h *models.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	h.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cp := *h
	r.order = append(r.order, h.ID)
	r.habits[h.ID] = &cp
	return nil
}

func (r *fakeHabitsRepo) Get(_ context.Context, id string) (*models.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.getErr != nil {
		return nil, r.getErr
	}
	h, ok := r.habits[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *h
	return &cp, nil
}

func (r *fakeHabitsRepo) ListByUser(_ context.Context, userID string) ([]models.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []models.Habit{}
	for _, id := range r.order {
		if h, ok := r.habits[id]; ok && h.UserID == userID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHabitsRepo) ListStreakRows(_ context.Context) ([]models.StreakRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []models.StreakRow{}
	for _, id := range r.order {
		if h, ok := r.habits[id]; ok {
			out = append(out, models.StreakRow{UserID: h.UserID, CurrentStreak: h.CurrentStreak, LastCheckIn: h.LastCheckIn})
		}
	}
	return out, nil
}

func (r *fakeHabitsRepo) UpdateStreak(_ context.Context, h *models.Habit, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.habits[h.ID]
	if r.beforeUpdate != nil && ok {
		r.beforeUpdate(stored)
	}
	if !ok || stored.UserID != h.UserID || stored.Version != expectedVersion {
		return common.ErrVersionConflict
	}
	stored.CurrentStreak = h.CurrentStreak
	stored.LongestStreak = h.LongestStreak
	stored.LastCheckIn = h.LastCheckIn
	stored.Version++
	h.Version = stored.Version
	return nil
}

func (r *fakeHabitsRepo) Rename(_ context.Context, userID, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return common.ErrorNotFound
	}
	h.Name = name
	return nil
}

func (r *fakeHabitsRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.habits, id)
	return nil
}

func (r *fakeHabitsRepo) stored(id string) models.Habit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.habits[id]
}

type fakeProfilesRepo struct {
	names     map[string]string
	createErr error
	ensureErr error
	lookupErr error
	ensured   []string
	lookups   [][]string
}

func (f *fakeProfilesRepo) Create(_ context.Context, p *models.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.names == nil {
		f.names = map[string]string{}
	}
	f.names[p.UserID] = p.DisplayName
	return nil
}

func (f *fakeProfilesRepo) EnsureExists(_ context.Context, p *models.Profile) error {
	f.ensured = append(f.ensured, p.UserID)
	return f.ensureErr
}

func (f *fakeProfilesRepo) GetDisplayNames(_ context.Context, ids []string) (map[string]string, error) {
	f.lookups = append(f.lookups, ids)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	out := map[string]string{}
	for _, id := range ids {
		if n, ok := f.names[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

type fakeUsersRepo struct {
	created   []*models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUsersRepo) GetByUserName(_ context.Context, _ string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr error

	createErr error
	created   []models.RefreshToken
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID string, token string, expires time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, models.RefreshToken{UserID: userID, Token: token, Expires: expires})
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, _ string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, _ string) error {
	return f.delErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProfilesRepo
	h *fakeHabitsRepo
	r *fakeRefreshRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profilesrepo.Repository           { return m.p }
func (m *fakeRepoManager) Habits(dbx.DBTX) habits.Repository                   { return m.h }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return m.r }
