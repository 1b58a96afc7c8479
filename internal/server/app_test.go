package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/dmitrijs2005/streakkeeper/internal/server/config"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeManager keeps the real repositories and stubs out migrations.
type fakeManager struct {
	*repomanager.PostgresRepositoryManager
	migrateErr error
	migrated   bool
}

func newFakeManager(err error) *fakeManager {
	return &fakeManager{PostgresRepositoryManager: repomanager.NewPostgresRepositoryManager(), migrateErr: err}
}

func (f *fakeManager) RunMigrations(context.Context, *sql.DB) error {
	f.migrated = true
	return f.migrateErr
}

type fakeRunner struct {
	err     error
	stopped chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	close(f.stopped)
	return nil
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = "postgres://test"
	return c
}

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	old := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { sqlOpen = old })
	return mock
}

func TestNewApp_WiresBothServers(t *testing.T) {
	withMockDB(t)
	m := newFakeManager(nil)

	app, err := NewApp(context.Background(), testConfig(), logging.Nop(), m)
	require.NoError(t, err)
	assert.True(t, m.migrated)
	assert.Contains(t, app.runners, "grpc")
	assert.Contains(t, app.runners, "http")
}

func TestNewApp_MigrationFailureClosesDB(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectClose()

	_, err := NewApp(context.Background(), testConfig(), logging.Nop(), newFakeManager(errors.New("boom")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_OpenFailure(t *testing.T) {
	old := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") }
	t.Cleanup(func() { sqlOpen = old })

	_, err := NewApp(context.Background(), testConfig(), logging.Nop(), newFakeManager(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewApp_BadTimezone(t *testing.T) {
	c := testConfig()
	c.Timezone = "Mars/Olympus"

	_, err := NewApp(context.Background(), c, logging.Nop(), newFakeManager(nil))
	assert.Error(t, err)
}

func TestRun_StopsAllOnCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	a := &fakeRunner{stopped: make(chan struct{})}
	b := &fakeRunner{stopped: make(chan struct{})}
	app := &App{logger: logging.Nop(), db: db, runners: map[string]runner{"a": a, "b": b}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	<-a.stopped
	<-b.stopped
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_FailureStopsOthers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	healthy := &fakeRunner{stopped: make(chan struct{})}
	app := &App{logger: logging.Nop(), db: db, runners: map[string]runner{
		"ok":  healthy,
		"bad": &fakeRunner{err: errors.New("address in use")},
	}}

	err = app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad: address in use")
	<-healthy.stopped
}
