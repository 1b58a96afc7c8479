// Package cli implements the streakkeeper command-line client on top of
// cobra. Every command is a single round trip to the server; the session
// survives between invocations in the OS keyring.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/streakkeeper/internal/client/client"
	"github.com/dmitrijs2005/streakkeeper/internal/client/config"
	"github.com/dmitrijs2005/streakkeeper/internal/client/tokens"
)

// APIClient is the subset of client.GRPCClient the commands use.
type APIClient interface {
	client.Client
	SetTokens(client.TokenPair)
}

type SessionStore interface {
	Load() (*tokens.Session, error)
	Save(*tokens.Session) error
	Delete() error
}

// Deps builds the collaborators of a command run. Tests replace them.
type Deps struct {
	NewClient func(addr string, onTokens client.TokenListener) (APIClient, error)
	NewStore  func(addr string) SessionStore
	Stdin     io.Reader
}

// DefaultDeps talks gRPC to the configured server and keeps the session in
// the OS keyring.
func DefaultDeps(stdin io.Reader) Deps {
	return Deps{
		NewClient: func(addr string, onTokens client.TokenListener) (APIClient, error) {
			return client.NewGRPCClient(addr, onTokens)
		},
		NewStore: func(addr string) SessionStore {
			return tokens.NewKeyringStore(addr)
		},
		Stdin: stdin,
	}
}

// App is the per-invocation state shared by all commands.
type App struct {
	deps    Deps
	config  *config.Config
	client  APIClient
	store   SessionStore
	session *tokens.Session
	stdin   io.Reader
	lines   *bufio.Reader
}

func (a *App) init(cfg *config.Config) error {
	a.config = cfg
	a.store = a.deps.NewStore(cfg.ServerEndpointAddr)

	sess, err := a.store.Load()
	switch {
	case err == nil:
		a.session = sess
	case errors.Is(err, tokens.ErrNotLoggedIn):
	default:
		return err
	}

	c, err := a.deps.NewClient(cfg.ServerEndpointAddr, a.persistTokens)
	if err != nil {
		return fmt.Errorf("connect %s: %w", cfg.ServerEndpointAddr, err)
	}
	a.client = c
	if a.session != nil {
		c.SetTokens(client.TokenPair{AccessToken: a.session.AccessToken, RefreshToken: a.session.RefreshToken})
	}
	return nil
}

// persistTokens saves rotated tokens of the current session.
func (a *App) persistTokens(p client.TokenPair) {
	if a.session == nil {
		return
	}
	a.session.AccessToken = p.AccessToken
	a.session.RefreshToken = p.RefreshToken
	// Best effort: a failure only costs a new login next time.
	_ = a.store.Save(a.session)
}

func (a *App) requireSession() error {
	if a.session == nil {
		return errors.New("not logged in, run 'streakkeeper login <username>' first")
	}
	return nil
}

func (a *App) close() {
	if a.client != nil {
		_ = a.client.Close()
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
