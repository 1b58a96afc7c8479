// Package tokens keeps the CLI session (username plus token pair) in the OS
// keyring so that consecutive commands stay logged in.
package tokens

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "streakkeeper"
	sessionKey  = "session"
)

var (
	// ErrNotLoggedIn is returned when no session is stored.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

type Session struct {
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// KeyringStore stores one Session per server address.
type KeyringStore struct {
	server string
}

func NewKeyringStore(server string) *KeyringStore {
	return &KeyringStore{server: server}
}

func (s *KeyringStore) key() string {
	return sessionKey + "@" + s.server
}

// Load returns the stored session or ErrNotLoggedIn.
func (s *KeyringStore) Load() (*Session, error) {
	raw, err := keyring.Get(serviceName, s.key())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("corrupt session in keyring: %w", err)
	}
	return &sess, nil
}

func (s *KeyringStore) Save(sess *Session) error {
	if sess == nil || sess.AccessToken == "" {
		return errors.New("session has no access token")
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := keyring.Set(serviceName, s.key(), string(b)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

// Delete removes the stored session. Deleting a missing session is not an
// error.
func (s *KeyringStore) Delete() error {
	err := keyring.Delete(serviceName, s.key())
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete session from keyring: %w", err)
	}
	return nil
}
