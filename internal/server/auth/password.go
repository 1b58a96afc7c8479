package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes.
const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
)

// hashCost is a seam so tests do not pay for the default cost.
var hashCost = bcrypt.DefaultCost

func HashPassword(password string) ([]byte, error) {
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return nil, fmt.Errorf("%w: password must be %d to %d bytes long", common.ErrValidation, MinPasswordLen, MaxPasswordLen)
	}
	return bcrypt.GenerateFromPassword([]byte(password), hashCost)
}

// CheckPassword returns common.ErrInvalidCredentials on mismatch.
func CheckPassword(hash []byte, password string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrInvalidCredentials
	}
	return fmt.Errorf("compare password: %w", err)
}

var (
	decoyOnce sync.Once
	decoyHash []byte
)

// CheckDecoyPassword runs a comparison against a fixed hash so that a login
// for an unknown user costs about as much as one with a wrong password.
func CheckDecoyPassword(password string) {
	decoyOnce.Do(func() {
		decoyHash, _ = bcrypt.GenerateFromPassword([]byte("decoy-password"), hashCost)
	})
	_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(password))
}
