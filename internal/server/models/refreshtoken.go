package models

import "time"

type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}

// ExpiredAt reports whether the token is no longer valid at now.
func (t *RefreshToken) ExpiredAt(now time.Time) bool {
	return !t.Expires.After(now)
}
