// Package common contains shared constants and sentinel errors used across
// streakkeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// UnknownUserName is shown on the leaderboard when an owner's profile
// cannot be resolved.
const UnknownUserName = "Unknown User"

// DateFormat is the calendar date layout used in logs and API payloads.
const DateFormat = "2006-01-02"
