package model

import "time"

// TokenManager issues and verifies signed session tokens. A token is a
// self-contained credential carrying the user id and an expiry, there is no
// server-side session state.
type TokenManager interface {
	Issue(userID int64) (string, time.Time, error)
	Parse(token string) (int64, error)
}
