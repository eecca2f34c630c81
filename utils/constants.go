// File: utils/constants.go
package utils

import "time"

// SessionCacheTTL is the time-to-live for cached session users.
const SessionCacheTTL = 10 * time.Minute

// Context keys set by the auth middleware.
const (
	ContextUserID      = "userID"
	ContextSessionUser = "sessionUser"
)
