// File: utils/constants.go
package utils

import "time"

// Gin context keys set by the auth and logging middleware.
const (
	CtxUserID     = "userID"
	CtxUserRole   = "userRole"
	CtxProviderID = "providerID"
	CtxLogger     = "logger"
	CtxRequestID  = "requestID"
)

// User roles carried in access tokens.
const (
	RoleTourist       = "tourist"
	RoleProviderAdmin = "provider_admin"
	RoleSystemAdmin   = "system_admin"
)

// DefaultRepoTimeout bounds single-document store calls; scans get ScanRepoTimeout.
const (
	DefaultRepoTimeout = 5 * time.Second
	ScanRepoTimeout    = 10 * time.Second
)
