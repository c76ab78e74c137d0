// File: utils/constants.go
package utils

import "time"

// AuthTokenPrefix is the storage key prefix for persisted upstream bearer tokens.
const AuthTokenPrefix = "portal:token:"

// AuthUserPrefix is the storage key prefix for the persisted serialized user record.
const AuthUserPrefix = "portal:user:"

// WizardSessionPrefix is the storage key prefix for booking wizard sessions.
const WizardSessionPrefix = "portal:wizard:"

// WizardLockPrefix is the storage key prefix for in-flight booking submission locks.
const WizardLockPrefix = "portal:wizard:lock:"

// DirectoryCacheKey is the cache key holding the upstream business directory.
const DirectoryCacheKey = "portal:directory"

// AuthSessionTTL is the time-to-live for persisted auth state.
const AuthSessionTTL = 7 * 24 * time.Hour

// WizardSessionTTL is the time-to-live for a wizard session; refreshed on
// every transition.
const WizardSessionTTL = 30 * time.Minute

// WizardLockTTL bounds how long a submission lock may outlive a crashed request.
const WizardLockTTL = 30 * time.Second
