package constants

// Context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyOrgID     = "organization_id"
	ContextKeySessionID = "session_id"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
