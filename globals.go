package campdirector

import (
	"os"
)

const (
	// User roles. Admins bypass every ownership check; plain users
	// may only mutate what they own.
	RoleUser  = "user"
	RoleAdmin = "admin"

	// Header names for API key authentication.
	APIUserHeader = "Api-User"
	APIKeyHeader  = "Api-Key"

	// RatingMin and RatingMax bound review ratings, inclusive.
	RatingMin = 1
	RatingMax = 10

	DefaultServiceConfigurationFileName = "/etc/campdirector.yml"

	HomeEnvironmentVariable = "CD_HOME"
)

// ValidUserRoles lists the roles a user document may carry.
var ValidUserRoles = []string{RoleUser, RoleAdmin}

// BuildRevision is set at compile time with -ldflags.
var BuildRevision = ""

// FindHome returns the home directory of the campdirector checkout or
// install, as set in the environment. Returns the empty string when
// unset.
func FindHome() string {
	return os.Getenv(HomeEnvironmentVariable)
}

// IsValidUserRole reports if the given role is one the platform
// understands.
func IsValidUserRole(r string) bool {
	for _, role := range ValidUserRoles {
		if r == role {
			return true
		}
	}
	return false
}
