package config

import "surfboard-marketplace-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityAccess                       // Any signed-in user
	SecurityPartner                      // Partner or admin role
	SecurityAdmin                        // Admin role
)

// Satisfies reports whether a principal with the given role may call an
// endpoint at this level.
func (l SecurityLevel) Satisfies(role domain.UserRole) bool {
	switch l {
	case SecurityPublic, SecurityAccess:
		return true
	case SecurityPartner:
		return role == domain.UserRolePartner || role == domain.UserRoleAdmin
	case SecurityAdmin:
		return role == domain.UserRoleAdmin
	}
	return false
}

// EndpointSecurityConfig maps "METHOD route-template" to its required
// security level. Routes missing from the map require SecurityAccess.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"POST /auth/register": SecurityPublic,
	"POST /auth/signup":   SecurityPublic,
	"POST /auth/login":    SecurityPublic,
	"POST /auth/logout":   SecurityPublic,

	// Auth - Access Protected
	"GET /auth/me": SecurityAccess,

	// Surfboards - Public
	"GET /surfboards":      SecurityPublic,
	"GET /surfboards/{id}": SecurityPublic,

	// Surfboards - Access Protected
	"GET /surfboards/my-boards":     SecurityAccess,
	"POST /surfboards":              SecurityAccess,
	"PUT /surfboards/{id}":          SecurityAccess,
	"DELETE /surfboards/{id}":       SecurityAccess,
	"POST /surfboards/{id}/rent":    SecurityAccess,
	"POST /surfboards/{id}/store":   SecurityAccess,
	"DELETE /surfboards/{id}/store": SecurityAccess,

	// Rentals - Access Protected
	"POST /rentals":            SecurityAccess,
	"GET /rentals":             SecurityAccess,
	"GET /rentals/{id}":        SecurityAccess,
	"PUT /rentals/{id}/status": SecurityAccess,

	// Partners - Public
	"GET /partners":      SecurityPublic,
	"GET /partners/{id}": SecurityPublic,

	// Partners - Partner role
	"POST /partners/register":                    SecurityPartner,
	"PUT /partners/{id}":                         SecurityPartner,
	"GET /partners/{id}/stored-surfboards":       SecurityPartner,
	"GET /partners/storage-requests":             SecurityPartner,
	"PUT /partners/storage-requests/{requestId}": SecurityPartner,

	// Partners - Admin
	"PUT /partners/{id}/verify": SecurityAdmin,

	// Ops
	"GET /healthz": SecurityPublic,
	"GET /metrics": SecurityPublic,
}

// LevelFor returns the security level of a route, defaulting to SecurityAccess.
func LevelFor(method, routeTemplate string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[method+" "+routeTemplate]; ok {
		return level
	}
	return SecurityAccess
}
