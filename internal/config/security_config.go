// config/security_config.go
package config

import "rentease-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointRule is the access requirement of a named route. An empty Roles
// list admits any authenticated caller.
type EndpointRule struct {
	Level SecurityLevel
	Roles []domain.Role
}

// Allows reports whether role satisfies the rule.
func (r EndpointRule) Allows(role domain.Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

func access(roles ...domain.Role) EndpointRule {
	return EndpointRule{Level: SecurityAccess, Roles: roles}
}

// EndpointSecurityConfig maps route names to their required security
var EndpointSecurityConfig = map[string]EndpointRule{
	// Public
	"health":        {Level: SecurityPublic},
	"metrics":       {Level: SecurityPublic},
	"auth.register": {Level: SecurityPublic},
	"auth.login":    {Level: SecurityPublic},

	// Properties
	"properties.create":       access(domain.RoleLandlord),
	"properties.mine":         access(domain.RoleLandlord),
	"properties.available":    access(),
	"properties.get":          access(),
	"properties.update":       access(domain.RoleLandlord),
	"properties.availability": access(domain.RoleLandlord),
	"properties.relist":       access(domain.RoleLandlord),

	// Rentals
	"rentals.request": access(domain.RoleTenant),
	"rentals.list":    access(domain.RoleTenant, domain.RoleLandlord),
	"rentals.get":     access(domain.RoleTenant, domain.RoleLandlord),
	"rentals.approve": access(domain.RoleLandlord),
	"rentals.decline": access(domain.RoleLandlord),

	// Terminations
	"terminations.request": access(domain.RoleTenant),
	"terminations.pending": access(domain.RoleLandlord),
	"terminations.approve": access(domain.RoleLandlord),
	"terminations.reject":  access(domain.RoleLandlord),

	// Renewals
	"renewals.request": access(domain.RoleTenant),
	"renewals.pending": access(domain.RoleLandlord),
	"renewals.approve": access(domain.RoleLandlord),
	"renewals.reject":  access(domain.RoleLandlord),

	// Payments
	"payments.create": access(domain.RoleTenant),
	"payments.list":   access(domain.RoleTenant, domain.RoleLandlord, domain.RoleBank, domain.RoleMinistry),

	// Dashboards
	"dashboard.rent_due":     access(domain.RoleLandlord),
	"dashboard.credit_score": access(domain.RoleBank),
	"dashboard.compliance":   access(domain.RoleMinistry),
}

// GetEndpointRule returns the rule for a given route name
func GetEndpointRule(name string) EndpointRule {
	if rule, exists := EndpointSecurityConfig[name]; exists {
		return rule
	}
	// Default to requiring authentication for unknown routes
	return EndpointRule{Level: SecurityAccess}
}
