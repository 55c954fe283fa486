package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims of a contract analyzer user or API client.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Roles    []string  `json:"roles"`
}

// Roles known to the service.
const (
	// RoleAdmin manages tenant settings and may do everything an analyst can.
	RoleAdmin = "admin"
	// RoleAnalyst submits contracts for analysis.
	RoleAnalyst = "analyst"
	// RoleViewer reads analyses, dashboards and alerts.
	RoleViewer = "viewer"
	// RoleAPIClient is a machine integration that submits contracts.
	RoleAPIClient = "api_client"
)

// WriteRoles may submit contracts.
var WriteRoles = []string{RoleAdmin, RoleAnalyst, RoleAPIClient}

// ReadRoles may read tenant data.
var ReadRoles = []string{RoleAdmin, RoleAnalyst, RoleViewer, RoleAPIClient}

// HasRole reports whether the claims include role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether the claims include at least one of roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}
