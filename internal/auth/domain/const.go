// Package domain defines the capability-based authorization model.
// Implements capability grants with wildcard resource matching, constraint
// evaluation, and the session credential payload bound to those grants.
package domain

// Action defines the types of operations that can be performed on resources.
// Actions are granted through capabilities and checked at authorization time.
type Action string

const (
	// ReadAction allows reading resource data.
	ReadAction Action = "read"

	// WriteAction allows creating or updating resource data.
	WriteAction Action = "write"

	// DeleteAction allows removing resource data.
	DeleteAction Action = "delete"

	// AdminAction allows administrative operations on a resource.
	AdminAction Action = "admin"

	// WildcardAction matches every action.
	WildcardAction Action = "*"
)

// WildcardResource matches every resource.
const WildcardResource = "*"

// PrincipalType identifies the kind of principal a session credential represents.
type PrincipalType string

const (
	// SuperAdminPrincipal is a platform operator with cross-tenant access.
	SuperAdminPrincipal PrincipalType = "super_admin"

	// TenantAdminPrincipal administers a single tenant.
	TenantAdminPrincipal PrincipalType = "tenant_admin"

	// TenantUserPrincipal is a regular member of a tenant.
	TenantUserPrincipal PrincipalType = "tenant_user"
)

// Valid reports whether the principal type is one of the known values.
func (p PrincipalType) Valid() bool {
	switch p {
	case SuperAdminPrincipal, TenantAdminPrincipal, TenantUserPrincipal:
		return true
	default:
		return false
	}
}
