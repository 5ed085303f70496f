// Package entity contains the core business objects of the storefront client.
package entity

// Role represents the role attached to an authenticated session.
type Role string

const (
	// RoleAdmin manages the catalog, orders and discounts.
	RoleAdmin Role = "admin"
	// RoleCustomer is a regular shopper.
	RoleCustomer Role = "customer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	default:
		return false
	}
}

// ParseRole maps a stored role string to a Role. Unknown values fall back to customer.
func ParseRole(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleCustomer
	}

	return role
}
