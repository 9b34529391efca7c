package types

import "strings"

type UserRole string

const (
	RoleFarmer         UserRole = "FARMER"
	RoleAgriIndustry   UserRole = "AGRICULTURAL_INDUSTRY"
	RolePharmaIndustry UserRole = "PHARMACEUTICAL_INDUSTRY"
	RoleAdmin          UserRole = "ADMIN"
)

func AllRoles() []UserRole {
	return []UserRole{RoleFarmer, RoleAgriIndustry, RolePharmaIndustry, RoleAdmin}
}

// ParseUserRole maps free-form input onto a known role, defaulting to FARMER.
func ParseUserRole(s string) UserRole {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAgriIndustry:
		return RoleAgriIndustry
	case RolePharmaIndustry:
		return RolePharmaIndustry
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleFarmer
	}
}
