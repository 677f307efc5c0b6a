package authorization

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleSupportAgent UserRole = "support_agent"
	RoleCustomer     UserRole = "customer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsSupportStaff reports whether the role may handle tickets they do not own.
func (r UserRole) IsSupportStaff() bool {
	return r == RoleAdmin || r == RoleSupportAgent
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupportAgent, RoleCustomer:
		return true
	}
	return false
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleCustomer
}
