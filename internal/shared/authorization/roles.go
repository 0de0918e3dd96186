package authorization

type UserRole string

const (
	RoleCitizen    UserRole = "citizen"
	RoleGuest      UserRole = "guest"
	RoleOperator   UserRole = "operator"
	RoleSupervisor UserRole = "supervisor"
	RoleAdmin      UserRole = "admin"
)

var validRoles = map[UserRole]bool{
	RoleCitizen:    true,
	RoleGuest:      true,
	RoleOperator:   true,
	RoleSupervisor: true,
	RoleAdmin:      true,
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	return validRoles[r]
}

// IsStaff reports whether the role belongs to municipal staff.
func (r UserRole) IsStaff() bool {
	return r == RoleOperator || r == RoleSupervisor || r == RoleAdmin
}

// ParseUserRole falls back to citizen for unknown values.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleCitizen
}
