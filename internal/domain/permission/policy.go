// Package permission defines which roles may perform which report actions.
package permission

import "github.com/civictrack/civictrack/internal/shared/authorization"

// Policy grants role the action on resource.
type Policy struct {
	Role     authorization.UserRole
	Resource string
	Action   string
}

var staffActions = []string{
	authorization.ActionStatus,
	authorization.ActionTriage,
	authorization.ActionAssign,
	authorization.ActionSchedule,
	authorization.ActionDistrict,
	authorization.ActionList,
	authorization.ActionStats,
	authorization.ActionStream,
}

// DefaultPolicies returns the built-in policy set. Every staff role may drive
// the report workflow and only admins may change report settings. Citizens
// and guests get nothing beyond ownership checks.
func DefaultPolicies() []Policy {
	roles := []authorization.UserRole{
		authorization.RoleOperator,
		authorization.RoleSupervisor,
		authorization.RoleAdmin,
	}
	policies := make([]Policy, 0, len(roles)*len(staffActions)+1)
	for _, role := range roles {
		for _, action := range staffActions {
			policies = append(policies, Policy{Role: role, Resource: authorization.ResourceReport, Action: action})
		}
	}
	return append(policies, Policy{
		Role:     authorization.RoleAdmin,
		Resource: authorization.ResourceSettings,
		Action:   authorization.ActionUpdate,
	})
}
