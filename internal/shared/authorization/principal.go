// Package authorization carries the authenticated actor through the
// application layer and defines the permission port.
package authorization

// Principal is the authenticated actor behind a request.
type Principal struct {
	AccountID string
	Role      UserRole
}

func (p *Principal) IsStaff() bool {
	return p != nil && p.Role.IsStaff()
}

// CanAccessReport allows staff and the report's reporter.
func (p *Principal) CanAccessReport(reporterID string) bool {
	if p == nil {
		return false
	}
	return p.IsStaff() || p.AccountID == reporterID
}

// Resources and actions checked through PermissionChecker.
const (
	ResourceReport   = "report"
	ResourceSettings = "settings"

	ActionStatus   = "status"
	ActionTriage   = "triage"
	ActionAssign   = "assign"
	ActionSchedule = "schedule"
	ActionDistrict = "district"
	ActionList     = "list"
	ActionStats    = "stats"
	ActionStream   = "stream"
	ActionUpdate   = "update"
)

// PermissionChecker decides whether a role may perform action on resource.
type PermissionChecker interface {
	Enforce(role, resource, action string) (bool, error)
}
