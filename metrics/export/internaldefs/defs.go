package internaldefs

import (
	goACL "github.com/MrEthical07/goACL"
)

// CounterDef binds a goACL metric ID to an exported counter name.
type CounterDef struct {
	ID   goACL.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported ACL counter.
var CounterDefs = []CounterDef{
	{ID: goACL.MetricRoleGranted, Name: "goacl_role_granted_total", Help: "Successful role grants."},
	{ID: goACL.MetricRoleRevoked, Name: "goacl_role_revoked_total", Help: "Successful role revocations."},
	{ID: goACL.MetricRolesSet, Name: "goacl_roles_set_total", Help: "Bulk mask assignments."},
	{ID: goACL.MetricMemberRemoved, Name: "goacl_member_removed_total", Help: "Member entry removals."},
	{ID: goACL.MetricRoleCheck, Name: "goacl_role_check_total", Help: "Role membership checks."},
	{ID: goACL.MetricPermissionRead, Name: "goacl_permission_read_total", Help: "Permission mask reads."},
	{ID: goACL.MetricMembersSnapshot, Name: "goacl_members_snapshot_total", Help: "Member enumerations."},
	{ID: goACL.MetricInvalidRole, Name: "goacl_invalid_role_total", Help: "Operations rejected for an out-of-range role index."},
	{ID: goACL.MetricMemberNotFound, Name: "goacl_member_not_found_total", Help: "Destructive operations targeting an unknown principal."},
}
