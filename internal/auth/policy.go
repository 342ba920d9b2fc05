package auth

import "github.com/staffgrid/backend/internal"

// Resource and Action index the access-policy table. Keeping the role rules
// in one table instead of per-handler checks stops the duplicated variants
// from drifting apart.
type Resource string

const (
	ResourceAvailability Resource = "availability"
	ResourceTimeOff      Resource = "timeoff"
	ResourceAssignment   Resource = "shift_assignment"
	ResourceShift        Resource = "shift"
	ResourceDepartment   Resource = "department"
	ResourceEmployee     Resource = "employee"
	ResourceUser         Resource = "user"
)

type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var (
	anyRole   = []Role{RoleOwner, RoleManager, RoleEmployee}
	adminOnly = []Role{RoleOwner, RoleManager}
	ownerOnly = []Role{RoleOwner}
)

// policy maps resource and action to the roles allowed to attempt it.
// Ownership and self-scoping narrow these further inside the services:
// a role listed here may still only reach its own rows.
var policy = map[Resource]map[Action][]Role{
	ResourceAvailability: {
		ActionList:   anyRole,
		ActionRead:   anyRole,
		ActionCreate: anyRole,
		ActionUpdate: anyRole,
		ActionDelete: anyRole,
	},
	ResourceTimeOff: {
		ActionList:   anyRole,
		ActionRead:   anyRole,
		ActionCreate: anyRole,
		ActionUpdate: anyRole,
		ActionDelete: anyRole,
	},
	ResourceAssignment: {
		ActionList:   anyRole,
		ActionRead:   anyRole,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceShift: {
		ActionList:   adminOnly,
		ActionRead:   adminOnly,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceDepartment: {
		ActionList:   adminOnly,
		ActionRead:   adminOnly,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceEmployee: {
		ActionList:   adminOnly,
		ActionRead:   adminOnly,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: adminOnly,
	},
	ResourceUser: {
		ActionList:   adminOnly,
		ActionRead:   adminOnly,
		ActionCreate: adminOnly,
		ActionUpdate: adminOnly,
		ActionDelete: ownerOnly,
	},
}

// Authorize is the uniform gate every operation passes through before any
// store access. It answers "may this role attempt this action at all";
// row-level ownership is checked afterwards by the owning service.
func Authorize(caller Caller, resource Resource, action Action) error {
	actions, ok := policy[resource]
	if !ok {
		return internal.ErrForbidden
	}
	roles, ok := actions[action]
	if !ok {
		return internal.ErrForbidden
	}
	for _, r := range roles {
		if caller.Role == r {
			return nil
		}
	}
	return internal.ErrForbidden
}
