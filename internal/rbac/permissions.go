package rbac

import "github.com/faeflux/faeflux-one/model"

// Permission is an atomic capability scoped to a resource and action.
type Permission string

const (
	PermUserView   Permission = "user:view"
	PermUserCreate Permission = "user:create"
	PermUserEdit   Permission = "user:edit"
	PermUserDelete Permission = "user:delete"

	PermAssetView   Permission = "asset:view"
	PermAssetCreate Permission = "asset:create"
	PermAssetEdit   Permission = "asset:edit"
	PermAssetDelete Permission = "asset:delete"

	PermTicketView   Permission = "ticket:view"
	PermTicketCreate Permission = "ticket:create"
	PermTicketEdit   Permission = "ticket:edit"
	PermTicketDelete Permission = "ticket:delete"

	PermSiteView   Permission = "site:view"
	PermSiteCreate Permission = "site:create"
	PermSiteEdit   Permission = "site:edit"
	PermSiteDelete Permission = "site:delete"

	PermAgentView   Permission = "agent:view"
	PermAgentManage Permission = "agent:manage"

	PermSystemAdmin Permission = "system:admin"
	PermAuditView   Permission = "audit:view"
)

// AllPermissions is the full permission universe. Admin holds every entry.
var AllPermissions = []Permission{
	PermUserView, PermUserCreate, PermUserEdit, PermUserDelete,
	PermAssetView, PermAssetCreate, PermAssetEdit, PermAssetDelete,
	PermTicketView, PermTicketCreate, PermTicketEdit, PermTicketDelete,
	PermSiteView, PermSiteCreate, PermSiteEdit, PermSiteDelete,
	PermAgentView, PermAgentManage,
	PermSystemAdmin, PermAuditView,
}

var rolePermissions = map[model.UserRole][]Permission{
	model.RoleAdmin: AllPermissions,
	model.RoleManager: {
		PermUserView, PermUserCreate, PermUserEdit,
		PermAssetView, PermAssetCreate, PermAssetEdit, PermAssetDelete,
		PermTicketView, PermTicketCreate, PermTicketEdit,
		PermSiteView, PermSiteCreate, PermSiteEdit,
		PermAgentView,
		PermAuditView,
	},
	model.RoleAnalyst: {
		PermUserView,
		PermAssetView, PermAssetEdit,
		PermTicketView, PermTicketCreate, PermTicketEdit,
		PermSiteView,
		PermAgentView,
	},
	model.RoleViewer: {
		PermUserView,
		PermAssetView,
		PermTicketView,
		PermSiteView,
	},
}

// permissionSets is built once at init and read-only afterwards, so lookups
// are safe for unsynchronized concurrent use by request handlers.
var permissionSets map[model.UserRole]map[Permission]struct{}

func init() {
	permissionSets = make(map[model.UserRole]map[Permission]struct{}, len(rolePermissions))
	for role, perms := range rolePermissions {
		set := make(map[Permission]struct{}, len(perms))
		for _, perm := range perms {
			set[perm] = struct{}{}
		}
		permissionSets[role] = set
	}
}

// RolePermissions returns the permission set of role. Unknown roles resolve
// to an empty set.
func RolePermissions(role model.UserRole) []Permission {
	return rolePermissions[role]
}

// HasPermission reports whether user's role grants perm. Unknown roles hold
// no permissions.
func HasPermission(user *model.User, perm Permission) bool {
	if user == nil {
		return false
	}
	set, ok := permissionSets[user.Role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}
