package rbac

import (
	"testing"

	"github.com/faeflux/faeflux-one/model"
)

func TestAdminHoldsAllPermissions(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin}
	for _, perm := range AllPermissions {
		if !HasPermission(admin, perm) {
			t.Errorf("admin missing %q", perm)
		}
	}
}

func TestViewerIsReadOnly(t *testing.T) {
	viewer := &model.User{Role: model.RoleViewer}

	granted := []Permission{PermUserView, PermAssetView, PermTicketView, PermSiteView}
	for _, perm := range granted {
		if !HasPermission(viewer, perm) {
			t.Errorf("viewer missing %q", perm)
		}
	}

	denied := []Permission{
		PermUserCreate, PermUserDelete,
		PermAssetCreate, PermAssetEdit, PermAssetDelete,
		PermTicketCreate, PermTicketEdit,
		PermAgentView, PermAgentManage,
		PermSystemAdmin, PermAuditView,
	}
	for _, perm := range denied {
		if HasPermission(viewer, perm) {
			t.Errorf("viewer unexpectedly granted %q", perm)
		}
	}
}

func TestManagerCannotDeleteUsers(t *testing.T) {
	manager := &model.User{Role: model.RoleManager}
	if HasPermission(manager, PermUserDelete) {
		t.Error("manager should not delete users")
	}
	if HasPermission(manager, PermSystemAdmin) {
		t.Error("manager should not hold system:admin")
	}
	if !HasPermission(manager, PermAssetDelete) {
		t.Error("manager should delete assets")
	}
	if !HasPermission(manager, PermAuditView) {
		t.Error("manager should view the audit trail")
	}
}

func TestAnalystPermissions(t *testing.T) {
	analyst := &model.User{Role: model.RoleAnalyst}
	if !HasPermission(analyst, PermTicketCreate) {
		t.Error("analyst should create tickets")
	}
	if !HasPermission(analyst, PermAssetEdit) {
		t.Error("analyst should edit assets")
	}
	if HasPermission(analyst, PermAssetCreate) {
		t.Error("analyst should not create assets")
	}
	if HasPermission(analyst, PermSiteEdit) {
		t.Error("analyst should not edit sites")
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	stranger := &model.User{Role: model.UserRole("superuser")}
	for _, perm := range AllPermissions {
		if HasPermission(stranger, perm) {
			t.Errorf("unknown role granted %q", perm)
		}
	}
	if HasPermission(nil, PermUserView) {
		t.Error("nil user granted a permission")
	}
	if perms := RolePermissions(model.UserRole("superuser")); len(perms) != 0 {
		t.Errorf("unknown role resolved to %d permissions", len(perms))
	}
}
