package user

type Permission string

const (
	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Facility and vehicle reservations
	PermissionReservationView   Permission = "reservation.view"
	PermissionReservationCreate Permission = "reservation.create"
	PermissionResourceManage    Permission = "resource.manage"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionReservationView,
		PermissionReservationCreate,
		PermissionResourceManage,
		PermissionUserManage,
	},
	RoleApprover: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionReservationView,
		PermissionReservationCreate,
	},
	RoleStaff: {
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionReservationView,
		PermissionReservationCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
