package user

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn    Permission = "attendance.view_own"
	PermissionAttendanceViewAll    Permission = "attendance.view_all"
	PermissionAttendanceMarkOwn    Permission = "attendance.mark_own"
	PermissionAttendanceMarkAny    Permission = "attendance.mark_any"
	PermissionAttendanceSetTime    Permission = "attendance.set_time"
	PermissionAttendanceCommentOwn Permission = "attendance.comment_own"
	PermissionAttendanceCommentAny Permission = "attendance.comment_any"
	PermissionAttendanceExport     Permission = "attendance.export"
	PermissionAttendanceMonitor    Permission = "attendance.monitor"

	// Users
	PermissionUserView   Permission = "user.view"
	PermissionUserManage Permission = "user.manage"

	// Departments
	PermissionDepartmentView   Permission = "department.view"
	PermissionDepartmentManage Permission = "department.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceMarkOwn,
		PermissionAttendanceMarkAny,
		PermissionAttendanceSetTime,
		PermissionAttendanceCommentOwn,
		PermissionAttendanceCommentAny,
		PermissionAttendanceExport,
		PermissionAttendanceMonitor,
		PermissionUserView,
		PermissionUserManage,
		PermissionDepartmentView,
		PermissionDepartmentManage,
	},
	RoleViewer: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceCommentOwn,
		PermissionUserView,
		PermissionDepartmentView,
	},
	RolePost: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceMarkOwn,
		PermissionAttendanceMarkAny,
		PermissionAttendanceCommentOwn,
		PermissionAttendanceMonitor,
		PermissionUserView,
		PermissionDepartmentView,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceMarkOwn,
		PermissionAttendanceCommentOwn,
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
