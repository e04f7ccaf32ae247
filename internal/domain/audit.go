package domain

// AuditEntry is one security-relevant action, written to the audit log stream.
type AuditEntry struct {
	UserID   int64
	Action   string
	Category string
	Details  map[string]any
	IP       string
}

// Audit action categories
const (
	AuditCategoryAuth  = "auth"
	AuditCategoryTask  = "task"
	AuditCategoryAdmin = "admin"
)

// Audit actions
const (
	// Auth actions
	AuditActionRegister    = "register"
	AuditActionLogin       = "login"
	AuditActionLoginFailed = "login_failed"
	AuditActionLogout      = "logout"

	// Task actions
	AuditActionTaskDenied = "task_access_denied"

	// Admin actions
	AuditActionAdminDeleteUser = "admin_delete_user"
	AuditActionAdminPromote    = "admin_promote_user"
)
