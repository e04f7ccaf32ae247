package service

import (
	"context"
	"log/slog"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"
)

// AuditService writes security-relevant actions to the structured log.
// A nil *AuditService discards everything.
type AuditService struct {
	log *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(l *slog.Logger) *AuditService {
	if l == nil {
		l = logger.Get()
	}
	return &AuditService{log: l.With("stream", "audit")}
}

// Log emits one audit entry
func (s *AuditService) Log(ctx context.Context, e domain.AuditEntry) {
	if s == nil {
		return
	}

	attrs := []any{
		"action", e.Action,
		"category", e.Category,
		"user_id", e.UserID,
	}
	if e.IP != "" {
		attrs = append(attrs, "ip", e.IP)
	}
	if len(e.Details) > 0 {
		attrs = append(attrs, "details", e.Details)
	}

	s.log.InfoContext(ctx, "audit", attrs...)
}

// LogAuth logs a register/login/logout event
func (s *AuditService) LogAuth(ctx context.Context, userID int64, action string, details map[string]any) {
	s.Log(ctx, domain.AuditEntry{
		UserID:   userID,
		Action:   action,
		Category: domain.AuditCategoryAuth,
		Details:  details,
	})
}

// LogTaskDenied logs a blocked attempt to touch someone else's task
func (s *AuditService) LogTaskDenied(ctx context.Context, userID, taskID int64, op string) {
	s.Log(ctx, domain.AuditEntry{
		UserID:   userID,
		Action:   domain.AuditActionTaskDenied,
		Category: domain.AuditCategoryTask,
		Details:  map[string]any{"task_id": taskID, "op": op},
	})
}

// LogAdminAction logs an admin action
func (s *AuditService) LogAdminAction(ctx context.Context, adminID int64, action string, targetUserID int64, details map[string]any) {
	if details == nil {
		details = make(map[string]any)
	}
	details["admin_id"] = adminID
	details["target_user_id"] = targetUserID

	s.Log(ctx, domain.AuditEntry{
		UserID:   adminID,
		Action:   action,
		Category: domain.AuditCategoryAdmin,
		Details:  details,
	})
}
