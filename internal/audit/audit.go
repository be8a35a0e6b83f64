package audit

import (
	"context"

	"github.com/faeflux/faeflux-one/model"
)

// Entry describes one privileged action to be recorded. UserID is nil for
// system actions.
type Entry struct {
	UserID       *uint
	Action       model.AuditAction
	ResourceType string
	ResourceID   *uint
	Details      string
	IPAddress    string
	UserAgent    string
}

// ListOptions filters and pages the audit trail.
type ListOptions struct {
	ResourceType string
	Action       model.AuditAction
	Skip         int
	Limit        int
}

// Recorder appends immutable audit records. A failed write is a hard failure
// of the enclosing operation; callers must not ignore the returned error.
type Recorder struct {
	repo AuditLogRepository
}

func NewRecorder(repo AuditLogRepository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(ctx context.Context, entry Entry) error {
	return r.repo.RecordEvent(ctx, &model.AuditLog{
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      entry.Details,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
	})
}

func (r *Recorder) List(ctx context.Context, opts ListOptions) ([]*model.AuditLog, error) {
	return r.repo.Find(ctx, opts)
}
