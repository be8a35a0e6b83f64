package audit

import (
	"context"

	"github.com/faeflux/faeflux-one/model"
	"github.com/faeflux/faeflux-one/params"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	RecordEvent(ctx context.Context, event *model.AuditLog) error
	Find(ctx context.Context, opts ListOptions) ([]*model.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) RecordEvent(ctx context.Context, event *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *auditLogRepository) Find(ctx context.Context, opts ListOptions) ([]*model.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if opts.ResourceType != "" {
		query = query.Where("resource_type = ?", opts.ResourceType)
	}
	if opts.Action != "" {
		query = query.Where("action = ?", opts.Action)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = params.DefaultPageSize
	}
	var logs []*model.AuditLog
	err := query.Order("created_at DESC").Offset(opts.Skip).Limit(limit).Find(&logs).Error
	return logs, err
}
