//go:generate mockery --name AuditRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
)

// AuditFilter narrows a listing. Empty fields match everything.
type AuditFilter struct {
	Operation string
	Subject   string
	Limit     int
}

const maxAuditLimit = 500

type AuditRepository interface {
	Create(ctx context.Context, db *gorm.DB, rec *model.AuditRecord) error
	List(ctx context.Context, db *gorm.DB, filter AuditFilter) ([]*model.AuditRecord, error)
	// Prune deletes records created before cutoff and returns how many went.
	Prune(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}

type gormAuditRepository struct{}

func NewGormAuditRepository() AuditRepository {
	return &gormAuditRepository{}
}

func (r *gormAuditRepository) Create(ctx context.Context, db *gorm.DB, rec *model.AuditRecord) error {
	logger := middleware.GetLogger(ctx)
	if rec.AuditID == uuid.Nil {
		rec.AuditID = uuid.New()
	}
	if result := db.WithContext(ctx).Create(rec); result.Error != nil {
		logger.Error("Error creating audit record in DB",
			"error", result.Error,
			"operation", rec.Operation,
			"subject", rec.Subject,
		)
		return fmt.Errorf("gormAuditRepository.Create: %w", result.Error)
	}
	return nil
}

// List returns the newest records first.
func (r *gormAuditRepository) List(ctx context.Context, db *gorm.DB, filter AuditFilter) ([]*model.AuditRecord, error) {
	logger := middleware.GetLogger(ctx)
	limit := filter.Limit
	if limit <= 0 || limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	q := db.WithContext(ctx).Model(&model.AuditRecord{})
	if filter.Operation != "" {
		q = q.Where("operation = ?", filter.Operation)
	}
	if filter.Subject != "" {
		q = q.Where("subject = ?", filter.Subject)
	}

	var records []*model.AuditRecord
	if result := q.Order("created_at DESC").Limit(limit).Find(&records); result.Error != nil {
		logger.Error("Error listing audit records", "error", result.Error, "operation", filter.Operation)
		return nil, fmt.Errorf("gormAuditRepository.List: %w", result.Error)
	}
	return records, nil
}

func (r *gormAuditRepository) Prune(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.AuditRecord{})
	if result.Error != nil {
		logger.Error("Error pruning audit records", "error", result.Error, "cutoff", cutoff)
		return 0, fmt.Errorf("gormAuditRepository.Prune: %w", result.Error)
	}
	return result.RowsAffected, nil
}
