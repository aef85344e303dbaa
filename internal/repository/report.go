package repository

import (
	"context"

	"mirador/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines persistence operations for moderation reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	HasReported(ctx context.Context, userID, postID uint) (bool, error)
	GetByPostID(ctx context.Context, postID uint) ([]models.Report, error)
	Count(ctx context.Context) (int64, error)
	DeleteByPostID(ctx context.Context, postID uint) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository returns a new ReportRepository implementation.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already reported this post")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reportRepository) HasReported(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *reportRepository) GetByPostID(ctx context.Context, postID uint) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// DeleteByPostID clears reports once a moderation decision resolves them.
func (r *reportRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Report{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
