package repository

import (
	"context"
	"time"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentRepository interface {
	// CreateWithUsage persists the record and commits both usage counters
	// in one transaction. Either everything lands or nothing does.
	CreateWithUsage(ctx context.Context, content *models.GeneratedContent, dailyLimit, monthlyLimit int) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.GeneratedContent, error)
	// DeleteOwned removes the row only when userID owns it. Missing rows
	// and rows owned by someone else report false without error, so the
	// caller can stay idempotent without leaking existence.
	DeleteOwned(ctx context.Context, contentID, userID uuid.UUID) (bool, error)
}

type contentRepository struct {
	db    *gorm.DB
	usage UsageRepository
}

func NewContentRepository(db *gorm.DB, usage UsageRepository) ContentRepository {
	return &contentRepository{db: db, usage: usage}
}

func (r *contentRepository) CreateWithUsage(ctx context.Context, content *models.GeneratedContent, dailyLimit, monthlyLimit int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(content).Error; err != nil {
			return apperrors.Wrap(err, "failed to save generated content")
		}
		return r.usage.IncrementTx(tx, content.UserID, time.Now(), dailyLimit, monthlyLimit)
	})
	return err
}

func (r *contentRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.GeneratedContent, error) {
	var records []models.GeneratedContent
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records)

	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "failed to list generated content")
	}

	return records, nil
}

func (r *contentRepository) DeleteOwned(ctx context.Context, contentID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", contentID, userID).
		Delete(&models.GeneratedContent{})

	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "failed to delete generated content")
	}

	return result.RowsAffected > 0, nil
}
