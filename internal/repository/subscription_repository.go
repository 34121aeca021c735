package repository

import (
	"context"
	"errors"
	"time"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSubscription, error)
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSubscription, error)
	Assign(ctx context.Context, userID, planID uuid.UUID) (*models.UserSubscription, error)
	Cancel(ctx context.Context, userID uuid.UUID) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSubscription, error) {
	var subscription models.UserSubscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		First(&subscription, "user_id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get subscription")
	}

	return &subscription, nil
}

func (r *subscriptionRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSubscription, error) {
	var subscription models.UserSubscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND status = 'active' AND (end_date IS NULL OR end_date > ?)", userID, time.Now()).
		First(&subscription).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get active subscription")
	}

	return &subscription, nil
}

// Assign gives the user the plan, replacing any existing subscription row.
// The unique index on user_id keeps one row per user, so an existing row
// is updated in place.
func (r *subscriptionRepository) Assign(ctx context.Context, userID, planID uuid.UUID) (*models.UserSubscription, error) {
	now := time.Now()
	renewal := now.AddDate(0, 1, 0)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserSubscription
		err := tx.First(&existing, "user_id = ?", userID).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			sub := models.UserSubscription{
				UserID:      userID,
				PlanID:      planID,
				Status:      models.SubscriptionActive,
				StartDate:   now,
				RenewalDate: &renewal,
			}
			return tx.Create(&sub).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"plan_id":      planID,
			"status":       models.SubscriptionActive,
			"start_date":   now,
			"end_date":     nil,
			"renewal_date": renewal,
			"updated_at":   now,
		}).Error
	})

	if err != nil {
		return nil, apperrors.Wrap(err, "failed to assign subscription")
	}

	return r.GetByUserID(ctx, userID)
}

func (r *subscriptionRepository) Cancel(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.UserSubscription{}).
		Where("user_id = ? AND status = 'active'", userID).
		Updates(map[string]interface{}{
			"status":     models.SubscriptionCancelled,
			"end_date":   now,
			"updated_at": now,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to cancel subscription")
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}
