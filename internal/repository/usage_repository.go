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

type UsageRepository interface {
	DailyCount(ctx context.Context, userID uuid.UUID, day string) (int, error)
	MonthlyCount(ctx context.Context, userID uuid.UUID, month string) (int, error)
	// IncrementTx bumps both counters for the period containing now,
	// creating rows as needed, inside the caller's transaction. The
	// increment carries the plan ceiling so two racing requests can never
	// push a counter past its limit.
	IncrementTx(tx *gorm.DB, userID uuid.UUID, now time.Time, dailyLimit, monthlyLimit int) error
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) DailyCount(ctx context.Context, userID uuid.UUID, day string) (int, error) {
	var usage models.DailyUsage
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&usage).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read daily usage")
	}

	return usage.GenerationCount, nil
}

func (r *usageRepository) MonthlyCount(ctx context.Context, userID uuid.UUID, month string) (int, error) {
	var usage models.MonthlyUsage
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month).
		First(&usage).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read monthly usage")
	}

	return usage.GenerationCount, nil
}

func (r *usageRepository) IncrementTx(tx *gorm.DB, userID uuid.UUID, now time.Time, dailyLimit, monthlyLimit int) error {
	if dailyLimit == 0 {
		return apperrors.ErrDailyLimitExceeded
	}
	if monthlyLimit == 0 {
		return apperrors.ErrMonthlyLimitExceeded
	}

	day := models.DayKey(now)
	month := models.MonthKey(now)

	if err := incrementDaily(tx, userID, day, dailyLimit); err != nil {
		return err
	}
	return incrementMonthly(tx, userID, month, monthlyLimit)
}

// incrementDaily upserts today's row. The conditional update makes the
// check-and-increment a single atomic statement: when the counter already
// sits at the limit, zero rows are affected and the transaction rolls back.
func incrementDaily(tx *gorm.DB, userID uuid.UUID, day string, limit int) error {
	if limit < 0 {
		result := tx.Exec(`
			INSERT INTO daily_usage (id, user_id, day, generation_count, created_at, updated_at)
			VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			ON CONFLICT (user_id, day) DO UPDATE
			SET generation_count = daily_usage.generation_count + 1, updated_at = CURRENT_TIMESTAMP`,
			uuid.New(), userID, day)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "failed to increment daily usage")
		}
		return nil
	}

	result := tx.Exec(`
		INSERT INTO daily_usage (id, user_id, day, generation_count, created_at, updated_at)
		VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, day) DO UPDATE
		SET generation_count = daily_usage.generation_count + 1, updated_at = CURRENT_TIMESTAMP
		WHERE daily_usage.generation_count < ?`,
		uuid.New(), userID, day, limit)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to increment daily usage")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrDailyLimitExceeded
	}
	return nil
}

func incrementMonthly(tx *gorm.DB, userID uuid.UUID, month string, limit int) error {
	if limit < 0 {
		result := tx.Exec(`
			INSERT INTO monthly_usage (id, user_id, month, generation_count, created_at, updated_at)
			VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			ON CONFLICT (user_id, month) DO UPDATE
			SET generation_count = monthly_usage.generation_count + 1, updated_at = CURRENT_TIMESTAMP`,
			uuid.New(), userID, month)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "failed to increment monthly usage")
		}
		return nil
	}

	result := tx.Exec(`
		INSERT INTO monthly_usage (id, user_id, month, generation_count, created_at, updated_at)
		VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, month) DO UPDATE
		SET generation_count = monthly_usage.generation_count + 1, updated_at = CURRENT_TIMESTAMP
		WHERE monthly_usage.generation_count < ?`,
		uuid.New(), userID, month, limit)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to increment monthly usage")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrMonthlyLimitExceeded
	}
	return nil
}
