package repository

import (
	"context"
	"errors"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanUpdate enumerates exactly the plan fields an admin may change.
type PlanUpdate struct {
	DisplayName  *string `json:"display_name"`
	Description  *string `json:"description"`
	Price        *int    `json:"price"`
	MonthlyLimit *int    `json:"monthly_limit"`
	DailyLimit   *int    `json:"daily_limit"`
	Features     *string `json:"features"`
}

type PlanRepository interface {
	List(ctx context.Context) ([]models.SubscriptionPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error)
	GetByName(ctx context.Context, name string) (*models.SubscriptionPlan, error)
	Update(ctx context.Context, id uuid.UUID, update PlanUpdate) (*models.SubscriptionPlan, error)
	Seed(ctx context.Context, plans []models.SubscriptionPlan) error
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) List(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	result := r.db.WithContext(ctx).Order("price ASC").Find(&plans)
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "failed to list plans")
	}
	return plans, nil
}

func (r *planRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	result := r.db.WithContext(ctx).First(&plan, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(result.Error, "failed to get plan by ID")
	}

	return &plan, nil
}

func (r *planRepository) GetByName(ctx context.Context, name string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	result := r.db.WithContext(ctx).First(&plan, "name = ?", name)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(result.Error, "failed to get plan by name")
	}

	return &plan, nil
}

func (r *planRepository) Update(ctx context.Context, id uuid.UUID, update PlanUpdate) (*models.SubscriptionPlan, error) {
	fields := map[string]interface{}{}
	if update.DisplayName != nil {
		fields["display_name"] = *update.DisplayName
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.MonthlyLimit != nil {
		fields["monthly_limit"] = *update.MonthlyLimit
	}
	if update.DailyLimit != nil {
		fields["daily_limit"] = *update.DailyLimit
	}
	if update.Features != nil {
		fields["features"] = *update.Features
	}

	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&models.SubscriptionPlan{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "failed to update plan")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Seed inserts plans that do not exist yet, keyed by name. Existing rows
// are left untouched so admin edits survive restarts.
func (r *planRepository) Seed(ctx context.Context, plans []models.SubscriptionPlan) error {
	for i := range plans {
		var existing models.SubscriptionPlan
		err := r.db.WithContext(ctx).First(&existing, "name = ?", plans[i].Name).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(err, "failed to check plan seed")
		}
		if err := r.db.WithContext(ctx).Create(&plans[i]).Error; err != nil {
			return apperrors.Wrap(err, "failed to seed plan")
		}
	}
	return nil
}
