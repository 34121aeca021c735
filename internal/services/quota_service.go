package services

import (
	"context"
	"errors"
	"time"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"
	"content-api/internal/repository"

	"github.com/google/uuid"
)

// QuotaService resolves a user's plan and decides whether a new generation
// fits under its daily and monthly caps. The actual commit of the counters
// happens in the content repository's transaction; this service only reads.
type QuotaService interface {
	PlanFor(ctx context.Context, userID uuid.UUID) (*models.SubscriptionPlan, error)
	CheckQuota(ctx context.Context, userID uuid.UUID, plan *models.SubscriptionPlan) error
	UsageStats(ctx context.Context, userID uuid.UUID, plan *models.SubscriptionPlan) (*UsageStats, error)
}

type UsageStats struct {
	Plan             string `json:"plan"`
	DailyCount       int    `json:"daily_count"`
	DailyLimit       int    `json:"daily_limit"`
	DailyRemaining   int    `json:"daily_remaining"`
	MonthlyCount     int    `json:"monthly_count"`
	MonthlyLimit     int    `json:"monthly_limit"`
	MonthlyRemaining int    `json:"monthly_remaining"`
}

type quotaService struct {
	subscriptionRepo repository.SubscriptionRepository
	usageRepo        repository.UsageRepository
	defaultPlan      *models.SubscriptionPlan
	now              func() time.Time
}

func NewQuotaService(
	subscriptionRepo repository.SubscriptionRepository,
	usageRepo repository.UsageRepository,
	defaultPlan *models.SubscriptionPlan,
) QuotaService {
	return &quotaService{
		subscriptionRepo: subscriptionRepo,
		usageRepo:        usageRepo,
		defaultPlan:      defaultPlan,
		now:              time.Now,
	}
}

// PlanFor returns the plan of the user's active subscription. Users without
// one fall back to the default free plan, which never touches the database.
func (s *quotaService) PlanFor(ctx context.Context, userID uuid.UUID) (*models.SubscriptionPlan, error) {
	subscription, err := s.subscriptionRepo.GetActiveByUserID(ctx, userID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return s.defaultPlan, nil
	}
	if err != nil {
		return nil, err
	}

	return &subscription.Plan, nil
}

// CheckQuota denies when either counter has reached its cap. The daily cap
// is checked first so a user over both limits always sees the daily error.
func (s *quotaService) CheckQuota(ctx context.Context, userID uuid.UUID, plan *models.SubscriptionPlan) error {
	now := s.now()

	daily, err := s.usageRepo.DailyCount(ctx, userID, models.DayKey(now))
	if err != nil {
		return err
	}
	if limitReached(daily, plan.DailyLimit) {
		return apperrors.ErrDailyLimitExceeded
	}

	monthly, err := s.usageRepo.MonthlyCount(ctx, userID, models.MonthKey(now))
	if err != nil {
		return err
	}
	if limitReached(monthly, plan.MonthlyLimit) {
		return apperrors.ErrMonthlyLimitExceeded
	}

	return nil
}

func (s *quotaService) UsageStats(ctx context.Context, userID uuid.UUID, plan *models.SubscriptionPlan) (*UsageStats, error) {
	now := s.now()

	daily, err := s.usageRepo.DailyCount(ctx, userID, models.DayKey(now))
	if err != nil {
		return nil, err
	}
	monthly, err := s.usageRepo.MonthlyCount(ctx, userID, models.MonthKey(now))
	if err != nil {
		return nil, err
	}

	return &UsageStats{
		Plan:             plan.Name,
		DailyCount:       daily,
		DailyLimit:       plan.DailyLimit,
		DailyRemaining:   remaining(daily, plan.DailyLimit),
		MonthlyCount:     monthly,
		MonthlyLimit:     plan.MonthlyLimit,
		MonthlyRemaining: remaining(monthly, plan.MonthlyLimit),
	}, nil
}

// limitReached treats a negative limit as unlimited and a zero limit as a
// hard block.
func limitReached(count, limit int) bool {
	if limit < 0 {
		return false
	}
	return count >= limit
}

func remaining(count, limit int) int {
	if limit < 0 {
		return -1
	}
	if count >= limit {
		return 0
	}
	return limit - count
}
