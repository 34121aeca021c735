package services

import (
	"context"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"
	"content-api/internal/repository"

	"github.com/google/uuid"
)

// PlanService is the admin-facing side of the plan catalog. Edits are
// plain row updates; every subsequent quota check reads the fresh values.
type PlanService interface {
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, update repository.PlanUpdate) (*models.SubscriptionPlan, error)
	AssignPlan(ctx context.Context, email, planName string) (*models.UserSubscription, error)
	CancelSubscription(ctx context.Context, email string) error
	SeedDefaults(ctx context.Context, plans []models.SubscriptionPlan) error
}

type planService struct {
	planRepo         repository.PlanRepository
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewPlanService(
	planRepo repository.PlanRepository,
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) PlanService {
	return &planService{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

func (s *planService) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *planService) UpdatePlan(ctx context.Context, id uuid.UUID, update repository.PlanUpdate) (*models.SubscriptionPlan, error) {
	if update.DailyLimit != nil && *update.DailyLimit < -1 {
		return nil, apperrors.ErrInvalidInput
	}
	if update.MonthlyLimit != nil && *update.MonthlyLimit < -1 {
		return nil, apperrors.ErrInvalidInput
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	return s.planRepo.Update(ctx, id, update)
}

func (s *planService) AssignPlan(ctx context.Context, email, planName string) (*models.UserSubscription, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByName(ctx, planName)
	if err != nil {
		return nil, err
	}

	return s.subscriptionRepo.Assign(ctx, user.ID, plan.ID)
}

func (s *planService) CancelSubscription(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.subscriptionRepo.Cancel(ctx, user.ID)
}

func (s *planService) SeedDefaults(ctx context.Context, plans []models.SubscriptionPlan) error {
	return s.planRepo.Seed(ctx, plans)
}
