package services

import (
	"context"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"
	"content-api/internal/repository"

	"github.com/google/uuid"
)

type RecordPaymentInput struct {
	UserEmail     string `json:"user_email"`
	Amount        int    `json:"amount"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
	Notes         string `json:"notes"`
}

// PaymentService records payments taken outside any processor, entered by
// an admin against a user account.
type PaymentService interface {
	RecordPayment(ctx context.Context, adminID uuid.UUID, input RecordPaymentInput) (*models.ManualPayment, error)
	ListRecent(ctx context.Context, limit int) ([]models.ManualPayment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, userRepo repository.UserRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, adminID uuid.UUID, input RecordPaymentInput) (*models.ManualPayment, error) {
	if input.UserEmail == "" || input.Method == "" || input.Amount <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(ctx, input.UserEmail)
	if err != nil {
		return nil, err
	}

	payment := &models.ManualPayment{
		UserID:        user.ID,
		Amount:        input.Amount,
		Method:        input.Method,
		TransactionID: input.TransactionID,
		Notes:         input.Notes,
		RecordedBy:    adminID,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *paymentService) ListRecent(ctx context.Context, limit int) ([]models.ManualPayment, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.paymentRepo.ListRecent(ctx, limit)
}
