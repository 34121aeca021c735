package repository

import (
	"context"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.ManualPayment) error
	ListRecent(ctx context.Context, limit int) ([]models.ManualPayment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.ManualPayment) error {
	result := r.db.WithContext(ctx).Create(payment)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to record payment")
	}
	return nil
}

func (r *paymentRepository) ListRecent(ctx context.Context, limit int) ([]models.ManualPayment, error) {
	var payments []models.ManualPayment
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments)

	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "failed to list payments")
	}

	return payments, nil
}
