package services

import (
	"context"
	"strings"

	"content-api/internal/logger"
	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"
	"content-api/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GenerateInput is the raw user request before validation.
type GenerateInput struct {
	ContentType   string `json:"content_type"`
	Topic         string `json:"topic"`
	ContentLength string `json:"content_length"`
	Tone          string `json:"tone"`
	Language      string `json:"language"`
}

type ContentService interface {
	Generate(ctx context.Context, userID uuid.UUID, input GenerateInput) (*models.GeneratedContent, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.GeneratedContent, error)
	Delete(ctx context.Context, contentID, userID uuid.UUID) error
}

type contentService struct {
	contentRepo repository.ContentRepository
	quota       QuotaService
	generator   GenerationService
}

func NewContentService(
	contentRepo repository.ContentRepository,
	quota QuotaService,
	generator GenerationService,
) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		quota:       quota,
		generator:   generator,
	}
}

// Generate runs the full flow: validate, resolve the plan, check quota,
// call the provider, then persist the record and the usage increments in
// one transaction. Any failure before the final step leaves no trace.
func (s *contentService) Generate(ctx context.Context, userID uuid.UUID, input GenerateInput) (*models.GeneratedContent, error) {
	req, err := validateGenerateInput(input)
	if err != nil {
		return nil, err
	}

	plan, err := s.quota.PlanFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.quota.CheckQuota(ctx, userID, plan); err != nil {
		return nil, err
	}

	text, err := s.generator.GenerateText(ctx, req)
	if err != nil {
		logger.Logger.WithFields(logrus.Fields{
			"user":  userID,
			"topic": req.Topic,
			"error": err,
		}).Warn("Content generation failed")
		return nil, err
	}

	record := &models.GeneratedContent{
		UserID:        userID,
		ContentType:   req.ContentType,
		Topic:         req.Topic,
		ContentLength: req.ContentLength,
		Tone:          req.Tone,
		Language:      req.Language,
		Content:       text,
	}

	if err := s.contentRepo.CreateWithUsage(ctx, record, plan.DailyLimit, plan.MonthlyLimit); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *contentService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.GeneratedContent, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.contentRepo.ListRecent(ctx, userID, limit)
}

// Delete is idempotent: rows that do not exist or belong to another user
// are reported as success, so nothing leaks about other users' content.
func (s *contentService) Delete(ctx context.Context, contentID, userID uuid.UUID) error {
	removed, err := s.contentRepo.DeleteOwned(ctx, contentID, userID)
	if err != nil {
		return err
	}
	if !removed {
		logger.Logger.WithFields(logrus.Fields{
			"user":    userID,
			"content": contentID,
		}).Info("Delete skipped, content not owned or already gone")
	}
	return nil
}

func validateGenerateInput(input GenerateInput) (GenerationRequest, error) {
	req := GenerationRequest{
		ContentType:   input.ContentType,
		Topic:         strings.TrimSpace(input.Topic),
		ContentLength: input.ContentLength,
		Tone:          input.Tone,
		Language:      input.Language,
	}

	if req.Topic == "" {
		return req, apperrors.ErrInvalidInput
	}
	if !models.ValidContentType(req.ContentType) {
		return req, apperrors.ErrInvalidInput
	}
	if !models.ValidContentLength(req.ContentLength) {
		return req, apperrors.ErrInvalidInput
	}
	if req.Tone == "" {
		req.Tone = models.DefaultTone
	}
	if req.Language == "" {
		req.Language = models.DefaultLanguage
	}

	return req, nil
}
