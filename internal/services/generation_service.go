package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"content-api/internal/pkg/apperrors"

	"google.golang.org/genai"
)

// GenerationRequest carries the validated options for one generation.
type GenerationRequest struct {
	ContentType   string
	Topic         string
	ContentLength string
	Tone          string
	Language      string
}

// GenerationService is the boundary to the hosted text-generation provider.
// A single attempt per request; retry policy belongs to the caller.
type GenerationService interface {
	GenerateText(ctx context.Context, req GenerationRequest) (string, error)
}

type geminiGenerationService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerationService builds the Gemini-backed gateway. A missing
// API key does not fail startup; every call then reports the provider as
// unavailable.
func NewGeminiGenerationService(ctx context.Context, apiKey, model string, timeout time.Duration) (GenerationService, error) {
	svc := &geminiGenerationService{model: model, timeout: timeout}
	if apiKey == "" {
		return svc, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	svc.client = client
	return svc, nil
}

func (s *geminiGenerationService) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	if s.client == nil {
		return "", apperrors.ErrProviderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(buildPrompt(req)), nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.ErrProviderTimeout
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrProviderError, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrProviderError)
	}

	return text, nil
}

func buildPrompt(req GenerationRequest) string {
	var kind string
	switch req.ContentType {
	case "article":
		kind = "a well structured article"
	case "social_post":
		kind = "an engaging social media post"
	case "product_description":
		kind = "a persuasive product description"
	default:
		kind = "a piece of content"
	}

	var length string
	switch req.ContentLength {
	case "short":
		length = "short (around 150 words)"
	case "medium":
		length = "medium (around 400 words)"
	case "long":
		length = "long (800 words or more)"
	default:
		length = req.ContentLength
	}

	language := "English"
	if req.Language == "ar" {
		language = "Arabic"
	}

	var b strings.Builder
	b.WriteString("You are an expert content writer. Write ")
	b.WriteString(kind)
	b.WriteString(".\n")
	b.WriteString("Topic: " + req.Topic + "\n")
	b.WriteString("Length: " + length + "\n")
	b.WriteString("Tone: " + req.Tone + "\n")
	b.WriteString("Language: " + language + "\n")
	b.WriteString("Make the content professional, organized and engaging.")
	return b.String()
}
