package services

import (
	"context"
	"testing"
	"time"

	"content-api/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTextWithoutCredentials(t *testing.T) {
	svc, err := NewGeminiGenerationService(context.Background(), "", "gemini-2.0-flash", time.Second)
	require.NoError(t, err)

	_, err = svc.GenerateText(context.Background(), GenerationRequest{
		ContentType:   "article",
		Topic:         "anything",
		ContentLength: "short",
		Tone:          "professional",
		Language:      "en",
	})
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(GenerationRequest{
		ContentType:   "article",
		Topic:         "The Future of AI",
		ContentLength: "medium",
		Tone:          "professional",
		Language:      "en",
	})

	assert.Contains(t, prompt, "well structured article")
	assert.Contains(t, prompt, "Topic: The Future of AI")
	assert.Contains(t, prompt, "around 400 words")
	assert.Contains(t, prompt, "Tone: professional")
	assert.Contains(t, prompt, "Language: English")
}

func TestBuildPromptVariants(t *testing.T) {
	cases := []struct {
		req      GenerationRequest
		contains []string
	}{
		{
			req:      GenerationRequest{ContentType: "social_post", Topic: "ML", ContentLength: "short", Tone: "casual", Language: "en"},
			contains: []string{"social media post", "around 150 words", "Tone: casual"},
		},
		{
			req:      GenerationRequest{ContentType: "product_description", Topic: "Smart Watch", ContentLength: "long", Tone: "persuasive", Language: "en"},
			contains: []string{"product description", "800 words or more", "Topic: Smart Watch"},
		},
		{
			req:      GenerationRequest{ContentType: "article", Topic: "الذكاء الاصطناعي", ContentLength: "medium", Tone: "professional", Language: "ar"},
			contains: []string{"Language: Arabic", "الذكاء الاصطناعي"},
		},
	}

	for _, tc := range cases {
		prompt := buildPrompt(tc.req)
		for _, want := range tc.contains {
			assert.Contains(t, prompt, want)
		}
	}
}
