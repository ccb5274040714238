// Package llm adapts Google's Gemini API to the assistant's LanguageModel port.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var ErrEmptyResponse = errors.New("llm: empty response")

type GeminiModel struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiModel(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("llm: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create GenAI client: %w", err)
	}

	return &GeminiModel{client: client, model: model, timeout: timeout}, nil
}

func (m *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
