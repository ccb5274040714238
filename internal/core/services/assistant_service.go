package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

// LanguageModel is an opaque text completion backend.
type LanguageModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const chatPrompt = `You are a carbon footprint assistant for the EcoTrack application.
Your role is to answer user questions about carbon emissions, the application, and how activities impact their carbon footprint.

If the user message is related to carbon footprint, emissions, activities tracked in EcoTrack, or sustainability, you should respond normally.

For queries outside this scope, you must respond with exactly: "%s"

User Query: %s`

const suggestionPrompt = `You are an AI assistant designed to provide personalized carbon reduction suggestions to users based on their recent activities and emissions data.

Here's a summary of the user's recent activities: %s

Here's a breakdown of their emissions this week:
- Transportation: %.2f kgCO2e
- Energy: %.2f kgCO2e
- Food: %.2f kgCO2e

Based on this information, provide a list of actionable suggestions the user can take to reduce their carbon footprint. Focus on the areas where they have the highest emissions. Be specific and provide concrete examples.

Format your response as a single paragraph of suggestions.`

type AssistantService struct {
	model        LanguageModel
	activityRepo domain.ActivityRepository
	logger       zerolog.Logger
}

// NewAssistantService accepts a nil model; every generating call then
// returns ErrAssistantUnavailable.
func NewAssistantService(model LanguageModel, activityRepo domain.ActivityRepository, logger zerolog.Logger) *AssistantService {
	return &AssistantService{
		model:        model,
		activityRepo: activityRepo,
		logger:       logger.With().Str("component", "assistant_service").Logger(),
	}
}

func (s *AssistantService) Ask(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrEmptyMessage
	}
	if s.model == nil {
		return "", domain.ErrAssistantUnavailable
	}

	return s.generate(ctx, "chat", fmt.Sprintf(chatPrompt, domain.OffTopicReply, message))
}

// Suggest asks for reduction tips based on this week's category totals and
// the most recent activity descriptions.
func (s *AssistantService) Suggest(ctx context.Context, userID string, now time.Time) (string, error) {
	if s.model == nil {
		return "", domain.ErrAssistantUnavailable
	}

	activities, err := s.activityRepo.ListByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	totals := domain.Aggregate(activities, now).CategoryTotals.ThisWeek
	prompt := fmt.Sprintf(suggestionPrompt, recentSummary(activities), totals.Transport, totals.Energy, totals.Food)

	return s.generate(ctx, "suggestions", prompt)
}

func (s *AssistantService) FAQs() []string {
	return domain.FAQs()
}

func (s *AssistantService) generate(ctx context.Context, kind, prompt string) (string, error) {
	start := time.Now()
	answer, err := s.model.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("language model call failed")
		return "", fmt.Errorf("%w: %v", domain.ErrAssistantUnavailable, err)
	}

	s.logger.Debug().Str("kind", kind).Dur("elapsed", time.Since(start)).Msg("language model answered")
	return strings.TrimSpace(answer), nil
}

// recentSummary expects activities newest first, as repositories return them.
func recentSummary(activities []*domain.Activity) string {
	if len(activities) == 0 {
		return "No activities logged yet."
	}

	n := min(len(activities), domain.RecentActivityLimit)
	parts := make([]string, 0, n)
	for _, a := range activities[:n] {
		parts = append(parts, a.Description)
	}
	return strings.Join(parts, ", ")
}
