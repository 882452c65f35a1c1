package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jacketapp/jacketapp/internal/metrics"
	"github.com/jacketapp/jacketapp/internal/model"
)

// Fallback tier boundaries in Fahrenheit.
const (
	heavyJacketBelow = 32
	lightJacketAbove = 50
)

// sensitivityShift adjusts the effective temperature per user preference:
// cold-sensitive users are recommended warmer layers at the same reading.
var sensitivityShift = map[string]int{
	model.SensitivityCold: -5,
	model.SensitivityWarm: 5,
}

// Completer is the minimal slice of the OpenAI client the generator needs.
type Completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Generator struct {
	client  Completer
	model   string
	timeout time.Duration
}

// NewGenerator builds a recommendation generator. An empty API key leaves
// the LLM path disabled and every call resolves to the fallback rule.
func NewGenerator(apiKey, modelName string) *Generator {
	g := &Generator{
		model:   modelName,
		timeout: 15 * time.Second,
	}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	} else {
		slog.Info("recommendation generator running without OpenAI key, using fallback rules only")
	}
	return g
}

// NewGeneratorWithClient is used by tests to substitute a fake completer.
func NewGeneratorWithClient(client Completer, modelName string) *Generator {
	return &Generator{client: client, model: modelName, timeout: 15 * time.Second}
}

// Recommend produces a short clothing suggestion for the given conditions.
// It always succeeds: any provider failure, empty completion or missing
// client resolves to the deterministic fallback tier.
func (g *Generator) Recommend(ctx context.Context, tempF, windMph float64, condition, sensitivity string) string {
	t := int(math.Round(tempF))
	w := int(math.Round(windMph))

	if g.client != nil {
		text, err := g.complete(ctx, t, w, condition)
		if err == nil && text != "" {
			metrics.APIRequests.WithLabelValues("openai", "success").Inc()
			return text
		}
		metrics.APIRequests.WithLabelValues("openai", "error").Inc()
		slog.Warn("recommendation provider failed, using fallback", "error", err)
	}

	return Fallback(t, sensitivity)
}

func (g *Generator) complete(ctx context.Context, tempF, windMph int, condition string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"The temperature is %d°F with %s. Wind speed is %dmph. What type of jacket should I wear?",
		tempF, condition, windMph)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   40,
		Temperature: 0.5,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a weather assistant providing concise jacket recommendations.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Fallback is the fixed three-tier rule used whenever the LLM path is
// unavailable. It is deterministic and independent of network state.
func Fallback(tempF int, sensitivity string) string {
	effective := tempF + sensitivityShift[sensitivity]

	switch {
	case effective < heavyJacketBelow:
		return "Bundle up with a heavy, warm jacket today."
	case effective < lightJacketAbove:
		return "A medium jacket should do."
	default:
		return "A light jacket at most, or skip it entirely."
	}
}
