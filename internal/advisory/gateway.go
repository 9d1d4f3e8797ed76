// Package advisory wraps the generative model used for allocation and budget
// suggestions. The model is optional: when no API key is configured every
// call fails with apperrors.ErrAdvisoryUnavailable and callers fall back to
// their deterministic paths.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/platform/config"
)

type Gateway struct {
	cfg config.AdvisoryConfig
}

// NewGateway creates the advisory gateway. A nil-config (unconfigured)
// gateway is valid and simply reports unavailable.
func NewGateway(cfg config.AdvisoryConfig) portssvc.AdvisorySvc {
	return &Gateway{cfg: cfg}
}

var _ portssvc.AdvisorySvc = (*Gateway)(nil)

// Analyze sends the prompt to the model and returns the parsed JSON object it
// answered with. The prompt must instruct the model to answer with a single
// strict JSON object; markdown fences are stripped defensively anyway.
func (g *Gateway) Analyze(ctx context.Context, prompt string) (map[string]any, error) {
	if !g.cfg.Configured() {
		return nil, apperrors.ErrAdvisoryUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("advisory: create genai client: %w", err)
	}

	fullPrompt := prompt
	if g.cfg.Instructions != "" {
		fullPrompt = g.cfg.Instructions + "\n\n" + prompt
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: fullPrompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("advisory: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("advisory: empty response from model")
	}

	clean := cleanModelJSON(rawText)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("advisory: unmarshal JSON: %w", err)
	}
	return parsed, nil
}

// cleanModelJSON strips markdown fences and surrounding junk when the model
// ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
