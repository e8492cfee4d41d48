package llm

import (
	"context"
	"fmt"
	"strings"

	httpclient "case-triage-workers/internal/common/http"
)

const generatePath = "/api/ai/generate"

type GenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// GenAI talks to the internal generation gateway over plain JSON HTTP.
type GenAI struct {
	cfg    GenAIConfig
	client *httpclient.Client
}

func NewGenAI(cfg GenAIConfig, client *httpclient.Client) *GenAI {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &GenAI{cfg: cfg, client: client}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	System      string  `json:"system,omitempty"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Complete issues one request. Failures are returned as is; there is no retry.
func (g *GenAI) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	req := generateRequest{
		Prompt:      prompt,
		System:      opts.System,
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}

	var headers map[string]string
	if g.cfg.APIKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + g.cfg.APIKey}
	}

	var resp generateResponse
	if err := g.client.PostJSON(ctx, g.cfg.BaseURL+generatePath, headers, req, &resp); err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
