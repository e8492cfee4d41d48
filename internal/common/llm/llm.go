// Package llm is the text completion capability used by the triage pipeline:
// a prompt goes in, free text comes out.
package llm

import (
	"context"
	"fmt"
	"time"

	"case-triage-workers/internal/common/config"
	httpclient "case-triage-workers/internal/common/http"
)

// Options tunes a single completion. Zero values use the provider defaults.
type Options struct {
	System      string
	MaxTokens   int
	Temperature *float64
}

// TextCompleter is the prompt-in/text-out contract.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// CompleterFunc adapts a function to TextCompleter.
type CompleterFunc func(ctx context.Context, prompt string, opts Options) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}

// Float returns a pointer for Options.Temperature.
func Float(v float64) *float64 { return &v }

// New builds the completer selected by cfg.Provider.
func New(cfg config.GenAIConfig) (TextCompleter, error) {
	switch cfg.Provider {
	case config.ProviderGenAI, "":
		return NewGenAI(GenAIConfig{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}, httpclient.NewClient(config.GetDuration(cfg.Timeout))), nil
	case config.ProviderOpenAI:
		return NewOpenAI(OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("unknown text completion provider %q", cfg.Provider)
	}
}
