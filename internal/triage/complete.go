package triage

import (
	"context"
	"errors"
	"time"

	apperrors "case-triage-workers/internal/common/errors"

	"case-triage-workers/internal/common/llm"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/common/metrics"
)

// complete performs one completion call and reports whether it produced usable text.
// Provider errors are logged and counted here and never leave the pipeline.
func complete(ctx context.Context, completer llm.TextCompleter, log logger.Logger, operation, prompt string, opts llm.Options) (string, bool) {
	start := time.Now()
	text, err := completer.Complete(ctx, prompt, opts)
	metrics.LLMCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		stdErr := apperrors.NewProviderFailureError(operation, err)
		if errors.Is(err, context.DeadlineExceeded) {
			stdErr = apperrors.NewProviderTimeoutError(operation)
		}
		metrics.LLMCalls.WithLabelValues(operation, "error").Inc()
		log.Warn("text completion failed", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
		return "", false
	}
	if text == "" {
		metrics.LLMCalls.WithLabelValues(operation, "empty").Inc()
		return "", false
	}
	metrics.LLMCalls.WithLabelValues(operation, "ok").Inc()
	return text, true
}
