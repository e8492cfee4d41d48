package triage

import (
	"context"
	"strings"

	"case-triage-workers/internal/common/llm"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/common/metrics"
	"case-triage-workers/internal/models"
)

// Classifier maps cleaned case text onto the case type enumeration.
type Classifier struct {
	completer llm.TextCompleter
	logger    logger.Logger
}

func NewClassifier(completer llm.TextCompleter, log logger.Logger) *Classifier {
	return &Classifier{completer: completer, logger: log}
}

// Classify makes at most one completion call. Blank input, provider errors and answers
// outside the enumeration all yield models.CaseTypeGeneral.
func (c *Classifier) Classify(ctx context.Context, cleaned string) models.CaseType {
	if strings.TrimSpace(cleaned) == "" {
		return models.CaseTypeGeneral
	}

	answer, ok := complete(ctx, c.completer, c.logger, "classify", classificationPrompt(cleaned), llm.Options{
		MaxTokens:   16,
		Temperature: llm.Float(0),
	})
	if !ok {
		return models.CaseTypeGeneral
	}

	caseType := models.ParseCaseType(answer)
	if caseType.IsFallback() && !strings.EqualFold(strings.TrimSpace(answer), string(models.CaseTypeGeneral)) {
		c.logger.Warn("classifier answer outside enumeration", map[string]interface{}{"answer": answer})
	}
	metrics.CasesClassified.WithLabelValues(string(caseType)).Inc()
	return caseType
}
