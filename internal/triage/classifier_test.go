package triage

import (
	"context"
	"testing"

	"case-triage-workers/internal/common/llm"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name     string
		cleaned  string
		answer   string
		fail     bool
		expected models.CaseType
	}{
		{name: "exact label", cleaned: "video does not play", answer: "VODG9", expected: models.CaseTypePlaybackError},
		{name: "decorated label", cleaned: "please redeliver", answer: " **vodc7-3**. ", expected: models.CaseTypeRedelivery},
		{name: "general answer", cleaned: "hello", answer: "General", expected: models.CaseTypeGeneral},
		{name: "answer outside enumeration", cleaned: "hello", answer: "VODZ1", expected: models.CaseTypeGeneral},
		{name: "provider error", cleaned: "hello", fail: true, expected: models.CaseTypeGeneral},
		{name: "empty answer", cleaned: "hello", answer: "", expected: models.CaseTypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newScriptedModel(map[string]string{"classify": tt.answer})
			model.fail["classify"] = tt.fail

			c := NewClassifier(model, logger.NewTestLogger(t))
			assert.Equal(t, tt.expected, c.Classify(context.Background(), tt.cleaned))
			assert.Equal(t, 1, model.called("classify"))
		})
	}
}

func TestClassifier_BlankInputSkipsModel(t *testing.T) {
	calls := 0
	completer := llm.CompleterFunc(func(context.Context, string, llm.Options) (string, error) {
		calls++
		return "VODG9", nil
	})

	c := NewClassifier(completer, logger.NewNoOpLogger())
	assert.Equal(t, models.CaseTypeGeneral, c.Classify(context.Background(), "  \n "))
	assert.Zero(t, calls)
}

func TestClassifier_PromptListsEveryCaseType(t *testing.T) {
	var seen string
	completer := llm.CompleterFunc(func(_ context.Context, prompt string, opts llm.Options) (string, error) {
		seen = prompt
		assert.Equal(t, 16, opts.MaxTokens)
		if assert.NotNil(t, opts.Temperature) {
			assert.Zero(t, *opts.Temperature)
		}
		return "VODB6", nil
	})

	NewClassifier(completer, logger.NewNoOpLogger()).Classify(context.Background(), "fix the synopsis")
	for _, def := range models.CaseTypeDefinitions {
		assert.Contains(t, seen, string(def.Type))
	}
	assert.Contains(t, seen, "General")
	assert.Contains(t, seen, "fix the synopsis")
}
