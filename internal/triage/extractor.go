package triage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"case-triage-workers/internal/common/llm"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/common/textclean"
	"case-triage-workers/internal/models"
)

// Extractor runs the LLM-backed steps of the pipeline. Every method degrades to empty text,
// sentinel values or a default message instead of returning an error.
type Extractor struct {
	completer   llm.TextCompleter
	logger      logger.Logger
	instruction string
}

func NewExtractor(completer llm.TextCompleter, instruction string, log logger.Logger) *Extractor {
	if strings.TrimSpace(instruction) == "" {
		instruction = DefaultCleaningInstruction
	}
	return &Extractor{completer: completer, logger: log, instruction: instruction}
}

// LoadInstruction reads the cleaning instruction file. An empty path selects the default.
func LoadInstruction(path string) (string, error) {
	if path == "" {
		return DefaultCleaningInstruction, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read instruction file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Clean strips markup locally and then asks the model for the cleaned case text.
// A provider failure yields "".
func (e *Extractor) Clean(ctx context.Context, content string) string {
	text := textclean.HTMLToText(content)
	if text == "" {
		return ""
	}
	cleaned, _ := complete(ctx, e.completer, e.logger, "clean", cleaningPrompt(e.instruction, text), llm.Options{})
	return cleaned
}

// CaseDetails extracts case number, title and domain. Labels the model leaves out are
// looked up in the cleaned text itself, which often carries them verbatim.
func (e *Extractor) CaseDetails(ctx context.Context, cleaned string) models.ExtractedCaseData {
	data := e.fields(ctx, "case_details", "case details", models.CaseDetailFields, cleaned)
	for _, f := range models.CaseDetailFields {
		if !data.Has(f) {
			data[f] = ExtractField(cleaned, string(f))
		}
	}
	return data
}

// CategoryDetails extracts category and the content identifiers.
func (e *Extractor) CategoryDetails(ctx context.Context, cleaned string) models.ExtractedCaseData {
	return e.fields(ctx, "category_details", "category details", models.CategoryDetailFields, cleaned)
}

func (e *Extractor) fields(ctx context.Context, operation, subject string, fields []models.Field, cleaned string) models.ExtractedCaseData {
	if strings.TrimSpace(cleaned) == "" {
		return ExtractFields("", fields)
	}
	answer, _ := complete(ctx, e.completer, e.logger, operation, fieldsPrompt(subject, fields, cleaned), llm.Options{Temperature: llm.Float(0)})
	return ExtractFields(answer, fields)
}

// Assets lists the asset records named in the case.
func (e *Extractor) Assets(ctx context.Context, cleaned string) []models.AssetRecord {
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}
	answer, ok := complete(ctx, e.completer, e.logger, "assets", assetsPrompt(cleaned), llm.Options{Temperature: llm.Float(0)})
	if !ok {
		return nil
	}
	return ParseAssets(answer)
}

// Summarize returns the case summary, or a fixed message when it cannot be produced.
func (e *Extractor) Summarize(ctx context.Context, cleaned string) string {
	if strings.TrimSpace(cleaned) == "" {
		return summaryFailureMessage
	}
	summary, ok := complete(ctx, e.completer, e.logger, "summarize", cleaned, llm.Options{System: summarySystem})
	if !ok {
		return summaryFailureMessage
	}
	return summary
}
