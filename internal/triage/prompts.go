package triage

import (
	"fmt"
	"strings"

	"case-triage-workers/internal/models"
)

// DefaultCleaningInstruction is used when no instruction file is configured.
const DefaultCleaningInstruction = `You are cleaning a support email sent by a content partner.
Remove greetings, signatures, disclaimers and quoted reply chains.
Keep every identifier exactly as written and keep tables as markdown tables.
Return only the cleaned text.`

const (
	summarySystem         = "Summarize the case log"
	summaryFailureMessage = "An error occurred while summarizing the case log."
	operatorPrefix        = "Operator actionable response based on the case: "
)

func cleaningPrompt(instruction, content string) string {
	return fmt.Sprintf("%s\n\nContent to analyze:\n%s\n", instruction, content)
}

func classificationPrompt(cleaned string) string {
	var parts []string
	parts = append(parts, "Classify the support case below into exactly one case type.")
	parts = append(parts, "\nCase types:")
	for _, def := range models.CaseTypeDefinitions {
		parts = append(parts, fmt.Sprintf("- %s: %s", def.Type, def.Description))
	}
	parts = append(parts, fmt.Sprintf("- %s: Anything that does not clearly match one of the case types above.", models.CaseTypeGeneral))
	parts = append(parts, "\nAnswer with the case type code only, without any other text.")
	parts = append(parts, "\nCase:")
	parts = append(parts, cleaned)
	return strings.Join(parts, "\n")
}

func fieldsPrompt(subject string, fields []models.Field, cleaned string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Extract the %s from the support case below.", subject))
	parts = append(parts, "Answer with one line per field in the form \"<Field>: <value>\".")
	parts = append(parts, fmt.Sprintf("Write \"%s\" when a field is not present. Do not guess values.", models.NotFound))
	parts = append(parts, "\nFields:")
	for _, f := range fields {
		parts = append(parts, "- "+string(f))
	}
	parts = append(parts, "\nCase:")
	parts = append(parts, cleaned)
	return strings.Join(parts, "\n")
}

func assetsPrompt(cleaned string) string {
	var parts []string
	parts = append(parts, "List every asset mentioned in the support case below.")
	parts = append(parts, "Separate assets with a line containing only ---.")
	parts = append(parts, "For each asset write one line per attribute in the form \"<Attribute>: <value>\":")
	for _, f := range models.AssetFields {
		label, ok := assetFieldLabel[f]
		if !ok {
			label = string(f)
		}
		parts = append(parts, "- "+label)
	}
	parts = append(parts, fmt.Sprintf("Write \"%s\" for attributes that are not present. Do not guess values.", models.NotFound))
	parts = append(parts, "\nCase:")
	parts = append(parts, cleaned)
	return strings.Join(parts, "\n")
}

// OperatorResponse is the actionable message shown to the operator.
func OperatorResponse(summary string, steps []string) string {
	var b strings.Builder
	b.WriteString(operatorPrefix)
	b.WriteString(summary)
	if len(steps) > 0 {
		b.WriteString("\n\nResolution steps:")
		for i, step := range steps {
			fmt.Fprintf(&b, "\n%d. %s", i+1, step)
		}
	}
	return b.String()
}
