package triage

import (
	"context"
	"errors"
	"strings"
	"sync"

	"case-triage-workers/internal/catalog"
	"case-triage-workers/internal/common/llm"
	"case-triage-workers/internal/models"
)

// scriptedModel answers each pipeline step from a fixed script and records the calls.
type scriptedModel struct {
	mu      sync.Mutex
	calls   []string
	answers map[string]string
	fail    map[string]bool
}

func newScriptedModel(answers map[string]string) *scriptedModel {
	return &scriptedModel{answers: answers, fail: map[string]bool{}}
}

func (m *scriptedModel) Complete(_ context.Context, prompt string, opts llm.Options) (string, error) {
	op := operationOf(prompt, opts)
	m.mu.Lock()
	m.calls = append(m.calls, op)
	failing := m.fail[op]
	answer := m.answers[op]
	m.mu.Unlock()

	if failing {
		return "", errors.New("provider unavailable")
	}
	return answer, nil
}

func (m *scriptedModel) called(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == op {
			n++
		}
	}
	return n
}

var _ llm.TextCompleter = (*scriptedModel)(nil)

func operationOf(prompt string, opts llm.Options) string {
	switch {
	case opts.System == summarySystem:
		return "summarize"
	case strings.Contains(prompt, "Content to analyze:"):
		return "clean"
	case strings.HasPrefix(prompt, "Classify the support case"):
		return "classify"
	case strings.HasPrefix(prompt, "Extract the case details"):
		return "case_details"
	case strings.HasPrefix(prompt, "Extract the category details"):
		return "category_details"
	case strings.HasPrefix(prompt, "List every asset"):
		return "assets"
	}
	return "unknown"
}

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Snapshot{
		CaseTypes: []models.CaseTypeConfig{
			{
				CaseType:           "VODC7",
				ResolutionSteps:    []string{"Check the ingest queue", "Confirm the delivery"},
				CannedResponse:     "Your delivery has been received.",
				RequiredFields:     []string{"PAID/ALID", "Network Name or Provider ID"},
				PartnerAccessCheck: true,
			},
			{
				CaseType:        "VODG9",
				ResolutionSteps: []string{"Reproduce the playback error"},
				CannedResponse:  "We are investigating the playback issue.",
				RequiredFields:  []string{"PAID/ALID"},
			},
			{
				CaseType:       "VODB6",
				RequiredFields: []string{"Title", "Package ID"},
			},
		},
		Partners: []models.PartnerRecord{
			{PartnerID: "P-1001", ContentDeliveryEnabled: true, ManifestEnabled: true},
			{PartnerID: "P-1002", ContentDeliveryEnabled: true},
			{PartnerID: "P-1003"},
		},
	})
}
