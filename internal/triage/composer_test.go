package triage

import (
	"testing"

	"case-triage-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

const linkBase = "https://portal.example.com/assets"

func composition(caseType models.CaseType, cfg models.CaseTypeConfig, validations ...models.ValidationResult) Composition {
	return Composition{
		RequestID:        "req-1",
		CaseType:         caseType,
		Config:           cfg,
		Data:             models.ExtractedCaseData{models.FieldCaseNumber: "CS-42", models.FieldPartnerID: "P-1002"},
		Validations:      validations,
		Summary:          "Partner reports a stuck delivery.",
		AssetLinkBaseURL: linkBase,
	}
}

func TestCompose_Handled(t *testing.T) {
	cfg := models.CaseTypeConfig{CannedResponse: "Delivery confirmed.", ResolutionSteps: []string{"Check queue"}}
	resp := Compose(composition("VODC7-1", cfg,
		models.ValidationResult{Asset: models.AssetRecord{models.FieldSourceAssetID: "A 1"}, MissingFields: []string{}},
		models.ValidationResult{Asset: models.AssetRecord{models.FieldSourceAssetID: "A2"}, MissingFields: []string{}},
	))

	assert.Equal(t, models.StatusHandled, resp.Status)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, "CS-42", resp.CaseNumber)
	assert.Equal(t, models.NotFound, resp.CaseTitle)
	assert.Equal(t, "Delivery confirmed.\n\nDelivery confirmed.", resp.PartnerResponse)
	assert.Equal(t, []string{linkBase + "/A%201/details", linkBase + "/A2/details"}, resp.AssetLink)
	assert.Equal(t, "Operator actionable response based on the case: Partner reports a stuck delivery.\n\nResolution steps:\n1. Check queue", resp.OperatorResponse)
	assert.Equal(t, "Partner reports a stuck delivery.", resp.CaseSummary)
}

func TestCompose_MixedAssets(t *testing.T) {
	resp := Compose(composition("VODG9", models.CaseTypeConfig{},
		models.ValidationResult{Asset: models.AssetRecord{models.FieldSourceAssetID: "A1"}, MissingFields: []string{"PAID/ALID", "Title"}},
		models.ValidationResult{Asset: models.AssetRecord{models.FieldSourceAssetID: "A2"}, MissingFields: []string{}},
	))

	assert.Equal(t, models.StatusMissingFields, resp.Status)
	assert.Equal(t, "Missing fields for asset A1: PAID/ALID, Title\n\n"+DefaultCannedResponse("VODG9"), resp.PartnerResponse)
	assert.Equal(t, []string{linkBase + "/A2/details"}, resp.AssetLink)
	assert.Equal(t, "No canned response found for VODG9 and scenario Successful Operation Response", DefaultCannedResponse("VODG9"))
}

func TestCompose_NoAssets(t *testing.T) {
	resp := Compose(composition("VODG9", models.CaseTypeConfig{CannedResponse: "x"}))

	assert.Equal(t, models.StatusMissingFields, resp.Status)
	assert.Equal(t, NoAssetsMessage, resp.PartnerResponse)
	assert.NotNil(t, resp.AssetLink)
	assert.Empty(t, resp.AssetLink)
}

func TestCompose_Fallback(t *testing.T) {
	resp := Compose(composition(models.CaseTypeGeneral, models.CaseTypeConfig{},
		models.ValidationResult{Asset: models.AssetRecord{models.FieldSourceAssetID: "A1"}, MissingFields: []string{}},
	))

	assert.Equal(t, models.StatusUnsupported, resp.Status)
	assert.Empty(t, resp.PartnerResponse)
	assert.Empty(t, resp.AssetLink)
	assert.Equal(t, operatorPrefix+"Partner reports a stuck delivery.", resp.OperatorResponse)
}

func TestCompose_Gated(t *testing.T) {
	c := composition("VODC7-2", models.CaseTypeConfig{CannedResponse: "x"})
	c.Gate = GateDecision{Blocked: true, Message: PartnerGateMessage}
	resp := Compose(c)

	assert.Equal(t, models.StatusPartnerGated, resp.Status)
	assert.Equal(t, PartnerGateMessage, resp.PartnerResponse)
	assert.Empty(t, resp.OperatorResponse)
	assert.Empty(t, resp.CaseSummary)
	assert.Empty(t, resp.AssetLink)
}

func TestAssetLink(t *testing.T) {
	assert.Equal(t, "https://x/a/b%2Fc/details", AssetLink("https://x/a/", "b/c"))
	assert.Empty(t, AssetLink("https://x", models.NotFound))
	assert.Empty(t, AssetLink("https://x", ""))
}
