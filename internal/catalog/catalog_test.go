package catalog

import (
	"context"
	"testing"

	apperrors "case-triage-workers/internal/common/errors"
	"case-triage-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() Snapshot {
	return Snapshot{
		CaseTypes: []models.CaseTypeConfig{
			{CaseType: "VODC7", ResolutionSteps: []string{"parent step"}, CannedResponse: "parent canned", RequiredFields: []string{"PAID/ALID"}, PartnerAccessCheck: true},
			{CaseType: "VODC7-3", ResolutionSteps: []string{"redelivery step"}, CannedResponse: "redelivery canned"},
			{CaseType: "VODG9", CannedResponse: "playback canned"},
		},
		Partners: []models.PartnerRecord{
			{PartnerID: " P-1 ", ContentDeliveryEnabled: true, ManifestEnabled: true},
		},
	}
}

func TestCatalog_CaseConfig(t *testing.T) {
	c := New(testSnapshot())

	tests := []struct {
		name     string
		caseType models.CaseType
		found    bool
		canned   string
	}{
		{"exact match", models.CaseTypePlaybackError, true, "playback canned"},
		{"sub-type with own entry", models.CaseTypeRedelivery, true, "redelivery canned"},
		{"sub-type falls back to parent", models.CaseTypeDeliveryDelay, true, "parent canned"},
		{"unknown type", models.CaseTypeArtwork, false, ""},
		{"fallback label", models.CaseTypeGeneral, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := c.CaseConfig(tt.caseType)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.canned, cfg.CannedResponse)
		})
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := New(testSnapshot())

	cfg, ok := c.CaseConfig("VODC7")
	require.True(t, ok)
	cfg.ResolutionSteps[0] = "mutated"
	cfg.RequiredFields = append(cfg.RequiredFields, "Title")

	again, _ := c.CaseConfig("VODC7")
	assert.Equal(t, []string{"parent step"}, again.ResolutionSteps)
	assert.Equal(t, []string{"PAID/ALID"}, again.RequiredFields)
}

func TestCatalog_Partner(t *testing.T) {
	c := New(testSnapshot())

	p, ok := c.Partner("P-1")
	require.True(t, ok)
	assert.True(t, p.ContentDeliveryEnabled)

	_, ok = c.Partner("P-404")
	assert.False(t, ok)
	_, ok = c.Partner(models.NotFound)
	assert.False(t, ok)
	_, ok = c.Partner("")
	assert.False(t, ok)
}

func TestCatalog_Uncovered(t *testing.T) {
	c := New(testSnapshot())
	assert.ElementsMatch(t,
		[]models.CaseType{models.CaseTypeMetadataCorrection, models.CaseTypeAvailabilityWindow, models.CaseTypeArtwork},
		c.Uncovered())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(testSnapshot()))

	err := Validate(Snapshot{
		CaseTypes: []models.CaseTypeConfig{{CaseType: " "}, {CaseType: "VODB6", RequiredFields: []string{"Nope"}}},
		Partners:  []models.PartnerRecord{{PartnerID: ""}},
	})
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeCatalogInvalid, stdErr.Code)
	assert.Contains(t, stdErr.Details, "empty case_type")
	assert.Contains(t, stdErr.Details, `unknown required field "Nope"`)
	assert.Contains(t, stdErr.Details, "empty partner_id")
}

func TestFileLoader(t *testing.T) {
	c, err := Load(context.Background(), NewFileLoader("testdata/catalog.yaml"))
	require.NoError(t, err)

	cfg, ok := c.CaseConfig(models.CaseTypeDeliveryConfirmation)
	require.True(t, ok)
	assert.Equal(t, []string{"Check delivery tracker", "Confirm ingest"}, cfg.ResolutionSteps)
	assert.Equal(t, []string{"PAID/ALID", "Network Name or Provider ID"}, cfg.RequiredFields)
	assert.True(t, cfg.PartnerAccessCheck)

	p, ok := c.Partner("2002")
	require.True(t, ok)
	assert.False(t, p.ManifestEnabled)

	caseTypes, partners := c.Size()
	assert.Equal(t, 2, caseTypes)
	assert.Equal(t, 2, partners)
}

func TestFileLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code apperrors.ErrorCode
	}{
		{"missing file", "testdata/does-not-exist.yaml", apperrors.ErrCodeCatalogLoadFailed},
		{"schema violation", "testdata/invalid_schema.yaml", apperrors.ErrCodeCatalogInvalid},
		{"unknown required field", "testdata/unknown_field.yaml", apperrors.ErrCodeCatalogInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), NewFileLoader(tt.path))
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok, "expected StandardError, got %v", err)
			assert.Equal(t, tt.code, stdErr.Code)
		})
	}
}

func TestShippedCatalogIsValid(t *testing.T) {
	c, err := Load(context.Background(), NewFileLoader("../../configs/catalog.yaml"))
	require.NoError(t, err)
	assert.Empty(t, c.Uncovered())
}
