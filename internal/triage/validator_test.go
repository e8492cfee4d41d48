package triage

import (
	"testing"

	"case-triage-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMissingFields(t *testing.T) {
	required := []string{"PAID/ALID", "Network Name or Provider ID", "Title"}

	tests := []struct {
		name     string
		asset    models.AssetRecord
		data     models.ExtractedCaseData
		expected []string
	}{
		{
			name:     "nothing present",
			asset:    models.AssetRecord{},
			data:     models.ExtractedCaseData{},
			expected: []string{"PAID/ALID", "Network Name or Provider ID", "Title"},
		},
		{
			name:     "either alternative satisfies a group",
			asset:    models.AssetRecord{models.FieldPAID: "PA-1", models.FieldProviderID: "prov", models.FieldTitle: "Movie"},
			data:     models.ExtractedCaseData{},
			expected: []string{},
		},
		{
			name:     "sentinel counts as absent regardless of case",
			asset:    models.AssetRecord{models.FieldALID: "not FOUND", models.FieldPAID: "Not found", models.FieldTitle: "Movie"},
			data:     models.ExtractedCaseData{models.FieldNetworkID: "NET-9"},
			expected: []string{"PAID/ALID"},
		},
		{
			name:     "case-level data fills asset gaps",
			asset:    models.AssetRecord{models.FieldTitle: "Movie"},
			data:     models.ExtractedCaseData{models.FieldALID: "AL-1", models.FieldNetworkID: "NET-9"},
			expected: []string{},
		},
		{
			name:     "blank values are absent",
			asset:    models.AssetRecord{models.FieldTitle: "   "},
			data:     models.ExtractedCaseData{models.FieldALID: "AL-1", models.FieldProviderID: "prov"},
			expected: []string{"Title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MissingFields(required, tt.asset, tt.data))
		})
	}
}

func TestMissingFields_NoRequirements(t *testing.T) {
	got := MissingFields(nil, models.AssetRecord{}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(testCatalog())

	assets := []models.AssetRecord{
		{models.FieldSourceAssetID: "A1", models.FieldALID: "AL-1", models.FieldProviderID: "prov"},
		{models.FieldSourceAssetID: "A2"},
	}
	results := v.Validate("VODC7-1", assets, models.ExtractedCaseData{})

	if assert.Len(t, results, 2) {
		assert.True(t, results[0].Complete())
		assert.Equal(t, []string{"PAID/ALID", "Network Name or Provider ID"}, results[1].MissingFields)
	}

	assert.Empty(t, v.MissingFields("VODX1", models.AssetRecord{}, nil))
	assert.Empty(t, v.Validate("VODG9", nil, nil))
}
