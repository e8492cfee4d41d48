package triage

import (
	"case-triage-workers/internal/catalog"
	"case-triage-workers/internal/models"
)

// MissingFields lists the required fields absent from asset, in required-list order.
// A value is taken from the asset first and from the case-level data otherwise.
// OR-groups are reported under their group name and only when every alternative is absent.
func MissingFields(required []string, asset models.AssetRecord, data models.ExtractedCaseData) []string {
	missing := []string{}
	for _, name := range required {
		if alternatives, ok := models.FieldGroups[name]; ok {
			satisfied := false
			for _, f := range alternatives {
				if hasValue(f, asset, data) {
					satisfied = true
					break
				}
			}
			if !satisfied {
				missing = append(missing, name)
			}
			continue
		}
		if !hasValue(models.Field(name), asset, data) {
			missing = append(missing, name)
		}
	}
	return missing
}

func hasValue(f models.Field, asset models.AssetRecord, data models.ExtractedCaseData) bool {
	return asset.Has(f) || data.Has(f)
}

// Validator resolves required fields through the catalog.
type Validator struct {
	catalog catalog.Provider
}

func NewValidator(provider catalog.Provider) *Validator {
	return &Validator{catalog: provider}
}

// MissingFields validates one asset for caseType. Unknown case types have no requirements.
func (v *Validator) MissingFields(caseType models.CaseType, asset models.AssetRecord, data models.ExtractedCaseData) []string {
	cfg, _ := v.catalog.CaseConfig(caseType)
	return MissingFields(cfg.RequiredFields, asset, data)
}

// Validate checks every asset independently.
func (v *Validator) Validate(caseType models.CaseType, assets []models.AssetRecord, data models.ExtractedCaseData) []models.ValidationResult {
	results := make([]models.ValidationResult, 0, len(assets))
	for _, asset := range assets {
		results = append(results, models.ValidationResult{
			Asset:         asset,
			MissingFields: v.MissingFields(caseType, asset, data),
		})
	}
	return results
}
