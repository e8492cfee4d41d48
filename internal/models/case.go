// internal/models/case.go
package models

import "strings"

// NotFound is the value recorded for any field the extraction could not locate.
const NotFound = "Not found"

type Field string

const (
	FieldCaseNumber    Field = "Case Number"
	FieldCaseTitle     Field = "Case Title"
	FieldDomain        Field = "Domain"
	FieldCategory      Field = "Category"
	FieldPackageID     Field = "Package ID"
	FieldNetworkID     Field = "Network ID"
	FieldALID          Field = "ALID"
	FieldPAID          Field = "PAID"
	FieldProviderID    Field = "Provider ID"
	FieldPartnerID     Field = "Partner ID"
	FieldTitle         Field = "Title"
	FieldSourceAssetID Field = "source_asset_id"
)

// Required-field names that are satisfied by either of two alternatives.
const (
	GroupPAIDOrALID              = "PAID/ALID"
	GroupNetworkNameOrProviderID = "Network Name or Provider ID"
)

// FieldGroups maps an OR-group name onto the fields that satisfy it.
var FieldGroups = map[string][]Field{
	GroupPAIDOrALID:              {FieldALID, FieldPAID},
	GroupNetworkNameOrProviderID: {FieldNetworkID, FieldProviderID},
}

// CaseDetailFields are extracted in the first field pass.
var CaseDetailFields = []Field{FieldCaseNumber, FieldCaseTitle, FieldDomain}

// CategoryDetailFields are extracted in the second, independent pass.
var CategoryDetailFields = []Field{
	FieldCategory, FieldPackageID, FieldNetworkID, FieldALID, FieldPAID, FieldProviderID, FieldPartnerID,
}

// AssetFields are the attributes requested for every asset block.
var AssetFields = []Field{
	FieldSourceAssetID, FieldTitle, FieldALID, FieldPAID, FieldProviderID, FieldNetworkID, FieldPackageID,
}

// IsPresent reports whether an extracted value carries information.
func IsPresent(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && !strings.EqualFold(v, NotFound)
}

// ExtractedCaseData holds case-level fields keyed by label.
type ExtractedCaseData map[Field]string

func (d ExtractedCaseData) Get(f Field) string {
	if v, ok := d[f]; ok && IsPresent(v) {
		return v
	}
	return NotFound
}

func (d ExtractedCaseData) Has(f Field) bool {
	return IsPresent(d[f])
}

// Merge copies every field of other into d, overwriting existing keys.
func (d ExtractedCaseData) Merge(other ExtractedCaseData) {
	for k, v := range other {
		d[k] = v
	}
}

// AssetRecord holds one asset's attributes keyed by label.
type AssetRecord map[Field]string

func (a AssetRecord) Get(f Field) string {
	if v, ok := a[f]; ok && IsPresent(v) {
		return v
	}
	return NotFound
}

func (a AssetRecord) Has(f Field) bool {
	return IsPresent(a[f])
}

func (a AssetRecord) SourceAssetID() string {
	return a.Get(FieldSourceAssetID)
}

// CaseTypeConfig is the per-case-type configuration used at request time.
type CaseTypeConfig struct {
	CaseType           CaseType `json:"caseType" mapstructure:"case_type"`
	ResolutionSteps    []string `json:"resolutionSteps" mapstructure:"resolution_steps"`
	CannedResponse     string   `json:"cannedResponse" mapstructure:"canned_response"`
	RequiredFields     []string `json:"requiredFields" mapstructure:"required_fields"`
	PartnerAccessCheck bool     `json:"partnerAccessCheck" mapstructure:"partner_access_check"`
}

// ValidationResult is the outcome of required-field validation for one asset.
type ValidationResult struct {
	Asset         AssetRecord `json:"asset"`
	MissingFields []string    `json:"missingFields"`
}

func (v ValidationResult) Complete() bool {
	return len(v.MissingFields) == 0
}
