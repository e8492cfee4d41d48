package triage

import (
	"fmt"
	"net/url"
	"strings"

	"case-triage-workers/internal/models"
)

// NoAssetsMessage is the partner response when the request names no asset at all.
const NoAssetsMessage = "No assets were identified in the request. Please provide the Source Asset ID for each affected asset."

// Composition is everything the composer needs for one request.
type Composition struct {
	RequestID        string
	CaseType         models.CaseType
	Config           models.CaseTypeConfig
	Data             models.ExtractedCaseData
	Validations      []models.ValidationResult
	Gate             GateDecision
	Summary          string
	AssetLinkBaseURL string
}

// Compose applies, in order: fallback classification, gate block, per-asset outcomes.
func Compose(c Composition) *models.TriageResponse {
	resp := &models.TriageResponse{
		RequestID:  c.RequestID,
		CaseType:   c.CaseType,
		CaseNumber: c.Data.Get(models.FieldCaseNumber),
		CaseTitle:  c.Data.Get(models.FieldCaseTitle),
		Domain:     c.Data.Get(models.FieldDomain),
		Category:   c.Data.Get(models.FieldCategory),
		PackageID:  c.Data.Get(models.FieldPackageID),
		NetworkID:  c.Data.Get(models.FieldNetworkID),
		ALID:       c.Data.Get(models.FieldALID),
		ProviderID: c.Data.Get(models.FieldProviderID),
		PartnerID:  c.Data.Get(models.FieldPartnerID),
		AssetLink:  []string{},
	}

	switch {
	case c.CaseType.IsFallback():
		resp.CaseSummary = c.Summary
		resp.OperatorResponse = OperatorResponse(c.Summary, c.Config.ResolutionSteps)
		resp.ResolutionSteps = c.Config.ResolutionSteps
		resp.Status = models.StatusUnsupported
		return resp

	case c.Gate.Blocked:
		resp.PartnerResponse = c.Gate.Message
		resp.Status = models.StatusPartnerGated
		return resp
	}

	resp.CaseSummary = c.Summary
	resp.OperatorResponse = OperatorResponse(c.Summary, c.Config.ResolutionSteps)
	resp.ResolutionSteps = c.Config.ResolutionSteps
	resp.Status = models.StatusHandled

	if len(c.Validations) == 0 {
		resp.PartnerResponse = NoAssetsMessage
		resp.Status = models.StatusMissingFields
		return resp
	}

	canned := c.Config.CannedResponse
	if canned == "" {
		canned = DefaultCannedResponse(c.CaseType)
	}

	var partner []string
	for _, v := range c.Validations {
		if !v.Complete() {
			partner = append(partner, fmt.Sprintf("Missing fields for asset %s: %s",
				v.Asset.SourceAssetID(), strings.Join(v.MissingFields, ", ")))
			resp.Status = models.StatusMissingFields
			continue
		}
		partner = append(partner, canned)
		if link := AssetLink(c.AssetLinkBaseURL, v.Asset.SourceAssetID()); link != "" {
			resp.AssetLink = append(resp.AssetLink, link)
		}
	}
	resp.PartnerResponse = strings.Join(partner, "\n\n")
	return resp
}

// DefaultCannedResponse stands in when the catalog has no canned text for a case type.
func DefaultCannedResponse(caseType models.CaseType) string {
	return fmt.Sprintf("No canned response found for %s and scenario Successful Operation Response", caseType)
}

// AssetLink builds <base>/<source_asset_id>/details, or "" when the asset has no id.
func AssetLink(base, sourceAssetID string) string {
	if !models.IsPresent(sourceAssetID) {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(sourceAssetID) + "/details"
}
