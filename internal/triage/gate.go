package triage

import (
	"case-triage-workers/internal/catalog"
	"case-triage-workers/internal/models"
)

// PartnerGateMessage is the whole partner response for a blocked request.
const PartnerGateMessage = "This partner has content delivery and manifest enabled. " +
	"Please raise this request through the partner self-service portal instead."

type GateDecision struct {
	Blocked bool   `json:"blocked"`
	Message string `json:"message,omitempty"`
}

// Gate blocks only when the case type requires the partner access check, the partner
// exists, and both capability flags are set.
func Gate(caseType models.CaseType, partnerID string, directory catalog.Provider) GateDecision {
	cfg, ok := directory.CaseConfig(caseType)
	if !ok || !cfg.PartnerAccessCheck {
		return GateDecision{}
	}
	partner, ok := directory.Partner(partnerID)
	if !ok {
		return GateDecision{}
	}
	if partner.ContentDeliveryEnabled && partner.ManifestEnabled {
		return GateDecision{Blocked: true, Message: PartnerGateMessage}
	}
	return GateDecision{}
}
