// internal/workers/triage/triage-case-email/models.go
package triagecaseemail

import "case-triage-workers/internal/models"

// Input is the job variable set. It carries the same fields as the HTTP body.
type Input struct {
	EmailData    *models.EmailData `json:"email_data"`
	IsRegenerate bool              `json:"isRegenerate"`
	CaseLog      string            `json:"case_log"`
	Category     string            `json:"category"`
	PackageID    string            `json:"package_id"`
	NetworkID    string            `json:"network_id"`
	ALID         string            `json:"alid"`
	PartnerID    string            `json:"partner_id"`
}

func (in *Input) toRequest() *models.TriageRequest {
	return &models.TriageRequest{
		EmailData:    in.EmailData,
		IsRegenerate: in.IsRegenerate,
		CaseLog:      in.CaseLog,
		Category:     in.Category,
		PackageID:    in.PackageID,
		NetworkID:    in.NetworkID,
		ALID:         in.ALID,
		PartnerID:    in.PartnerID,
	}
}

// Output is merged into the process instance under "triage", plus a flat status
// and case type for gateway conditions.
type Output struct {
	Triage   *models.TriageResponse `json:"triage"`
	Status   models.Status          `json:"triageStatus"`
	CaseType models.CaseType        `json:"caseType"`
}
