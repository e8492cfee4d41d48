// internal/models/triage.go
package models

type Status string

const (
	StatusHandled       Status = "handled"
	StatusUnsupported   Status = "unsupported case type"
	StatusPartnerGated  Status = "partner gated"
	StatusMissingFields Status = "missing fields"
)

// EmailData is the inbound support email. Content may be HTML or plain text.
type EmailData struct {
	Content    string `json:"content"`
	Subject    string `json:"subject,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"To,omitempty"`
	CC         string `json:"CC,omitempty"`
	PEM        string `json:"PEM,omitempty"`
	PartnerPOC string `json:"Partner POC,omitempty"`
}

// TriageRequest is the transport-agnostic request record. When IsRegenerate is set the
// prior case fields are taken from the request instead of being extracted again.
type TriageRequest struct {
	EmailData    *EmailData `json:"email_data"`
	IsRegenerate bool       `json:"isRegenerate"`
	CaseLog      string     `json:"case_log,omitempty"`
	Category     string     `json:"category,omitempty"`
	PackageID    string     `json:"package_id,omitempty"`
	NetworkID    string     `json:"network_id,omitempty"`
	ALID         string     `json:"alid,omitempty"`
	PartnerID    string     `json:"partner_id,omitempty"`
}

// TriageResponse is the composed reply returned to operators and partners.
type TriageResponse struct {
	RequestID          string   `json:"request_id"`
	CaseType           CaseType `json:"case_type"`
	CaseNumber         string   `json:"case_number"`
	CaseTitle          string   `json:"case_title"`
	Domain             string   `json:"domain"`
	Category           string   `json:"category"`
	PackageID          string   `json:"package_id"`
	NetworkID          string   `json:"network_id"`
	ALID               string   `json:"alid"`
	ProviderID         string   `json:"provider_id"`
	PartnerID          string   `json:"partner_id"`
	CaseSummary        string   `json:"case_summary"`
	OperatorResponse   string   `json:"operator_response"`
	PartnerResponse    string   `json:"partner_response"`
	AssetLink          []string `json:"asset_link"`
	ResolutionSteps    []string `json:"resolution_steps,omitempty"`
	MissingEmailFields []string `json:"missing_email_fields,omitempty"`
	Status             Status   `json:"status"`
}

// ErrorResponse is returned instead of a TriageResponse when the input is unusable.
type ErrorResponse struct {
	Error string `json:"error"`
}
