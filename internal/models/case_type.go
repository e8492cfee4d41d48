// internal/models/case_type.go
package models

import "strings"

type CaseType string

const (
	CaseTypeDeliveryConfirmation CaseType = "VODC7-1"
	CaseTypeDeliveryDelay        CaseType = "VODC7-2"
	CaseTypeRedelivery           CaseType = "VODC7-3"
	CaseTypePlaybackError        CaseType = "VODG9"
	CaseTypeMetadataCorrection   CaseType = "VODB6"
	CaseTypeAvailabilityWindow   CaseType = "VODE6"
	CaseTypeArtwork              CaseType = "VODJ7"

	// CaseTypeGeneral is the fallback label for anything the classifier cannot place.
	CaseTypeGeneral CaseType = "General"
)

// CaseTypeDefinition pairs a classifier label with the description the model sees.
type CaseTypeDefinition struct {
	Type        CaseType
	Description string
}

// CaseTypeDefinitions is the classifier enumeration, in prompt order.
var CaseTypeDefinitions = []CaseTypeDefinition{
	{CaseTypeDeliveryConfirmation, "Partner asks us to confirm that delivered assets were received and ingested."},
	{CaseTypeDeliveryDelay, "Partner reports that delivered assets are delayed, stuck or failed during ingest."},
	{CaseTypeRedelivery, "Partner requests a redelivery or replacement of previously delivered assets."},
	{CaseTypePlaybackError, "Viewers or the partner report a playback error on a published title."},
	{CaseTypeMetadataCorrection, "Partner requests a correction of title metadata such as titles, synopsis or ratings."},
	{CaseTypeAvailabilityWindow, "Partner requests a change of the availability window, license end date or a takedown."},
	{CaseTypeArtwork, "Partner reports missing, wrong or low quality artwork and images."},
}

func (c CaseType) String() string {
	return string(c)
}

func (c CaseType) IsFallback() bool {
	return c == CaseTypeGeneral
}

// Parent returns the configuration group of a sub-typed case type ("VODC7-2" -> "VODC7").
// Types without a sub-type suffix return themselves.
func (c CaseType) Parent() CaseType {
	s := string(c)
	if i := strings.LastIndex(s, "-"); i > 0 {
		return CaseType(s[:i])
	}
	return c
}

// ParseCaseType maps raw text onto the classifier enumeration. Unknown values become General.
func ParseCaseType(raw string) CaseType {
	candidate := strings.TrimSpace(raw)
	candidate = strings.Trim(candidate, "\"'`*.")
	candidate = strings.TrimSpace(candidate)

	for _, def := range CaseTypeDefinitions {
		if strings.EqualFold(candidate, string(def.Type)) {
			return def.Type
		}
	}
	return CaseTypeGeneral
}
