package triage

import (
	"regexp"
	"strings"
	"sync"

	"case-triage-workers/internal/models"
)

var (
	fieldPatterns   sync.Map // label -> *regexp.Regexp
	blockSeparator  = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*$`)
	emphasisCutset  = "*_` \t"
	assetFieldLabel = map[models.Field]string{
		models.FieldSourceAssetID: "Source Asset ID",
	}
)

func fieldPattern(label string) *regexp.Regexp {
	if re, ok := fieldPatterns.Load(label); ok {
		return re.(*regexp.Regexp)
	}
	// The label must not be glued to a preceding word or slash, so "ALID" never matches
	// inside "PAID/ALID" and "Network ID" never matches inside "Source Network ID".
	re := regexp.MustCompile(`(?im)(?:^|[^\w/])` + regexp.QuoteMeta(label) + `[ \t]*(?:\*{1,2}|_{1,2})?[ \t]*:[ \t]*(.*)$`)
	actual, _ := fieldPatterns.LoadOrStore(label, re)
	return actual.(*regexp.Regexp)
}

// ExtractField returns the value written after "label:" on the first matching line of text,
// or models.NotFound when there is no such line or the value is empty.
func ExtractField(text, label string) string {
	m := fieldPattern(label).FindStringSubmatch(text)
	if m == nil {
		return models.NotFound
	}
	value := strings.Trim(strings.TrimSpace(m[1]), emphasisCutset)
	if !models.IsPresent(value) {
		return models.NotFound
	}
	return value
}

// ExtractFields runs ExtractField for every field.
func ExtractFields(text string, fields []models.Field) models.ExtractedCaseData {
	out := make(models.ExtractedCaseData, len(fields))
	for _, f := range fields {
		out[f] = ExtractField(text, string(f))
	}
	return out
}

// ExtractBlocks splits multi-asset text on lines consisting only of dashes.
func ExtractBlocks(text string) []string {
	var blocks []string
	for _, part := range blockSeparator.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			blocks = append(blocks, part)
		}
	}
	return blocks
}

// ParseAssets turns the asset listing into records. Blocks without any recognised
// attribute are dropped.
func ParseAssets(text string) []models.AssetRecord {
	var assets []models.AssetRecord
	for _, block := range ExtractBlocks(text) {
		asset := make(models.AssetRecord, len(models.AssetFields))
		found := false
		for _, f := range models.AssetFields {
			label, ok := assetFieldLabel[f]
			if !ok {
				label = string(f)
			}
			asset[f] = ExtractField(block, label)
			if asset[f] != models.NotFound {
				found = true
			}
		}
		if found {
			assets = append(assets, asset)
		}
	}
	return assets
}
