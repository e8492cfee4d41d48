// Package catalog holds the per-case-type configuration and the partner directory.
// A Catalog is built once at startup and never mutated, so it is safe to share
// between concurrent requests without locking.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"case-triage-workers/internal/models"
)

// Provider is the read-only lookup surface used by the triage pipeline.
type Provider interface {
	CaseConfig(caseType models.CaseType) (models.CaseTypeConfig, bool)
	Partner(id string) (models.PartnerRecord, bool)
}

// Loader produces a Snapshot from some backing store.
type Loader interface {
	Load(ctx context.Context) (Snapshot, error)
}

// Snapshot is the serializable content of a Catalog.
type Snapshot struct {
	CaseTypes []models.CaseTypeConfig `json:"caseTypes" mapstructure:"case_types"`
	Partners  []models.PartnerRecord  `json:"partners" mapstructure:"partners"`
}

type Catalog struct {
	cases    map[models.CaseType]models.CaseTypeConfig
	partners map[string]models.PartnerRecord
}

var _ Provider = (*Catalog)(nil)

// New indexes a snapshot. Later duplicates of a case type or partner id win.
func New(s Snapshot) *Catalog {
	c := &Catalog{
		cases:    make(map[models.CaseType]models.CaseTypeConfig, len(s.CaseTypes)),
		partners: make(map[string]models.PartnerRecord, len(s.Partners)),
	}
	for _, ct := range s.CaseTypes {
		ct.CaseType = models.CaseType(strings.TrimSpace(string(ct.CaseType)))
		c.cases[ct.CaseType] = cloneConfig(ct)
	}
	for _, p := range s.Partners {
		p.PartnerID = strings.TrimSpace(p.PartnerID)
		c.partners[p.PartnerID] = p
	}
	return c
}

// Load runs loader, validates the result and builds the Catalog.
func Load(ctx context.Context, loader Loader) (*Catalog, error) {
	snap, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := Validate(snap); err != nil {
		return nil, err
	}
	return New(snap), nil
}

// CaseConfig returns the entry for caseType, falling back to its parent group
// ("VODC7-2" -> "VODC7"). The returned slices are copies.
func (c *Catalog) CaseConfig(caseType models.CaseType) (models.CaseTypeConfig, bool) {
	if cfg, ok := c.cases[caseType]; ok {
		return cloneConfig(cfg), true
	}
	if parent := caseType.Parent(); parent != caseType {
		if cfg, ok := c.cases[parent]; ok {
			return cloneConfig(cfg), true
		}
	}
	return models.CaseTypeConfig{}, false
}

func (c *Catalog) Partner(id string) (models.PartnerRecord, bool) {
	id = strings.TrimSpace(id)
	if id == "" || !models.IsPresent(id) {
		return models.PartnerRecord{}, false
	}
	p, ok := c.partners[id]
	return p, ok
}

// Uncovered lists classifier labels that resolve to no entry, directly or through a parent.
func (c *Catalog) Uncovered() []models.CaseType {
	var missing []models.CaseType
	for _, def := range models.CaseTypeDefinitions {
		if _, ok := c.CaseConfig(def.Type); !ok {
			missing = append(missing, def.Type)
		}
	}
	return missing
}

func (c *Catalog) Size() (caseTypes, partners int) {
	return len(c.cases), len(c.partners)
}

func cloneConfig(cfg models.CaseTypeConfig) models.CaseTypeConfig {
	cfg.ResolutionSteps = append([]string(nil), cfg.ResolutionSteps...)
	cfg.RequiredFields = append([]string(nil), cfg.RequiredFields...)
	return cfg
}

// knownRequiredField reports whether name is a field label or an OR-group name.
func knownRequiredField(name string) bool {
	if _, ok := models.FieldGroups[name]; ok {
		return true
	}
	for _, f := range models.CaseDetailFields {
		if string(f) == name {
			return true
		}
	}
	for _, f := range models.CategoryDetailFields {
		if string(f) == name {
			return true
		}
	}
	for _, f := range models.AssetFields {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Validate checks the semantic rules a JSON schema cannot express.
func Validate(s Snapshot) error {
	var problems []string
	for i, ct := range s.CaseTypes {
		if strings.TrimSpace(string(ct.CaseType)) == "" {
			problems = append(problems, fmt.Sprintf("case_types[%d]: empty case_type", i))
			continue
		}
		for _, f := range ct.RequiredFields {
			if !knownRequiredField(f) {
				problems = append(problems, fmt.Sprintf("%s: unknown required field %q", ct.CaseType, f))
			}
		}
	}
	for i, p := range s.Partners {
		if strings.TrimSpace(p.PartnerID) == "" {
			problems = append(problems, fmt.Sprintf("partners[%d]: empty partner_id", i))
		}
	}
	if len(problems) > 0 {
		return newInvalid(problems)
	}
	return nil
}
