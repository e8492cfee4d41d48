package catalog

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "case-triage-workers/internal/common/errors"
	"case-triage-workers/internal/models"

	"github.com/lib/pq"
)

// SuccessScenario is the canned-response scenario used for valid assets.
const SuccessScenario = "Successful Operation Response"

const (
	queryScenarios = `SELECT case_type, system_prompt FROM case_type_scenarios ORDER BY case_type, prompt_number`
	queryCanned    = `SELECT case_type, canned_response FROM cases_canned_response WHERE scenario = $1`
	querySettings  = `SELECT case_type, required_fields, partner_access_check FROM case_type_settings`
	queryPartners  = `SELECT partner_id, name, content_delivery_enabled, manifest_enabled FROM partners`
)

// PostgresLoader assembles a Snapshot from the case tables. Case types appear in the
// snapshot if any of the three case tables mentions them.
type PostgresLoader struct {
	db *sql.DB
}

func NewPostgresLoader(db *sql.DB) *PostgresLoader {
	return &PostgresLoader{db: db}
}

func (l *PostgresLoader) Load(ctx context.Context) (Snapshot, error) {
	configs := map[models.CaseType]*models.CaseTypeConfig{}
	var order []models.CaseType
	entry := func(ct string) *models.CaseTypeConfig {
		key := models.CaseType(ct)
		if cfg, ok := configs[key]; ok {
			return cfg
		}
		cfg := &models.CaseTypeConfig{CaseType: key}
		configs[key] = cfg
		order = append(order, key)
		return cfg
	}

	if err := l.each(ctx, queryScenarios, nil, func(rows *sql.Rows) error {
		var ct, step string
		if err := rows.Scan(&ct, &step); err != nil {
			return err
		}
		cfg := entry(ct)
		cfg.ResolutionSteps = append(cfg.ResolutionSteps, step)
		return nil
	}); err != nil {
		return Snapshot{}, err
	}

	if err := l.each(ctx, queryCanned, []interface{}{SuccessScenario}, func(rows *sql.Rows) error {
		var ct, text string
		if err := rows.Scan(&ct, &text); err != nil {
			return err
		}
		entry(ct).CannedResponse = text
		return nil
	}); err != nil {
		return Snapshot{}, err
	}

	if err := l.each(ctx, querySettings, nil, func(rows *sql.Rows) error {
		var ct string
		var required []string
		var check bool
		if err := rows.Scan(&ct, pq.Array(&required), &check); err != nil {
			return err
		}
		cfg := entry(ct)
		cfg.RequiredFields = required
		cfg.PartnerAccessCheck = check
		return nil
	}); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	for _, key := range order {
		snap.CaseTypes = append(snap.CaseTypes, *configs[key])
	}

	if err := l.each(ctx, queryPartners, nil, func(rows *sql.Rows) error {
		var p models.PartnerRecord
		var name sql.NullString
		if err := rows.Scan(&p.PartnerID, &name, &p.ContentDeliveryEnabled, &p.ManifestEnabled); err != nil {
			return err
		}
		p.Name = name.String
		snap.Partners = append(snap.Partners, p)
		return nil
	}); err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

func (l *PostgresLoader) each(ctx context.Context, query string, args []interface{}, scan func(*sql.Rows) error) error {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError(query, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return newLoadFailed("postgres", fmt.Errorf("scan %q: %w", query, err))
		}
	}
	if err := rows.Err(); err != nil {
		return newLoadFailed("postgres", fmt.Errorf("iterate %q: %w", query, err))
	}
	return nil
}
