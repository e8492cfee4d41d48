package triage

import (
	"context"
	"strings"
	"time"

	apperrors "case-triage-workers/internal/common/errors"
	"case-triage-workers/internal/catalog"
	"case-triage-workers/internal/common/llm"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/common/metrics"
	"case-triage-workers/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	MsgNoEmailData    = "No email data provided."
	MsgContentMissing = "'content' field is missing in email data."
)

// Sink receives every composed response, for archiving or notification.
// Sink errors are logged and never change the response.
type Sink interface {
	Name() string
	Record(ctx context.Context, req *models.TriageRequest, resp *models.TriageResponse) error
}

type Options struct {
	AssetLinkBaseURL    string
	CleaningInstruction string
	Sinks               []Sink
}

// Pipeline is the single request flow shared by the HTTP API and the Zeebe worker.
type Pipeline struct {
	extractor  *Extractor
	classifier *Classifier
	validator  *Validator
	catalog    catalog.Provider
	opts       Options
	logger     logger.Logger
	newID      func() string
}

func NewPipeline(completer llm.TextCompleter, provider catalog.Provider, opts Options, log logger.Logger) *Pipeline {
	log = log.WithFields(map[string]interface{}{"component": "triage"})
	return &Pipeline{
		extractor:  NewExtractor(completer, opts.CleaningInstruction, log),
		classifier: NewClassifier(completer, log),
		validator:  NewValidator(provider),
		catalog:    provider,
		opts:       opts,
		logger:     log,
		newID:      uuid.NewString,
	}
}

// ValidateRequest returns the only fatal error kind: missing email data or content.
func ValidateRequest(req *models.TriageRequest) error {
	if req == nil || req.EmailData == nil {
		return apperrors.NewInputMissingError(MsgNoEmailData)
	}
	if strings.TrimSpace(req.EmailData.Content) == "" {
		return apperrors.NewInputMissingError(MsgContentMissing)
	}
	return nil
}

// Process runs clean, classify, extract, gate, validate and compose for one request.
func (p *Pipeline) Process(ctx context.Context, req *models.TriageRequest) (*models.TriageResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	requestID := p.newID()
	log := p.logger.WithFields(map[string]interface{}{
		"requestId":    requestID,
		"isRegenerate": req.IsRegenerate,
	})

	cleaned := p.extractor.Clean(ctx, req.EmailData.Content)
	caseType := p.classifier.Classify(ctx, cleaned)
	log.Info("case classified", map[string]interface{}{"caseType": string(caseType)})

	cfg, ok := p.catalog.CaseConfig(caseType)
	if !ok && !caseType.IsFallback() {
		log.WithError(apperrors.NewConfigMissingError(string(caseType))).Warn("no catalog entry for case type, using defaults", nil)
	}

	comp := Composition{
		RequestID:        requestID,
		CaseType:         caseType,
		Config:           cfg,
		Data:             p.caseData(ctx, req, cleaned),
		AssetLinkBaseURL: p.opts.AssetLinkBaseURL,
	}

	switch {
	case caseType.IsFallback():
		comp.Summary = p.summary(ctx, req, cleaned)

	default:
		if cfg.PartnerAccessCheck && !req.IsRegenerate {
			comp.Gate = Gate(caseType, comp.Data.Get(models.FieldPartnerID), p.catalog)
		}
		if comp.Gate.Blocked {
			log.Info("request gated by partner capabilities", map[string]interface{}{
				"partnerId": comp.Data.Get(models.FieldPartnerID),
			})
			break
		}
		assets := p.extractor.Assets(ctx, cleaned)
		comp.Validations = p.validator.Validate(caseType, assets, comp.Data)
		comp.Summary = p.summary(ctx, req, cleaned)
	}

	resp := Compose(comp)
	resp.MissingEmailFields = MissingEmailFields(req.EmailData)

	metrics.TriageOutcomes.WithLabelValues(string(resp.Status)).Inc()
	log.Info("triage composed", map[string]interface{}{
		"status":     string(resp.Status),
		"assetLinks": len(resp.AssetLink),
		"duration":   time.Since(start).String(),
	})

	p.dispatch(ctx, log, req, resp)
	return resp, nil
}

// caseData runs the case-detail and category-detail extractions concurrently and merges
// them by label. On regeneration the category details come from the request.
func (p *Pipeline) caseData(ctx context.Context, req *models.TriageRequest, cleaned string) models.ExtractedCaseData {
	var caseDetails, categoryDetails models.ExtractedCaseData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		caseDetails = p.extractor.CaseDetails(gctx, cleaned)
		return nil
	})
	if req.IsRegenerate {
		categoryDetails = suppliedCategoryDetails(req)
	} else {
		g.Go(func() error {
			categoryDetails = p.extractor.CategoryDetails(gctx, cleaned)
			return nil
		})
	}
	_ = g.Wait()

	data := models.ExtractedCaseData{}
	data.Merge(caseDetails)
	data.Merge(categoryDetails)
	return data
}

func suppliedCategoryDetails(req *models.TriageRequest) models.ExtractedCaseData {
	data := ExtractFields("", models.CategoryDetailFields)
	supplied := map[models.Field]string{
		models.FieldCategory:  req.Category,
		models.FieldPackageID: req.PackageID,
		models.FieldNetworkID: req.NetworkID,
		models.FieldALID:      req.ALID,
		models.FieldPartnerID: req.PartnerID,
	}
	for f, v := range supplied {
		if models.IsPresent(v) {
			data[f] = strings.TrimSpace(v)
		}
	}
	return data
}

func (p *Pipeline) summary(ctx context.Context, req *models.TriageRequest, cleaned string) string {
	if req.IsRegenerate && strings.TrimSpace(req.CaseLog) != "" {
		return strings.TrimSpace(req.CaseLog)
	}
	return p.extractor.Summarize(ctx, cleaned)
}

func (p *Pipeline) dispatch(ctx context.Context, log logger.Logger, req *models.TriageRequest, resp *models.TriageResponse) {
	for _, sink := range p.opts.Sinks {
		if err := sink.Record(ctx, req, resp); err != nil {
			log.Warn("triage sink failed", map[string]interface{}{
				"sink":  sink.Name(),
				"error": err.Error(),
			})
		}
	}
}

// EmailHeaderFields are the headers a complete partner email carries.
var EmailHeaderFields = []string{"PEM", "Partner POC", "To", "CC"}

// MissingEmailFields lists absent email headers. It is advisory only.
func MissingEmailFields(email *models.EmailData) []string {
	if email == nil {
		return append([]string(nil), EmailHeaderFields...)
	}
	values := map[string]string{
		"PEM":         email.PEM,
		"Partner POC": email.PartnerPOC,
		"To":          email.To,
		"CC":          email.CC,
	}
	var missing []string
	for _, name := range EmailHeaderFields {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
