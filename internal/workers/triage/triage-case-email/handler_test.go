// internal/workers/triage/triage-case-email/handler_test.go
package triagecaseemail

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"case-triage-workers/internal/catalog"
	"case-triage-workers/internal/common/config"
	apperrors "case-triage-workers/internal/common/errors"
	"case-triage-workers/internal/common/llm"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/models"
	"case-triage-workers/internal/triage"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

type processorFunc func(ctx context.Context, req *models.TriageRequest) (*models.TriageResponse, error)

func (f processorFunc) Process(ctx context.Context, req *models.TriageRequest) (*models.TriageResponse, error) {
	return f(ctx, req)
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.WorkerConfig{Timeout: 90000, MaxRetries: 2})
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxRetries)

	assert.Equal(t, 120*time.Second, LoadConfig(config.WorkerConfig{}).Timeout)
}

func TestDecodeInput(t *testing.T) {
	input, err := decodeInput(`{"email_data":{"content":"hi","PEM":"pem@example.com"},"isRegenerate":true,"partner_id":"P-1"}`)
	require.NoError(t, err)
	assert.Equal(t, "hi", input.EmailData.Content)
	assert.Equal(t, "pem@example.com", input.EmailData.PEM)
	assert.True(t, input.IsRegenerate)
	assert.Equal(t, "P-1", input.toRequest().PartnerID)

	_, err = decodeInput(`{not json`)
	assert.True(t, apperrors.IsInputMissing(err))
}

func TestExecute_PassesRequestThrough(t *testing.T) {
	var seen *models.TriageRequest
	h := NewHandler(createTestConfig(), processorFunc(func(_ context.Context, req *models.TriageRequest) (*models.TriageResponse, error) {
		seen = req
		return &models.TriageResponse{RequestID: "r1", CaseType: models.CaseTypeArtwork, Status: models.StatusHandled}, nil
	}), nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{EmailData: &models.EmailData{Content: "x"}, ALID: "AL-1"})
	require.NoError(t, err)
	assert.Equal(t, "AL-1", seen.ALID)
	assert.Equal(t, models.StatusHandled, out.Status)
	assert.Equal(t, models.CaseTypeArtwork, out.CaseType)

	vars, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(vars), `"triageStatus":"handled"`)
}

func TestExecute_Errors(t *testing.T) {
	boom := errors.New("boom")
	h := NewHandler(createTestConfig(), processorFunc(func(context.Context, *models.TriageRequest) (*models.TriageResponse, error) {
		return nil, boom
	}), nil, logger.NewNoOpLogger())

	_, err := h.Execute(context.Background(), nil)
	assert.True(t, apperrors.IsInputMissing(err))

	_, err = h.Execute(context.Background(), &Input{EmailData: &models.EmailData{Content: "x"}})
	assert.ErrorIs(t, err, boom)
}

func TestExecute_WithPipeline(t *testing.T) {
	completer := llm.CompleterFunc(func(_ context.Context, prompt string, opts llm.Options) (string, error) {
		switch {
		case opts.System != "":
			return "Artwork is missing for SRC-5.", nil
		case opts.MaxTokens == 16:
			return "VODJ7", nil
		}
		if strings.HasPrefix(prompt, "List every asset") {
			return "Source Asset ID: SRC-5\nTitle: Movie", nil
		}
		return "Case Number: CS-5\nTitle: Movie", nil
	})
	cat := catalog.New(catalog.Snapshot{CaseTypes: []models.CaseTypeConfig{
		{CaseType: "VODJ7", CannedResponse: "New artwork will be applied.", RequiredFields: []string{"Title"}},
	}})
	pipeline := triage.NewPipeline(completer, cat, triage.Options{AssetLinkBaseURL: "https://portal/assets"}, logger.NewTestLogger(t))

	h := NewHandler(createTestConfig(), pipeline, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{EmailData: &models.EmailData{Content: "<p>Artwork missing</p>"}})
	require.NoError(t, err)
	assert.Equal(t, models.CaseTypeArtwork, out.CaseType)
	assert.Equal(t, models.StatusHandled, out.Status)
	assert.Equal(t, "New artwork will be applied.", out.Triage.PartnerResponse)
	assert.Equal(t, []string{"https://portal/assets/SRC-5/details"}, out.Triage.AssetLink)

	_, err = h.Execute(context.Background(), &Input{EmailData: &models.EmailData{}})
	assert.True(t, apperrors.IsInputMissing(err))
}
