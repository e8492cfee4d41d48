// Package archive indexes composed triage responses into Elasticsearch for audit and search.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	apperrors "case-triage-workers/internal/common/errors"
	"case-triage-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

// Document is the archived shape of one triage run.
type Document struct {
	RequestID          string                `json:"request_id"`
	ArchivedAt         time.Time             `json:"archived_at"`
	IsRegenerate       bool                  `json:"is_regenerate"`
	Subject            string                `json:"subject,omitempty"`
	From               string                `json:"from,omitempty"`
	Response           models.TriageResponse `json:"response"`
	MissingEmailFields []string              `json:"missing_email_fields,omitempty"`
}

// Archiver writes one document per request id. Re-indexing a request id replaces it.
type Archiver struct {
	client *elasticsearch.Client
	index  string
	now    func() time.Time
}

func New(client *elasticsearch.Client, index string) *Archiver {
	return &Archiver{client: client, index: index, now: time.Now}
}

func (a *Archiver) Name() string { return "archive" }

// Record implements triage.Sink.
func (a *Archiver) Record(ctx context.Context, req *models.TriageRequest, resp *models.TriageResponse) error {
	doc := Document{
		RequestID:          resp.RequestID,
		ArchivedAt:         a.now().UTC(),
		IsRegenerate:       req.IsRegenerate,
		Response:           *resp,
		MissingEmailFields: resp.MissingEmailFields,
	}
	if req.EmailData != nil {
		doc.Subject = req.EmailData.Subject
		doc.From = req.EmailData.From
	}
	return a.Index(ctx, doc)
}

func (a *Archiver) Index(ctx context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewArchiveFailedError(doc.RequestID, err)
	}

	res, err := a.client.Index(
		a.index,
		bytes.NewReader(body),
		a.client.Index.WithContext(ctx),
		a.client.Index.WithDocumentID(doc.RequestID),
	)
	if err != nil {
		return apperrors.NewArchiveFailedError(doc.RequestID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return apperrors.NewArchiveFailedError(doc.RequestID, fmt.Errorf("%s: %s", res.Status(), msg))
	}
	return nil
}

// Get fetches an archived document by request id.
func (a *Archiver) Get(ctx context.Context, requestID string) (*Document, error) {
	res, err := a.client.Get(a.index, requestID, a.client.Get.WithContext(ctx))
	if err != nil {
		return nil, apperrors.NewArchiveFailedError(requestID, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, apperrors.NewResourceNotFoundError("archived case", requestID)
	}
	if res.IsError() {
		return nil, apperrors.NewArchiveFailedError(requestID, fmt.Errorf("get: %s", res.Status()))
	}

	var envelope struct {
		Source Document `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, apperrors.NewArchiveFailedError(requestID, err)
	}
	return &envelope.Source, nil
}
