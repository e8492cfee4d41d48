// Package notify delivers composed triage responses over AWS: the partner reply by SES
// and an operator escalation by SNS for cases the classifier could not place.
package notify

import (
	"context"
	"fmt"
	"strings"

	apperrors "case-triage-workers/internal/common/errors"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/models"
)

type EmailSender interface {
	SendText(ctx context.Context, to, cc []string, subject, body string) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, subject, message string, attrs map[string]string) (string, error)
}

// Notifier sends through whichever channels are configured. A nil channel is skipped.
type Notifier struct {
	email     EmailSender
	publisher Publisher
	logger    logger.Logger
}

func New(email EmailSender, publisher Publisher, log logger.Logger) *Notifier {
	return &Notifier{email: email, publisher: publisher, logger: log}
}

func (n *Notifier) Name() string { return "notify" }

// Record implements triage.Sink.
func (n *Notifier) Record(ctx context.Context, req *models.TriageRequest, resp *models.TriageResponse) error {
	if resp.Status == models.StatusUnsupported {
		return n.escalate(ctx, req, resp)
	}
	return n.replyToPartner(ctx, req, resp)
}

func (n *Notifier) replyToPartner(ctx context.Context, req *models.TriageRequest, resp *models.TriageResponse) error {
	if n.email == nil || req.EmailData == nil || strings.TrimSpace(resp.PartnerResponse) == "" {
		return nil
	}
	to := splitAddresses(req.EmailData.PartnerPOC)
	if len(to) == 0 {
		return nil
	}

	id, err := n.email.SendText(ctx, to, splitAddresses(req.EmailData.CC), replySubject(req, resp), resp.PartnerResponse)
	if err != nil {
		return apperrors.NewNotificationSendFailedError("ses", err)
	}
	n.logger.Info("partner reply sent", map[string]interface{}{
		"requestId": resp.RequestID,
		"messageId": id,
		"to":        len(to),
	})
	return nil
}

func (n *Notifier) escalate(ctx context.Context, req *models.TriageRequest, resp *models.TriageResponse) error {
	if n.publisher == nil {
		return nil
	}
	subject := fmt.Sprintf("Unclassified case %s", resp.CaseNumber)
	attrs := map[string]string{
		"request_id": resp.RequestID,
		"case_type":  string(resp.CaseType),
	}
	if req.EmailData != nil && req.EmailData.PEM != "" {
		attrs["pem"] = req.EmailData.PEM
	}

	id, err := n.publisher.Publish(ctx, subject, resp.OperatorResponse, attrs)
	if err != nil {
		return apperrors.NewNotificationSendFailedError("sns", err)
	}
	n.logger.Info("escalation published", map[string]interface{}{
		"requestId": resp.RequestID,
		"messageId": id,
	})
	return nil
}

func replySubject(req *models.TriageRequest, resp *models.TriageResponse) string {
	if req.EmailData.Subject != "" {
		return "Re: " + req.EmailData.Subject
	}
	if models.IsPresent(resp.CaseNumber) {
		return "Case " + resp.CaseNumber
	}
	return "Your support request"
}

// splitAddresses accepts comma or semicolon separated address lists.
func splitAddresses(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
