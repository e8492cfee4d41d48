package notify

import (
	"context"
	"errors"
	"testing"

	apperrors "case-triage-workers/internal/common/errors"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	to, cc        []string
	subject, body string
}

type fakeEmail struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmail) SendText(_ context.Context, to, cc []string, subject, body string) (string, error) {
	f.sent = append(f.sent, sentEmail{to: to, cc: cc, subject: subject, body: body})
	return "msg-1", f.err
}

type published struct {
	subject, message string
	attrs            map[string]string
}

type fakePublisher struct {
	published []published
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, subject, message string, attrs map[string]string) (string, error) {
	f.published = append(f.published, published{subject: subject, message: message, attrs: attrs})
	return "sns-1", f.err
}

func TestNotifier_PartnerReply(t *testing.T) {
	email := &fakeEmail{}
	pub := &fakePublisher{}
	n := New(email, pub, logger.NewTestLogger(t))

	req := &models.TriageRequest{EmailData: &models.EmailData{
		Content:    "x",
		Subject:    "Playback broken",
		PartnerPOC: "a@partner.com; b@partner.com",
		CC:         "pem@example.com",
	}}
	resp := &models.TriageResponse{RequestID: "r1", Status: models.StatusHandled, PartnerResponse: "We are on it."}

	require.NoError(t, n.Record(context.Background(), req, resp))
	require.Len(t, email.sent, 1)
	assert.Equal(t, []string{"a@partner.com", "b@partner.com"}, email.sent[0].to)
	assert.Equal(t, []string{"pem@example.com"}, email.sent[0].cc)
	assert.Equal(t, "Re: Playback broken", email.sent[0].subject)
	assert.Equal(t, "We are on it.", email.sent[0].body)
	assert.Empty(t, pub.published)
}

func TestNotifier_SkipsWithoutRecipient(t *testing.T) {
	email := &fakeEmail{}
	n := New(email, nil, logger.NewNoOpLogger())

	resp := &models.TriageResponse{Status: models.StatusHandled, PartnerResponse: "x"}
	require.NoError(t, n.Record(context.Background(), &models.TriageRequest{EmailData: &models.EmailData{Content: "x"}}, resp))
	assert.Empty(t, email.sent)
}

func TestNotifier_EscalatesUnsupported(t *testing.T) {
	email := &fakeEmail{}
	pub := &fakePublisher{}
	n := New(email, pub, logger.NewTestLogger(t))

	req := &models.TriageRequest{EmailData: &models.EmailData{Content: "x", PEM: "pem@example.com", PartnerPOC: "a@partner.com"}}
	resp := &models.TriageResponse{
		RequestID:        "r2",
		CaseType:         models.CaseTypeGeneral,
		CaseNumber:       "CS-9",
		Status:           models.StatusUnsupported,
		OperatorResponse: "Operator actionable response based on the case: ...",
	}

	require.NoError(t, n.Record(context.Background(), req, resp))
	require.Len(t, pub.published, 1)
	assert.Equal(t, "Unclassified case CS-9", pub.published[0].subject)
	assert.Equal(t, "General", pub.published[0].attrs["case_type"])
	assert.Equal(t, "pem@example.com", pub.published[0].attrs["pem"])
	assert.Empty(t, email.sent)
}

func TestNotifier_WrapsChannelErrors(t *testing.T) {
	n := New(&fakeEmail{err: errors.New("throttled")}, &fakePublisher{err: errors.New("denied")}, logger.NewNoOpLogger())

	req := &models.TriageRequest{EmailData: &models.EmailData{Content: "x", PartnerPOC: "a@partner.com"}}
	err := n.Record(context.Background(), req, &models.TriageResponse{Status: models.StatusMissingFields, PartnerResponse: "x"})
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotificationSendFailed, stdErr.Code)

	err = n.Record(context.Background(), req, &models.TriageResponse{Status: models.StatusUnsupported})
	assert.Error(t, err)
}
