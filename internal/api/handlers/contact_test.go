package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/osa911/contactrelay/internal/api/constants"
	contactdto "github.com/osa911/contactrelay/internal/api/dto/contact"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/mail"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	outcome mail.Outcome
	got     []contact.Submission
	ctxErrs []error
}

func (s *stubSender) Send(ctx context.Context, sub contact.Submission) mail.Outcome {
	s.got = append(s.got, sub)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.outcome
}

func newTestLogger(t *testing.T) (*logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.Config{Level: logging.LevelDebug, Output: &buf})
	require.NoError(t, err)
	return logger, &buf
}

func serveSubmit(t *testing.T, h *ContactHandler, sub interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return serveSubmitWithContext(t, context.Background(), h, sub)
}

func serveSubmitWithContext(t *testing.T, ctx context.Context, h *ContactHandler, sub interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/contact", http.NoBody).WithContext(ctx)
	c.Set(constants.ContextKeyRequestID, "req-1")
	if sub != nil {
		c.Set(constants.ContextKeySubmission, sub)
	}

	h.Submit(c)
	return w
}

func TestSubmitReportsRelayOutcome(t *testing.T) {
	sub := contact.Submission{Name: "Jo", Email: "jo@example.com", Message: "Hello there, this is long enough."}

	tests := []struct {
		name      string
		outcome   mail.Outcome
		delivered bool
		logged    string
	}{
		{"delivered", mail.Outcome{Status: mail.StatusDelivered}, true, "[INFO]"},
		{"not configured", mail.Outcome{Status: mail.StatusNotConfigured, Err: mail.ErrNotConfigured}, false, "[WARN]"},
		{"transport failed", mail.Outcome{Status: mail.StatusTransportFailed, Err: errors.New("connection refused")}, false, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &stubSender{outcome: tt.outcome}
			logger, logs := newTestLogger(t)

			w := serveSubmit(t, NewContactHandler(sender, logger), sub)

			require.Equal(t, http.StatusOK, w.Code)
			var resp contactdto.ContactResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.OK)
			assert.Equal(t, tt.delivered, resp.Delivered)

			require.Len(t, sender.got, 1)
			assert.Equal(t, sub, sender.got[0])
			assert.Contains(t, logs.String(), tt.logged)
			assert.Contains(t, logs.String(), "req-1")
		})
	}
}

func TestSubmitIgnoresClientDisconnect(t *testing.T) {
	sub := contact.Submission{Name: "Jo", Email: "jo@example.com", Message: "Hello there, this is long enough."}
	sender := &stubSender{outcome: mail.Outcome{Status: mail.StatusDelivered}}
	logger, _ := newTestLogger(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := serveSubmitWithContext(t, ctx, NewContactHandler(sender, logger), sub)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.ctxErrs, 1)
	assert.NoError(t, sender.ctxErrs[0])
}

func TestSubmitWithoutSubmissionInContext(t *testing.T) {
	sender := &stubSender{}
	logger, logs := newTestLogger(t)

	w := serveSubmit(t, NewContactHandler(sender, logger), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, sender.got)
	assert.Contains(t, logs.String(), "Contact data not found in context")
}

type staticStatus bool

func (s staticStatus) Configured() bool { return bool(s) }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	NewHealthHandler(staticStatus(true)).Check(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","smtp_configured":true,"version":"dev"}`, w.Body.String())
}
