package http_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/rallykit/rallybot/pkg/controller/http"
	"github.com/rallykit/rallybot/pkg/repository/memory"
	"github.com/rallykit/rallybot/pkg/usecase"
)

// computeSlackSignature computes the Slack signature for testing
func computeSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	return "v0=" + hex.EncodeToString(h.Sum(nil))
}

func TestVerifySlackSignature(t *testing.T) {
	signingSecret := "test-signing-secret"
	body := []byte(`{"type":"url_verification","challenge":"test"}`)

	t.Run("valid signature", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		signature := computeSlackSignature(signingSecret, timestamp, string(body))

		gt.NoError(t, httpctrl.VerifySlackSignature(signingSecret, timestamp, signature, body))
	})

	t.Run("invalid signature", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)

		err := httpctrl.VerifySlackSignature(signingSecret, timestamp, "v0=invalid_signature", body)
		gt.Value(t, err).NotNil()
	})

	t.Run("missing timestamp", func(t *testing.T) {
		signature := computeSlackSignature(signingSecret, "123456", string(body))

		err := httpctrl.VerifySlackSignature(signingSecret, "", signature, body)
		gt.Value(t, err).NotNil()
	})

	t.Run("missing signature", func(t *testing.T) {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)

		err := httpctrl.VerifySlackSignature(signingSecret, timestamp, "", body)
		gt.Value(t, err).NotNil()
	})

	t.Run("timestamp too old", func(t *testing.T) {
		oldTimestamp := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
		signature := computeSlackSignature(signingSecret, oldTimestamp, string(body))

		err := httpctrl.VerifySlackSignature(signingSecret, oldTimestamp, signature, body)
		gt.Value(t, err).NotNil()
	})
}

func TestEventWebhook(t *testing.T) {
	const signingSecret = "test-signing-secret"

	uc := usecase.New(memory.New())
	server := httpctrl.New(uc, httpctrl.WithSigningSecret(signingSecret))

	t.Run("answers the URL verification challenge", func(t *testing.T) {
		body := `{"type":"url_verification","challenge":"challenge-token"}`
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)

		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Slack-Request-Timestamp", timestamp)
		req.Header.Set("X-Slack-Signature", computeSlackSignature(signingSecret, timestamp, body))

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Body.String()).Equal("challenge-token")
	})

	t.Run("rejects an unsigned request", func(t *testing.T) {
		body := `{"type":"url_verification","challenge":"challenge-token"}`

		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("health check needs no signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})
}

func TestCommandWebhook(t *testing.T) {
	t.Run("slash command creates the activity", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, usecase.WithSuperuser("root"))
		server := httpctrl.New(uc)

		form := url.Values{
			"command":      {"/activity_add"},
			"text":         {"run-club"},
			"user_id":      {"U001"},
			"user_name":    {"root"},
			"channel_id":   {"D001"},
			"channel_name": {"directmessage"},
		}
		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/command", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)

		activity, err := repo.Activities().GetByName(req.Context(), "run-club")
		gt.NoError(t, err).Required()
		gt.Value(t, activity.Name).Equal("run-club")
	})

	t.Run("unknown slash command is rejected", func(t *testing.T) {
		uc := usecase.New(memory.New())
		server := httpctrl.New(uc)

		form := url.Values{
			"command":   {"/frobnicate"},
			"user_id":   {"U001"},
			"user_name": {"member"},
		}
		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/command", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
