package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func signPayload(secret, messageID, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(messageID + "." + timestamp + "." + string(body)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookRequest(body []byte) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(body))
}

func TestVerifyWebhookSignature(t *testing.T) {
	const secret = "whsec_test"
	body := []byte(`{"type":"user.created"}`)

	t.Run("no secret configured skips verification", func(t *testing.T) {
		t.Setenv("CLERK_WEBHOOK_SECRET", "")
		if !verifyWebhookSignature(webhookRequest(body), body) {
			t.Error("verification should pass when no secret is configured")
		}
	})

	t.Run("valid signature", func(t *testing.T) {
		t.Setenv("CLERK_WEBHOOK_SECRET", secret)
		req := webhookRequest(body)
		req.Header.Set("svix-id", "msg_1")
		req.Header.Set("svix-timestamp", "1710000000")
		req.Header.Set("svix-signature", "v1,"+signPayload(secret, "msg_1", "1710000000", body))

		if !verifyWebhookSignature(req, body) {
			t.Error("valid signature rejected")
		}
	})

	t.Run("valid signature among several", func(t *testing.T) {
		t.Setenv("CLERK_WEBHOOK_SECRET", secret)
		req := webhookRequest(body)
		req.Header.Set("svix-id", "msg_1")
		req.Header.Set("svix-timestamp", "1710000000")
		good := signPayload(secret, "msg_1", "1710000000", body)
		req.Header.Set("svix-signature", "v1,bogus v1,"+good)

		if !verifyWebhookSignature(req, body) {
			t.Error("valid signature in a multi-signature header rejected")
		}
	})

	t.Run("tampered body", func(t *testing.T) {
		t.Setenv("CLERK_WEBHOOK_SECRET", secret)
		req := webhookRequest(body)
		req.Header.Set("svix-id", "msg_1")
		req.Header.Set("svix-timestamp", "1710000000")
		req.Header.Set("svix-signature", "v1,"+signPayload(secret, "msg_1", "1710000000", []byte("other")))

		if verifyWebhookSignature(req, body) {
			t.Error("signature over a different body accepted")
		}
	})

	t.Run("missing headers", func(t *testing.T) {
		t.Setenv("CLERK_WEBHOOK_SECRET", secret)
		if verifyWebhookSignature(webhookRequest(body), body) {
			t.Error("request without svix headers accepted")
		}
	})
}
