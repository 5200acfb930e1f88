package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"mailtriage/internal/classifier"
	"mailtriage/internal/models"
	"mailtriage/internal/notifier"
	"mailtriage/internal/service"
	"mailtriage/internal/storage"
)

func newTestServer() *Server {
	logger := zap.NewNop()
	svc := service.New(
		classifier.NewKeywordGateway(),
		classifier.NewPolicy(logger),
		storage.NewMemoryStorage(),
		notifier.NewNoopNotifier(),
		logger,
	)
	return New(svc, logger)
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEmail(t *testing.T, resp *http.Response) models.Email {
	t.Helper()
	var email models.Email
	if err := json.NewDecoder(resp.Body).Decode(&email); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return email
}

func TestHandleClassify(t *testing.T) {
	srv := newTestServer()

	req := jsonRequest(http.MethodPost, "/api/v1/emails/classify", map[string]string{
		"from_email": "a@b.com",
		"subject":    "Produto quebrado",
		"body":       "Comprei e chegou com defeito, quero garantia",
	})
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("got status %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	email := decodeEmail(t, resp)
	if email.ID == 0 {
		t.Fatalf("expected a persisted id in the response")
	}
	if email.Category != models.CategoryWarranty {
		t.Fatalf("got category %s, want %s", email.Category, models.CategoryWarranty)
	}
	if !email.RequiresHumanReview {
		t.Fatalf("expected review flag set")
	}
}

func TestHandleClassifyValidation(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name string
		body map[string]string
	}{
		{"invalid sender", map[string]string{"from_email": "not-an-address", "subject": "s", "body": "b"}},
		{"missing sender", map[string]string{"subject": "s", "body": "b"}},
		{"missing subject", map[string]string{"from_email": "a@b.com", "body": "b"}},
		{"missing body", map[string]string{"from_email": "a@b.com", "subject": "s"}},
	}

	for _, tt := range tests {
		resp, err := srv.App().Test(jsonRequest(http.MethodPost, "/api/v1/emails/classify", tt.body))
		if err != nil {
			t.Fatalf("%s: request failed: %v", tt.name, err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: got status %d, want %d", tt.name, resp.StatusCode, http.StatusBadRequest)
		}
	}
}

func TestHandleListAndGet(t *testing.T) {
	srv := newTestServer()

	var ids []int64
	for i := 0; i < 2; i++ {
		resp, err := srv.App().Test(jsonRequest(http.MethodPost, "/api/v1/emails/classify", map[string]string{
			"from_email": "a@b.com",
			"subject":    fmt.Sprintf("assunto %d", i),
			"body":       "corpo",
		}))
		if err != nil {
			t.Fatalf("classify request failed: %v", err)
		}
		email := decodeEmail(t, resp)
		ids = append(ids, email.ID)
	}

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/emails", nil))
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var listed []models.Email
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(listed))
	}
	if listed[0].ID != ids[1] {
		t.Fatalf("expected newest first, got id %d", listed[0].ID)
	}

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/emails/%d", ids[0]), nil))
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/emails/999", nil))
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestHandleUpdate(t *testing.T) {
	srv := newTestServer()

	resp, err := srv.App().Test(jsonRequest(http.MethodPost, "/api/v1/emails/classify", map[string]string{
		"from_email": "a@b.com",
		"subject":    "assunto",
		"body":       "corpo",
	}))
	if err != nil {
		t.Fatalf("classify request failed: %v", err)
	}
	created := decodeEmail(t, resp)

	resp, err = srv.App().Test(jsonRequest(http.MethodPut, fmt.Sprintf("/api/v1/emails/%d", created.ID), map[string]any{
		"category": string(models.CategoryRefund),
	}))
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want %d", resp.StatusCode, http.StatusOK)
	}
	updated := decodeEmail(t, resp)
	if updated.Category != models.CategoryRefund {
		t.Fatalf("got category %s, want %s", updated.Category, models.CategoryRefund)
	}
	if updated.Confidence != created.Confidence {
		t.Fatalf("confidence must be untouched by a category-only update")
	}

	resp, err = srv.App().Test(jsonRequest(http.MethodPut, fmt.Sprintf("/api/v1/emails/%d", created.ID), map[string]any{
		"category": "SPAM",
	}))
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid category: got status %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp, err = srv.App().Test(jsonRequest(http.MethodPut, "/api/v1/emails/999", map[string]any{
		"category": string(models.CategoryRefund),
	}))
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: got status %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	resp, err = srv.App().Test(jsonRequest(http.MethodPut, "/api/v1/emails/abc", map[string]any{}))
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed id: got status %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandlePing(t *testing.T) {
	srv := newTestServer()

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/health/ping", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
}
