package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"velvet-backend/internal/billing"
)

func TestCreatePortalSession(t *testing.T) {
	mock := billing.NewMockClient()
	h := NewBillingHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/billing/portal",
		strings.NewReader(`{"customer_id":"cus_123","return_url":"https://app.example.com"}`))
	rec := httptest.NewRecorder()
	h.CreatePortalSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out billing.PortalSession
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.URL == "" {
		t.Fatal("expected a portal url")
	}
	if mock.LastCustomer != "cus_123" {
		t.Fatalf("expected customer to be forwarded, got %q", mock.LastCustomer)
	}
}

func TestCreatePortalSessionRequiresCustomer(t *testing.T) {
	h := NewBillingHandler(billing.NewMockClient())

	req := httptest.NewRequest(http.MethodPost, "/billing/portal", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CreatePortalSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	assertErrorBody(t, rec)
}

func TestCreatePortalSessionUpstreamFailure(t *testing.T) {
	mock := billing.NewMockClient()
	mock.Err = errors.New("provider unavailable")
	h := NewBillingHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/billing/portal",
		strings.NewReader(`{"customer_id":"cus_123"}`))
	rec := httptest.NewRecorder()
	h.CreatePortalSession(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	assertErrorBody(t, rec)
}

func TestVerifySubscription(t *testing.T) {
	mock := billing.NewMockClient()
	h := NewBillingHandler(mock)

	req := httptest.NewRequest(http.MethodPost, "/billing/verify",
		strings.NewReader(`{"customer_id":"cus_456"}`))
	rec := httptest.NewRecorder()
	h.VerifySubscription(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out billing.Subscription
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Active || out.Plan != "monthly" {
		t.Fatalf("unexpected subscription %+v", out)
	}
}

func TestVerifySubscriptionBadBody(t *testing.T) {
	h := NewBillingHandler(billing.NewMockClient())

	req := httptest.NewRequest(http.MethodPost, "/billing/verify", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.VerifySubscription(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	assertErrorBody(t, rec)
}

func assertErrorBody(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("failures must carry an error body")
	}
}
