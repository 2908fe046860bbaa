package handlers

import (
	"encoding/json"
	"net/http"

	"velvet-backend/internal/billing"
	"velvet-backend/internal/logger"

	"go.uber.org/zap"
)

// BillingHandler hosts the two standalone billing endpoints. They are
// consumed by unrelated parts of the app and share nothing with the
// onboarding flow beyond the router.
type BillingHandler struct {
	client billing.Client
}

func NewBillingHandler(client billing.Client) *BillingHandler {
	return &BillingHandler{client: client}
}

type PortalRequest struct {
	CustomerID string `json:"customer_id"`
	ReturnURL  string `json:"return_url"`
}

type VerifyRequest struct {
	CustomerID string `json:"customer_id"`
}

// --- POST /billing/portal ---

func (h *BillingHandler) CreatePortalSession(w http.ResponseWriter, r *http.Request) {
	var req PortalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.CustomerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_id is required"})
		return
	}

	portal, err := h.client.CreatePortalSession(r.Context(), req.CustomerID, req.ReturnURL)
	if err != nil {
		logger.Error("portal session creation failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to create portal session"})
		return
	}
	writeJSON(w, http.StatusOK, portal)
}

// --- POST /billing/verify ---

func (h *BillingHandler) VerifySubscription(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.CustomerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_id is required"})
		return
	}

	sub, err := h.client.VerifySubscription(r.Context(), req.CustomerID)
	if err != nil {
		logger.Error("subscription verification failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to verify subscription"})
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
