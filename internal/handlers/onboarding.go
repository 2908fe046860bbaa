package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"velvet-backend/internal/flow"
	"velvet-backend/internal/models"
	"velvet-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type OnboardingHandler struct {
	auth *service.AuthService
	data *service.OnboardingService
}

func NewOnboardingHandler(auth *service.AuthService, data *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		auth: auth,
		data: data,
	}
}

// --- Request types ---

type SaveGirlRequest struct {
	SessionID   string  `json:"session_id"`
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Description string  `json:"description,omitempty"`
	Nationality string  `json:"nationality,omitempty"`
	Rating      float64 `json:"rating"`
}

type SaveEntryRequest struct {
	SessionID       string    `json:"session_id"`
	GirlID          string    `json:"girl_id"`
	Date            time.Time `json:"date"`
	Amount          float64   `json:"amount"`
	DurationMinutes int       `json:"duration_minutes"`
	NumberOfNuts    int       `json:"number_of_nuts"`
}

type UpdateStepRequest struct {
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
}

type CompleteRequest struct {
	SessionID string `json:"session_id"`
}

// --- GET /onboarding/session ---
// Restores the caller's current session and its step-status projection.

func (h *OnboardingHandler) GetCurrentSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sess, err := h.auth.GetCurrentSession(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
			return
		}
		writeServiceError(w, err)
		return
	}

	status := flow.StepStatus{
		CurrentStep: sess.CurrentStep,
		SessionID:   sess.ID,
	}
	for step := 1; step < sess.CurrentStep; step++ {
		status.CompletedSteps = append(status.CompletedSteps, step)
	}
	if girl, err := h.data.GetGirl(r.Context(), sess.ID); err == nil {
		status.GirlID = girl.ID
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": sess,
		"status":  status,
	})
}

// --- PATCH /onboarding/step ---
// Sets the step pointer; the response reports boolean success.

func (h *OnboardingHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req UpdateStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sessionID, ok := parseObjectID(w, req.SessionID, "session_id")
	if !ok {
		return
	}

	if err := h.auth.UpdateStep(r.Context(), sessionID, req.Step); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- POST /onboarding/girls ---

func (h *OnboardingHandler) SaveGirl(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SaveGirlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sessionID, ok := parseObjectID(w, req.SessionID, "session_id")
	if !ok {
		return
	}

	girl, err := h.data.SaveGirl(r.Context(), userID, sessionID, &models.OnboardingGirl{
		Name:        req.Name,
		Age:         req.Age,
		Description: req.Description,
		Nationality: req.Nationality,
		Rating:      req.Rating,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"girl": girl})
}

// --- PATCH /onboarding/girls/{id} ---

func (h *OnboardingHandler) UpdateGirl(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	girlID, ok := parseObjectID(w, chi.URLParam(r, "id"), "girl id")
	if !ok {
		return
	}

	var upd service.GirlUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	girl, err := h.data.UpdateGirl(r.Context(), girlID, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"girl": girl})
}

// --- GET /onboarding/girls?session_id= ---

func (h *OnboardingHandler) GetGirl(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	sessionID, ok := parseObjectID(w, r.URL.Query().Get("session_id"), "session_id")
	if !ok {
		return
	}

	girl, err := h.data.GetGirl(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"girl": girl})
}

// --- POST /onboarding/entries ---

func (h *OnboardingHandler) SaveDataEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sessionID, ok := parseObjectID(w, req.SessionID, "session_id")
	if !ok {
		return
	}
	girlID, ok := parseObjectID(w, req.GirlID, "girl_id")
	if !ok {
		return
	}

	entry, err := h.data.SaveDataEntry(r.Context(), userID, sessionID, girlID, &models.OnboardingDataEntry{
		Date:            req.Date,
		Amount:          req.Amount,
		DurationMinutes: req.DurationMinutes,
		NumberOfNuts:    req.NumberOfNuts,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"entry": entry})
}

// --- GET /onboarding/entries?session_id= ---

func (h *OnboardingHandler) GetDataEntry(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	sessionID, ok := parseObjectID(w, r.URL.Query().Get("session_id"), "session_id")
	if !ok {
		return
	}

	entry, err := h.data.GetDataEntry(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entry": entry})
}

// --- POST /onboarding/complete ---
// Triggers the finalize migration. A business-level failure (absent or
// already-completed session) answers 409 with the migration's own message.

func (h *OnboardingHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sessionID, ok := parseObjectID(w, req.SessionID, "session_id")
	if !ok {
		return
	}

	result, err := h.data.CompleteOnboarding(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusConflict, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parseObjectID(w http.ResponseWriter, hex, field string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + field})
		return bson.ObjectID{}, false
	}
	return id, true
}
