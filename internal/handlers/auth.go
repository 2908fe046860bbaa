package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"velvet-backend/internal/logger"
	"velvet-backend/internal/middleware"
	"velvet-backend/internal/models"
	"velvet-backend/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/resend/resend-go/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth      *service.AuthService
	jwtSecret string
	resendKey string
	fromEmail string
}

func NewAuthHandler(auth *service.AuthService, jwtSecret, resendKey, fromEmail string) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		jwtSecret: jwtSecret,
		resendKey: resendKey,
		fromEmail: fromEmail,
	}
}

// --- Request / Response types ---

type ConvertRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token   string                    `json:"token"`
	User    *models.User              `json:"user"`
	Session *models.OnboardingSession `json:"session"`
}

// --- POST /onboarding/session ---
// Establishes an anonymous identity with its onboarding session and issues
// a JWT for it.

func (h *AuthHandler) CreateAnonymousSession(w http.ResponseWriter, r *http.Request) {
	user, sess, err := h.auth.CreateAnonymousSession(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.mintToken(user)
	if err != nil {
		logger.Error("failed to sign JWT", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{
		Token:   token,
		User:    user,
		Session: sess,
	})
}

// --- POST /auth/convert ---
// Attaches permanent credentials to the authenticated anonymous identity.

func (h *AuthHandler) ConvertToPermanent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.auth.ConvertAnonymousToPermanent(r.Context(), userID, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Email delivery is best-effort; the conversion already happened.
	if err := h.sendWelcomeEmail(user.Email); err != nil {
		logger.Warn("failed to send welcome email", zap.Error(err))
	}

	token, err := h.mintToken(user)
	if err != nil {
		logger.Error("failed to sign JWT", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// --- GET /auth/status ---

func (h *AuthHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"is_anonymous": h.auth.IsAnonymousUser(r.Context(), userID),
	})
}

// --- Helpers ---

func (h *AuthHandler) mintToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":      user.ID.Hex(),
		"email":        user.Email,
		"is_anonymous": user.IsAnonymous,
		"exp":          time.Now().Add(30 * 24 * time.Hour).Unix(),
		"iat":          time.Now().Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *AuthHandler) sendWelcomeEmail(to string) error {
	if h.resendKey == "" {
		logger.Info("RESEND_API_KEY not set, skipping welcome email",
			zap.String("to", to))
		return nil
	}

	client := resend.NewClient(h.resendKey)
	params := &resend.SendEmailRequest{
		From:    h.fromEmail,
		To:      []string{to},
		Subject: "Your Velvet account is ready",
		Html: `
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">Welcome to Velvet</h2>
				<p>Your account has been created and your onboarding progress is saved.</p>
				<p style="color: #888; font-size: 14px; margin-top: 16px;">
					You can now sign in with your email and password on any device.
				</p>
			</div>
		`,
	}

	if _, err := client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// requireUserID resolves the authenticated user id from the context,
// answering 401 itself when it is missing or malformed.
func requireUserID(w http.ResponseWriter, r *http.Request) (bson.ObjectID, bool) {
	hex := middleware.GetUserID(r.Context())
	if hex == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user ID"})
		return bson.ObjectID{}, false
	}
	return id, true
}
