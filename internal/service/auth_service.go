package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"velvet-backend/internal/logger"
	"velvet-backend/internal/models"
	"velvet-backend/internal/session"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns anonymous identities and their onboarding sessions.
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
	env        string
}

func NewAuthService(users UserStore, sessions SessionStore, sessionTTL time.Duration, env string) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		env:        env,
	}
}

// CreateAnonymousSession establishes an anonymous identity and inserts its
// onboarding session at step 1. When the session insert fails after the
// identity was created, the identity is left behind (no compensating
// delete — a concurrent retry may still adopt it); the orphan is logged.
func (s *AuthService) CreateAnonymousSession(ctx context.Context) (*models.User, *models.OnboardingSession, error) {
	user := &models.User{IsAnonymous: true}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create anonymous identity: %w", err)
	}

	now := time.Now()
	sess := &models.OnboardingSession{
		Token:       session.GenerateToken(),
		UserID:      user.ID,
		CurrentStep: 1,
		IsAnonymous: true,
		ExpiresAt:   session.ExpiryFrom(now, s.sessionTTL),
		Metadata: map[string]any{
			"environment": s.env,
			"created_by":  "anonymous_signup",
		},
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		logger.Warn("orphaned anonymous identity: session insert failed",
			zap.String("user_id", user.ID.Hex()), zap.Error(err))
		return user, nil, fmt.Errorf("create onboarding session: %w", err)
	}
	return user, sess, nil
}

// GetCurrentSession returns the newest open session for the user. Expired
// sessions are reported as repository.ErrNotFound even if the TTL reaper
// has not deleted them yet.
func (s *AuthService) GetCurrentSession(ctx context.Context, userID bson.ObjectID) (*models.OnboardingSession, error) {
	sess, err := s.sessions.FindCurrentByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		return nil, ErrNotFound
	}
	return sess, nil
}

// UpdateStep sets the session's step pointer.
func (s *AuthService) UpdateStep(ctx context.Context, sessionID bson.ObjectID, step int) error {
	if step < 1 {
		return &models.ValidationError{Field: "step", Reason: "must be at least 1"}
	}
	return s.sessions.UpdateStep(ctx, sessionID, step)
}

// ConvertAnonymousToPermanent attaches email and password to the anonymous
// identity. The password is hashed and stored, not discarded.
func (s *AuthService) ConvertAnonymousToPermanent(ctx context.Context, userID bson.ObjectID, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &models.ValidationError{Field: "email", Reason: "is invalid"}
	}
	if len(password) < 8 {
		return nil, &models.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.ConvertToPermanent(ctx, userID, email, string(hash))
	if err != nil {
		return nil, fmt.Errorf("convert identity: %w", err)
	}

	// Best effort — the identity is already permanent even if the session
	// rows miss the conversion stamp.
	if err := s.sessions.MarkConverted(ctx, userID, time.Now()); err != nil {
		logger.Warn("failed to stamp sessions as converted",
			zap.String("user_id", userID.Hex()), zap.Error(err))
	}
	return user, nil
}

// IsAnonymousUser reports whether the identity is anonymous; false on any
// failure.
func (s *AuthService) IsAnonymousUser(ctx context.Context, userID bson.ObjectID) bool {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false
	}
	return user.IsAnonymous
}
