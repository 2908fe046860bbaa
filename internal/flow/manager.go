package flow

import (
	"context"
	"errors"

	"velvet-backend/internal/logger"
	"velvet-backend/internal/models"
	"velvet-backend/internal/service"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// AuthAPI is the slice of the auth service the flow depends on.
type AuthAPI interface {
	CreateAnonymousSession(ctx context.Context) (*models.User, *models.OnboardingSession, error)
	GetCurrentSession(ctx context.Context, userID bson.ObjectID) (*models.OnboardingSession, error)
	UpdateStep(ctx context.Context, sessionID bson.ObjectID, step int) error
}

// DataAPI is the slice of the onboarding data service the flow depends on.
type DataAPI interface {
	SaveGirl(ctx context.Context, userID, sessionID bson.ObjectID, girl *models.OnboardingGirl) (*models.OnboardingGirl, error)
	GetGirl(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingGirl, error)
	SaveDataEntry(ctx context.Context, userID, sessionID, girlID bson.ObjectID, entry *models.OnboardingDataEntry) (*models.OnboardingDataEntry, error)
	GetDataEntry(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingDataEntry, error)
	CompleteOnboarding(ctx context.Context, sessionID bson.ObjectID) (*service.MigrationResult, error)
}

// StepStatus is the client-facing projection of wizard progress. It is
// derived state, never persisted on its own.
type StepStatus struct {
	CurrentStep    int           `json:"current_step"`
	CompletedSteps []int         `json:"completed_steps"`
	SessionID      bson.ObjectID `json:"session_id,omitempty"`
	GirlID         bson.ObjectID `json:"girl_id,omitempty"`
}

var ErrNoActiveSession = errors.New("no active session")

// Manager initializes or restores the onboarding session and exposes the
// step-update and completion actions. A nil session after Initialize is a
// hard stop for the controller.
type Manager struct {
	auth AuthAPI
	data DataAPI

	session *models.OnboardingSession
	status  StepStatus
	loading bool
	err     error
}

func NewManager(auth AuthAPI, data DataAPI) *Manager {
	return &Manager{auth: auth, data: data}
}

// Initialize restores the user's current session when one exists, otherwise
// creates a fresh anonymous session. Any failure leaves the session nil and
// the error recorded.
func (m *Manager) Initialize(ctx context.Context, userID bson.ObjectID) error {
	m.loading = true
	defer func() { m.loading = false }()
	m.err = nil
	m.session = nil
	m.status = StepStatus{CurrentStep: int(StepWelcome)}

	if !userID.IsZero() {
		sess, err := m.auth.GetCurrentSession(ctx, userID)
		switch {
		case err == nil:
			m.adopt(ctx, sess)
			return nil
		case errors.Is(err, service.ErrNotFound):
			// no open session for this user, start a new one below
		default:
			m.err = err
			return err
		}
	}

	_, sess, err := m.auth.CreateAnonymousSession(ctx)
	if err != nil {
		m.err = err
		return err
	}
	m.adopt(ctx, sess)
	return nil
}

// adopt takes the session's step pointer as authoritative and rebuilds the
// projection, including a previously captured girl id if the session
// already holds one.
func (m *Manager) adopt(ctx context.Context, sess *models.OnboardingSession) {
	m.session = sess
	completed := make([]int, 0, sess.CurrentStep-1)
	for step := 1; step < sess.CurrentStep; step++ {
		completed = append(completed, step)
	}
	m.status = StepStatus{
		CurrentStep:    sess.CurrentStep,
		CompletedSteps: completed,
		SessionID:      sess.ID,
	}
	if sess.CurrentStep > int(StepGirlEntry) {
		if girl, err := m.data.GetGirl(ctx, sess.ID); err == nil {
			m.status.GirlID = girl.ID
		}
	}
}

// UpdateStep persists the step pointer and, only on success, advances the
// projection and records the previous step as completed.
func (m *Manager) UpdateStep(ctx context.Context, step int) bool {
	if m.session == nil {
		return false
	}
	if err := m.auth.UpdateStep(ctx, m.session.ID, step); err != nil {
		logger.Warn("failed to update session step",
			zap.String("session_id", m.session.ID.Hex()),
			zap.Int("step", step), zap.Error(err))
		return false
	}
	prev := m.status.CurrentStep
	m.session.CurrentStep = step
	m.status.CurrentStep = step
	if prev < step && !containsStep(m.status.CompletedSteps, prev) {
		m.status.CompletedSteps = append(m.status.CompletedSteps, prev)
	}
	return true
}

// CompleteOnboarding fails fast when no session is active.
func (m *Manager) CompleteOnboarding(ctx context.Context) (*service.MigrationResult, error) {
	if m.session == nil {
		return nil, ErrNoActiveSession
	}
	return m.data.CompleteOnboarding(ctx, m.session.ID)
}

// Reinitialize is the manual escape hatch: it re-runs the mount sequence
// for the current session's owner.
func (m *Manager) Reinitialize(ctx context.Context) error {
	var userID bson.ObjectID
	if m.session != nil {
		userID = m.session.UserID
	}
	return m.Initialize(ctx, userID)
}

func (m *Manager) Session() *models.OnboardingSession { return m.session }
func (m *Manager) Status() StepStatus                 { return m.status }
func (m *Manager) Loading() bool                      { return m.loading }
func (m *Manager) Err() error                         { return m.err }

// SetGirlID records the captured girl id in the projection.
func (m *Manager) SetGirlID(id bson.ObjectID) {
	m.status.GirlID = id
}

func containsStep(steps []int, step int) bool {
	for _, s := range steps {
		if s == step {
			return true
		}
	}
	return false
}
