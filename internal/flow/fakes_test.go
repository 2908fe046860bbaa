package flow

import (
	"context"

	"velvet-backend/internal/models"
	"velvet-backend/internal/service"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeAuth implements AuthAPI in memory.
type fakeAuth struct {
	current *models.OnboardingSession

	createErr error
	getErr    error
	updateErr error

	createCalls int
	stepUpdates []int
}

func (f *fakeAuth) CreateAnonymousSession(ctx context.Context) (*models.User, *models.OnboardingSession, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, nil, f.createErr
	}
	user := &models.User{ID: bson.NewObjectID(), IsAnonymous: true}
	sess := &models.OnboardingSession{
		ID:          bson.NewObjectID(),
		UserID:      user.ID,
		CurrentStep: 1,
		IsAnonymous: true,
	}
	f.current = sess
	return user, sess, nil
}

func (f *fakeAuth) GetCurrentSession(ctx context.Context, userID bson.ObjectID) (*models.OnboardingSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.current == nil || f.current.UserID != userID {
		return nil, service.ErrNotFound
	}
	return f.current, nil
}

func (f *fakeAuth) UpdateStep(ctx context.Context, sessionID bson.ObjectID, step int) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.stepUpdates = append(f.stepUpdates, step)
	if f.current != nil && f.current.ID == sessionID {
		f.current.CurrentStep = step
	}
	return nil
}

// fakeData implements DataAPI in memory.
type fakeData struct {
	girl  *models.OnboardingGirl
	entry *models.OnboardingDataEntry

	saveGirlErr  error
	saveEntryErr error
	completeRes  *service.MigrationResult
	completeErr  error

	completeCalls int
}

func (f *fakeData) SaveGirl(ctx context.Context, userID, sessionID bson.ObjectID, girl *models.OnboardingGirl) (*models.OnboardingGirl, error) {
	if f.saveGirlErr != nil {
		return nil, f.saveGirlErr
	}
	girl.ID = bson.NewObjectID()
	girl.UserID = userID
	girl.SessionID = sessionID
	f.girl = girl
	return girl, nil
}

func (f *fakeData) GetGirl(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingGirl, error) {
	if f.girl == nil || f.girl.SessionID != sessionID {
		return nil, service.ErrNotFound
	}
	return f.girl, nil
}

func (f *fakeData) SaveDataEntry(ctx context.Context, userID, sessionID, girlID bson.ObjectID, entry *models.OnboardingDataEntry) (*models.OnboardingDataEntry, error) {
	if f.saveEntryErr != nil {
		return nil, f.saveEntryErr
	}
	entry.ID = bson.NewObjectID()
	entry.UserID = userID
	entry.SessionID = sessionID
	entry.GirlID = girlID
	f.entry = entry
	return entry, nil
}

func (f *fakeData) GetDataEntry(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingDataEntry, error) {
	if f.entry == nil || f.entry.SessionID != sessionID {
		return nil, service.ErrNotFound
	}
	return f.entry, nil
}

func (f *fakeData) CompleteOnboarding(ctx context.Context, sessionID bson.ObjectID) (*service.MigrationResult, error) {
	f.completeCalls++
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	if f.completeRes != nil {
		return f.completeRes, nil
	}
	return &service.MigrationResult{Success: true}, nil
}
