package service

import (
	"context"
	"errors"
	"time"

	"velvet-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// In-memory store fakes. They mimic the repository contracts, including
// the unique one-row-per-session indexes and the completed-flag
// compare-and-set.

type fakeUsers struct {
	byID      map[bson.ObjectID]*models.User
	createErr error
	findErr   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[bson.ObjectID]*models.User)}
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUsers) ConvertToPermanent(ctx context.Context, id bson.ObjectID, email, passwordHash string) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now()
	user.Email = email
	user.PasswordHash = passwordHash
	user.IsAnonymous = false
	user.ConvertedAt = &now
	return user, nil
}

type fakeSessions struct {
	ordered   []*models.OnboardingSession
	createErr error
	updateErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{}
}

func (f *fakeSessions) Create(ctx context.Context, sess *models.OnboardingSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	sess.ID = bson.NewObjectID()
	sess.CreatedAt = time.Now()
	f.ordered = append(f.ordered, sess)
	return nil
}

func (f *fakeSessions) FindByID(ctx context.Context, id bson.ObjectID) (*models.OnboardingSession, error) {
	for _, sess := range f.ordered {
		if sess.ID == id {
			return sess, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeSessions) FindCurrentByUser(ctx context.Context, userID bson.ObjectID) (*models.OnboardingSession, error) {
	for i := len(f.ordered) - 1; i >= 0; i-- {
		sess := f.ordered[i]
		if sess.UserID == userID && !sess.Completed {
			return sess, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeSessions) UpdateStep(ctx context.Context, id bson.ObjectID, step int) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	sess, err := f.FindByID(ctx, id)
	if err != nil {
		return err
	}
	sess.CurrentStep = step
	return nil
}

func (f *fakeSessions) MarkCompleted(ctx context.Context, id bson.ObjectID) error {
	sess, err := f.FindByID(ctx, id)
	if err != nil || sess.Completed {
		return ErrNotFound
	}
	sess.Completed = true
	return nil
}

func (f *fakeSessions) MarkConverted(ctx context.Context, userID bson.ObjectID, at time.Time) error {
	for _, sess := range f.ordered {
		if sess.UserID == userID && !sess.Completed {
			sess.IsAnonymous = false
			sess.ConvertedAt = &at
		}
	}
	return nil
}

type fakeGirls struct {
	bySession map[bson.ObjectID]*models.OnboardingGirl
	promoted  []*models.Girl
	createErr error
}

func newFakeGirls() *fakeGirls {
	return &fakeGirls{bySession: make(map[bson.ObjectID]*models.OnboardingGirl)}
}

func (f *fakeGirls) Create(ctx context.Context, girl *models.OnboardingGirl) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.bySession[girl.SessionID]; exists {
		return errors.New("duplicate key: one girl per session")
	}
	girl.ID = bson.NewObjectID()
	girl.CreatedAt = time.Now()
	f.bySession[girl.SessionID] = girl
	return nil
}

func (f *fakeGirls) FindBySession(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingGirl, error) {
	girl, ok := f.bySession[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return girl, nil
}

func (f *fakeGirls) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.OnboardingGirl, error) {
	for _, girl := range f.bySession {
		if girl.ID != id {
			continue
		}
		if v, ok := set["name"].(string); ok {
			girl.Name = v
		}
		if v, ok := set["age"].(int); ok {
			girl.Age = v
		}
		if v, ok := set["description"].(string); ok {
			girl.Description = v
		}
		if v, ok := set["nationality"].(string); ok {
			girl.Nationality = v
		}
		if v, ok := set["rating"].(float64); ok {
			girl.Rating = v
		}
		return girl, nil
	}
	return nil, ErrNotFound
}

func (f *fakeGirls) Promote(ctx context.Context, girl *models.OnboardingGirl) (*models.Girl, error) {
	perm := &models.Girl{
		ID:              bson.NewObjectID(),
		UserID:          girl.UserID,
		Name:            girl.Name,
		Age:             girl.Age,
		Description:     girl.Description,
		Nationality:     girl.Nationality,
		Rating:          girl.Rating,
		SourceSessionID: girl.SessionID,
	}
	f.promoted = append(f.promoted, perm)
	return perm, nil
}

type fakeEntries struct {
	bySession map[bson.ObjectID]*models.OnboardingDataEntry
	promoted  []*models.DataEntry
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{bySession: make(map[bson.ObjectID]*models.OnboardingDataEntry)}
}

func (f *fakeEntries) Create(ctx context.Context, entry *models.OnboardingDataEntry) error {
	if _, exists := f.bySession[entry.SessionID]; exists {
		return errors.New("duplicate key: one entry per session")
	}
	entry.ID = bson.NewObjectID()
	entry.CreatedAt = time.Now()
	f.bySession[entry.SessionID] = entry
	return nil
}

func (f *fakeEntries) FindBySession(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingDataEntry, error) {
	entry, ok := f.bySession[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

func (f *fakeEntries) Promote(ctx context.Context, entry *models.OnboardingDataEntry, girlID bson.ObjectID) (*models.DataEntry, error) {
	perm := &models.DataEntry{
		ID:              bson.NewObjectID(),
		UserID:          entry.UserID,
		GirlID:          girlID,
		Date:            entry.Date,
		Amount:          entry.Amount,
		DurationMinutes: entry.DurationMinutes,
		NumberOfNuts:    entry.NumberOfNuts,
		SourceSessionID: entry.SessionID,
	}
	f.promoted = append(f.promoted, perm)
	return perm, nil
}

// passthroughTxn satisfies TxnFunc without transactional semantics.
func passthroughTxn(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
