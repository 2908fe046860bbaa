package service

import (
	"context"
	"time"

	"velvet-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store interfaces are satisfied by the repository layer; tests substitute
// in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ConvertToPermanent(ctx context.Context, id bson.ObjectID, email, passwordHash string) (*models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, sess *models.OnboardingSession) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.OnboardingSession, error)
	FindCurrentByUser(ctx context.Context, userID bson.ObjectID) (*models.OnboardingSession, error)
	UpdateStep(ctx context.Context, id bson.ObjectID, step int) error
	MarkCompleted(ctx context.Context, id bson.ObjectID) error
	MarkConverted(ctx context.Context, userID bson.ObjectID, at time.Time) error
}

type GirlStore interface {
	Create(ctx context.Context, girl *models.OnboardingGirl) error
	FindBySession(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingGirl, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.OnboardingGirl, error)
	Promote(ctx context.Context, girl *models.OnboardingGirl) (*models.Girl, error)
}

type EntryStore interface {
	Create(ctx context.Context, entry *models.OnboardingDataEntry) error
	FindBySession(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingDataEntry, error)
	Promote(ctx context.Context, entry *models.OnboardingDataEntry, girlID bson.ObjectID) (*models.DataEntry, error)
}

// TxnFunc runs fn atomically. database.WithTransaction satisfies it in
// production; tests pass a passthrough.
type TxnFunc func(ctx context.Context, fn func(ctx context.Context) error) error
