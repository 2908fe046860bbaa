package repository

import (
	"context"
	"time"

	"velvet-backend/internal/database"
	"velvet-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type EntryRepo struct {
	staging   *mongo.Collection
	permanent *mongo.Collection
}

func NewEntryRepo() *EntryRepo {
	return &EntryRepo{
		staging:   database.GetCollection("onboarding_data_entries"),
		permanent: database.GetCollection("data_entries"),
	}
}

func (r *EntryRepo) Create(ctx context.Context, entry *models.OnboardingDataEntry) error {
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()
	result, err := r.staging.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	entry.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (r *EntryRepo) FindBySession(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingDataEntry, error) {
	var entry models.OnboardingDataEntry
	err := r.staging.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Promote copies a staging row into the permanent data_entries collection,
// re-pointing it at the promoted permanent girl.
func (r *EntryRepo) Promote(ctx context.Context, entry *models.OnboardingDataEntry, girlID bson.ObjectID) (*models.DataEntry, error) {
	perm := &models.DataEntry{
		UserID:          entry.UserID,
		GirlID:          girlID,
		Date:            entry.Date,
		Amount:          entry.Amount,
		DurationMinutes: entry.DurationMinutes,
		NumberOfNuts:    entry.NumberOfNuts,
		SourceSessionID: entry.SessionID,
		CreatedAt:       time.Now(),
	}
	result, err := r.permanent.InsertOne(ctx, perm)
	if err != nil {
		return nil, err
	}
	perm.ID = result.InsertedID.(bson.ObjectID)
	return perm, nil
}

// EnsureIndexes creates necessary indexes for the data entry collections
func (r *EntryRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.staging.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true), // one entry per session
	})
	if err != nil {
		return err
	}
	_, err = r.permanent.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}
