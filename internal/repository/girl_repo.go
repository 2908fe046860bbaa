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

type GirlRepo struct {
	staging   *mongo.Collection
	permanent *mongo.Collection
}

func NewGirlRepo() *GirlRepo {
	return &GirlRepo{
		staging:   database.GetCollection("onboarding_girls"),
		permanent: database.GetCollection("girls"),
	}
}

func (r *GirlRepo) Create(ctx context.Context, girl *models.OnboardingGirl) error {
	girl.CreatedAt = time.Now()
	girl.UpdatedAt = time.Now()
	result, err := r.staging.InsertOne(ctx, girl)
	if err != nil {
		return err
	}
	girl.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (r *GirlRepo) FindBySession(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingGirl, error) {
	var girl models.OnboardingGirl
	err := r.staging.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&girl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &girl, nil
}

// Update applies a partial $set and returns the updated row.
func (r *GirlRepo) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.OnboardingGirl, error) {
	set["updated_at"] = time.Now()
	var girl models.OnboardingGirl
	err := r.staging.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&girl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &girl, nil
}

// Promote copies a staging row into the permanent girls collection.
func (r *GirlRepo) Promote(ctx context.Context, girl *models.OnboardingGirl) (*models.Girl, error) {
	perm := &models.Girl{
		UserID:          girl.UserID,
		Name:            girl.Name,
		Age:             girl.Age,
		Description:     girl.Description,
		Nationality:     girl.Nationality,
		Rating:          girl.Rating,
		SourceSessionID: girl.SessionID,
		CreatedAt:       time.Now(),
	}
	result, err := r.permanent.InsertOne(ctx, perm)
	if err != nil {
		return nil, err
	}
	perm.ID = result.InsertedID.(bson.ObjectID)
	return perm, nil
}

// EnsureIndexes creates necessary indexes for the girls collections
func (r *GirlRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.staging.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true), // one girl per session
	})
	if err != nil {
		return err
	}
	_, err = r.permanent.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
