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

type SessionRepo struct {
	collection *mongo.Collection
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		collection: database.GetCollection("onboarding_sessions"),
	}
}

func (r *SessionRepo) Create(ctx context.Context, sess *models.OnboardingSession) error {
	sess.CreatedAt = time.Now()
	sess.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, sess)
	if err != nil {
		return err
	}
	sess.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (r *SessionRepo) FindByID(ctx context.Context, id bson.ObjectID) (*models.OnboardingSession, error) {
	var sess models.OnboardingSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// FindCurrentByUser returns the most recently created, not-yet-completed
// session for the user.
func (r *SessionRepo) FindCurrentByUser(ctx context.Context, userID bson.ObjectID) (*models.OnboardingSession, error) {
	var sess models.OnboardingSession
	err := r.collection.FindOne(ctx,
		bson.M{"user_id": userID, "completed": false},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&sess)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (r *SessionRepo) UpdateStep(ctx context.Context, id bson.ObjectID, step int) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"current_step": step,
			"updated_at":   time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkCompleted flips the completion flag. The filter only matches an open
// session, so a second finalize attempt sees ErrNotFound.
func (r *SessionRepo) MarkCompleted(ctx context.Context, id bson.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "completed": false},
		bson.M{"$set": bson.M{
			"completed":             true,
			"updated_at":            now,
			"metadata.completed_at": now,
		}},
	)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkConverted records the anonymous-to-permanent conversion on every open
// session owned by the user.
func (r *SessionRepo) MarkConverted(ctx context.Context, userID bson.ObjectID, at time.Time) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "completed": false},
		bson.M{"$set": bson.M{
			"is_anonymous": false,
			"converted_at": at,
			"updated_at":   at,
		}},
	)
	return err
}

// EnsureIndexes creates necessary indexes for the onboarding_sessions collection
func (r *SessionRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index — auto-delete expired sessions
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
