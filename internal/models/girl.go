package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OnboardingGirl is a staging row tied to one onboarding session. It is
// copied into the permanent girls collection by the finalize migration.
type OnboardingGirl struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   bson.ObjectID `bson:"session_id" json:"session_id"`
	UserID      bson.ObjectID `bson:"user_id" json:"user_id"`
	Name        string        `bson:"name" json:"name"`
	Age         int           `bson:"age" json:"age"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Nationality string        `bson:"nationality,omitempty" json:"nationality,omitempty"`
	Rating      float64       `bson:"rating" json:"rating"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// Validate enforces the same bounds the permanent store carries: age 18+,
// rating within [5.0, 10.0].
func (g *OnboardingGirl) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if g.Age < 18 {
		return &ValidationError{Field: "age", Reason: "must be at least 18"}
	}
	if g.Rating < 5.0 || g.Rating > 10.0 {
		return &ValidationError{Field: "rating", Reason: "must be between 5.0 and 10.0"}
	}
	return nil
}

// Girl is the permanent row created from an OnboardingGirl on finalization.
type Girl struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          bson.ObjectID `bson:"user_id" json:"user_id"`
	Name            string        `bson:"name" json:"name"`
	Age             int           `bson:"age" json:"age"`
	Description     string        `bson:"description,omitempty" json:"description,omitempty"`
	Nationality     string        `bson:"nationality,omitempty" json:"nationality,omitempty"`
	Rating          float64       `bson:"rating" json:"rating"`
	SourceSessionID bson.ObjectID `bson:"source_session_id" json:"source_session_id"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
}
