package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OnboardingDataEntry is a staging row referencing a session and a girl.
type OnboardingDataEntry struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID       bson.ObjectID `bson:"session_id" json:"session_id"`
	GirlID          bson.ObjectID `bson:"girl_id" json:"girl_id"`
	UserID          bson.ObjectID `bson:"user_id" json:"user_id"`
	Date            time.Time     `bson:"date" json:"date"`
	Amount          float64       `bson:"amount" json:"amount"`
	DurationMinutes int           `bson:"duration_minutes" json:"duration_minutes"`
	NumberOfNuts    int           `bson:"number_of_nuts" json:"number_of_nuts"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}

// Validate enforces amount >= 0, duration > 0 and number_of_nuts >= 0.
// Zero nuts is explicitly allowed.
func (e *OnboardingDataEntry) Validate() error {
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if e.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if e.DurationMinutes <= 0 {
		return &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}
	if e.NumberOfNuts < 0 {
		return &ValidationError{Field: "number_of_nuts", Reason: "must not be negative"}
	}
	return nil
}

// DataEntry is the permanent row created from an OnboardingDataEntry on
// finalization. GirlID references the promoted permanent girl.
type DataEntry struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          bson.ObjectID `bson:"user_id" json:"user_id"`
	GirlID          bson.ObjectID `bson:"girl_id" json:"girl_id"`
	Date            time.Time     `bson:"date" json:"date"`
	Amount          float64       `bson:"amount" json:"amount"`
	DurationMinutes int           `bson:"duration_minutes" json:"duration_minutes"`
	NumberOfNuts    int           `bson:"number_of_nuts" json:"number_of_nuts"`
	SourceSessionID bson.ObjectID `bson:"source_session_id" json:"source_session_id"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
}
