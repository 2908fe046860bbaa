package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OnboardingSession tracks one user's progress through the step sequence.
// At most one active (not completed, not expired) session exists per user.
type OnboardingSession struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Token       string         `bson:"token" json:"token"`
	UserID      bson.ObjectID  `bson:"user_id" json:"user_id"`
	CurrentStep int            `bson:"current_step" json:"current_step"`
	Completed   bool           `bson:"completed" json:"completed"`
	IsAnonymous bool           `bson:"is_anonymous" json:"is_anonymous"`
	ConvertedAt *time.Time     `bson:"converted_at,omitempty" json:"converted_at,omitempty"`
	ExpiresAt   time.Time      `bson:"expires_at" json:"expires_at"`
	Metadata    map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}

func (s *OnboardingSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
