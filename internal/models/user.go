package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash string        `bson:"password_hash,omitempty" json:"-"`
	IsAnonymous  bool          `bson:"is_anonymous" json:"is_anonymous"`
	ConvertedAt  *time.Time    `bson:"converted_at,omitempty" json:"converted_at,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}
