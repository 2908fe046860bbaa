package service

import (
	"context"
	"fmt"
	"strings"

	"velvet-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OnboardingService is the data-access surface for the staging tables plus
// the finalize trigger.
type OnboardingService struct {
	girls     GirlStore
	entries   EntryStore
	migration *MigrationService
}

func NewOnboardingService(girls GirlStore, entries EntryStore, migration *MigrationService) *OnboardingService {
	return &OnboardingService{
		girls:     girls,
		entries:   entries,
		migration: migration,
	}
}

// SaveGirl inserts one girl row tied to the authenticated identity and the
// session. Constraint violations return a nil entity and a populated error.
func (s *OnboardingService) SaveGirl(ctx context.Context, userID, sessionID bson.ObjectID, girl *models.OnboardingGirl) (*models.OnboardingGirl, error) {
	girl.UserID = userID
	girl.SessionID = sessionID
	if err := girl.Validate(); err != nil {
		return nil, err
	}
	if err := s.girls.Create(ctx, girl); err != nil {
		return nil, fmt.Errorf("save girl: %w", err)
	}
	return girl, nil
}

// GirlUpdate carries the updatable girl fields; nil means "leave unchanged".
type GirlUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Age         *int     `json:"age,omitempty"`
	Description *string  `json:"description,omitempty"`
	Nationality *string  `json:"nationality,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// UpdateGirl applies a partial update, enforcing the same bounds as SaveGirl
// on every field that is present.
func (s *OnboardingService) UpdateGirl(ctx context.Context, girlID bson.ObjectID, upd GirlUpdate) (*models.OnboardingGirl, error) {
	set := bson.M{}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, &models.ValidationError{Field: "name", Reason: "is required"}
		}
		set["name"] = *upd.Name
	}
	if upd.Age != nil {
		if *upd.Age < 18 {
			return nil, &models.ValidationError{Field: "age", Reason: "must be at least 18"}
		}
		set["age"] = *upd.Age
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Nationality != nil {
		set["nationality"] = *upd.Nationality
	}
	if upd.Rating != nil {
		if *upd.Rating < 5.0 || *upd.Rating > 10.0 {
			return nil, &models.ValidationError{Field: "rating", Reason: "must be between 5.0 and 10.0"}
		}
		set["rating"] = *upd.Rating
	}
	if len(set) == 0 {
		return nil, &models.ValidationError{Field: "update", Reason: "has no fields"}
	}

	girl, err := s.girls.Update(ctx, girlID, set)
	if err != nil {
		return nil, err
	}
	return girl, nil
}

// GetGirl returns the single girl for a session, or ErrNotFound.
func (s *OnboardingService) GetGirl(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingGirl, error) {
	return s.girls.FindBySession(ctx, sessionID)
}

// SaveDataEntry inserts one data entry for the session and girl.
func (s *OnboardingService) SaveDataEntry(ctx context.Context, userID, sessionID, girlID bson.ObjectID, entry *models.OnboardingDataEntry) (*models.OnboardingDataEntry, error) {
	if girlID.IsZero() {
		return nil, &models.ValidationError{Field: "girl_id", Reason: "is required"}
	}
	entry.UserID = userID
	entry.SessionID = sessionID
	entry.GirlID = girlID
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("save data entry: %w", err)
	}
	return entry, nil
}

// GetDataEntry returns the single entry for a session, or ErrNotFound.
func (s *OnboardingService) GetDataEntry(ctx context.Context, sessionID bson.ObjectID) (*models.OnboardingDataEntry, error) {
	return s.entries.FindBySession(ctx, sessionID)
}

// CompleteOnboarding runs the finalize migration and reports its own
// business-level outcome: a transport-level success carrying success=false
// is still a failure with the migration's message.
func (s *OnboardingService) CompleteOnboarding(ctx context.Context, sessionID bson.ObjectID) (*MigrationResult, error) {
	return s.migration.Run(ctx, sessionID)
}
